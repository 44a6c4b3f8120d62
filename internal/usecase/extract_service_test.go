package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-weekly/internal/domain/snapshot"
)

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (s *memStore) Exists(file string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[file]
	return ok
}

func (s *memStore) Write(p snapshot.Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[p.File] = p.Body
	return nil
}

func (s *memStore) Read(file string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	body, ok := s.files[file]
	if !ok {
		return nil, errors.New("missing snapshot " + file)
	}
	return body, nil
}

type stubFetcher struct {
	mu         sync.Mutex
	bootstraps int
	fixtures   int
	fail       bool
}

func (f *stubFetcher) FetchBootstrap(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bootstraps++
	if f.fail {
		return nil, errors.New("boom")
	}
	return []byte(`{"elements":[]}`), nil
}

func (f *stubFetcher) FetchFixtures(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fixtures++
	if f.fail {
		return nil, errors.New("boom")
	}
	return []byte(`[]`), nil
}

func TestExtractRunFetchesBoth(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{}

	svc := NewExtractService(fetcher, store, 2, false, nil)
	require.NoError(t, svc.Run(context.Background()))

	assert.True(t, store.Exists(snapshot.FileBootstrap))
	assert.True(t, store.Exists(snapshot.FileFixtures))
	assert.Equal(t, 1, fetcher.bootstraps)
	assert.Equal(t, 1, fetcher.fixtures)
}

func TestExtractRunSkipsExisting(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Write(snapshot.Payload{File: snapshot.FileBootstrap, Body: []byte(`{}`)}))
	fetcher := &stubFetcher{}

	svc := NewExtractService(fetcher, store, 2, false, nil)
	require.NoError(t, svc.Run(context.Background()))

	assert.Zero(t, fetcher.bootstraps)
	assert.Equal(t, 1, fetcher.fixtures)
}

func TestExtractRunForceRefetches(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Write(snapshot.Payload{File: snapshot.FileBootstrap, Body: []byte(`{}`)}))
	require.NoError(t, store.Write(snapshot.Payload{File: snapshot.FileFixtures, Body: []byte(`[]`)}))
	fetcher := &stubFetcher{}

	svc := NewExtractService(fetcher, store, 1, true, nil)
	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, 1, fetcher.bootstraps)
	assert.Equal(t, 1, fetcher.fixtures)
}

func TestExtractRunFetchFailure(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{fail: true}

	svc := NewExtractService(fetcher, store, 2, false, nil)
	err := svc.Run(context.Background())
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
