package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-weekly/internal/domain/snapshot"
)

func TestJSONStoreRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "raw")
	s := NewJSONStore(dir, false)

	assert.False(t, s.Exists(snapshot.FileBootstrap))

	body := []byte(`{"elements":[{"id":1}]}`)
	require.NoError(t, s.Write(snapshot.Payload{File: snapshot.FileBootstrap, Body: body}))

	assert.True(t, s.Exists(snapshot.FileBootstrap))
	got, err := s.Read(snapshot.FileBootstrap)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestJSONStorePrettyPrints(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(dir, true)

	require.NoError(t, s.Write(snapshot.Payload{File: snapshot.FileFixtures, Body: []byte(`[{"id":1}]`)}))

	raw, err := os.ReadFile(filepath.Join(dir, snapshot.FileFixtures))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "\n"), "expected indented output")
}

func TestJSONStoreReadMissing(t *testing.T) {
	s := NewJSONStore(t.TempDir(), false)
	_, err := s.Read("nope.json")
	require.Error(t, err)
}
