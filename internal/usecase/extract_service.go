package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-weekly/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Fetcher downloads raw documents from the FPL game API.
type Fetcher interface {
	FetchBootstrap(ctx context.Context) ([]byte, error)
	FetchFixtures(ctx context.Context) ([]byte, error)
}

// ExtractService snapshots the raw API documents the transform stage
// consumes. Existing snapshots are reused unless Force is set.
type ExtractService struct {
	fetcher Fetcher
	store   snapshot.Store
	workers int
	force   bool
	logger  *logging.Logger
}

func NewExtractService(fetcher Fetcher, store snapshot.Store, workers int, force bool, logger *logging.Logger) *ExtractService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ExtractService{
		fetcher: fetcher,
		store:   store,
		workers: workers,
		force:   force,
		logger:  logger,
	}
}

type extractJob struct {
	endpoint string
	file     string
	fetch    func(ctx context.Context) ([]byte, error)
}

func (s *ExtractService) Run(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "ExtractService.Run")
	defer span.End()

	jobs := []extractJob{
		{endpoint: "bootstrap-static", file: snapshot.FileBootstrap, fetch: s.fetcher.FetchBootstrap},
		{endpoint: "fixtures", file: snapshot.FileFixtures, fetch: s.fetcher.FetchFixtures},
	}

	pending := make([]extractJob, 0, len(jobs))
	for _, job := range jobs {
		if !s.force && s.store.Exists(job.file) {
			s.logger.InfoContext(ctx, "snapshot exists, skipping fetch", "file", job.file)
			continue
		}
		pending = append(pending, job)
	}
	if len(pending) == 0 {
		return nil
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	errs := make([]error, len(pending))
	for i, job := range pending {
		wg.Add(1)
		i, job := i, job
		submitErr := pool.Submit(func() {
			defer wg.Done()
			errs[i] = s.runJob(ctx, job)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit fetch %s: %w", job.file, submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *ExtractService) runJob(ctx context.Context, job extractJob) error {
	started := time.Now()
	body, err := job.fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: fetch %s: %v", ErrDependencyUnavailable, job.endpoint, err)
	}

	err = s.store.Write(snapshot.Payload{
		Endpoint:  job.endpoint,
		File:      job.file,
		Body:      body,
		FetchedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("store snapshot %s: %w", job.file, err)
	}

	s.logger.InfoContext(ctx, "snapshot captured",
		"file", job.file, "bytes", len(body), "took", time.Since(started).String())
	return nil
}
