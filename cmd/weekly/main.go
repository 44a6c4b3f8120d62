package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/fpl-weekly/external/fplapi"
	"github.com/riskibarqy/fpl-weekly/internal/config"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/console"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/repository/csvdir"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/store"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/writer/csvout"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/writer/warehouse"
	"github.com/riskibarqy/fpl-weekly/internal/observability"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
	"github.com/riskibarqy/fpl-weekly/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelInfo).Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
	}()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *logging.Logger) error {
	runAt := time.Now()
	paths := usecase.NewRunPaths(cfg.DataDir, cfg.OutDir, runAt, cfg.ArchiveDumps)

	logger.InfoContext(ctx, "starting weekly run",
		"exec_env", cfg.ExecEnv,
		"raw_dir", paths.Raw,
		"transformed_dir", paths.Transformed,
		"out_dir", paths.Analysis)

	client := fplapi.NewClient(fplapi.ClientConfig{
		BaseURL:    cfg.FPLBaseURL,
		UserAgent:  cfg.FPLUserAgent,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		Logger:     logger,
	})
	rawStore := store.NewJSONStore(paths.Raw, true)

	extractor := usecase.NewExtractService(client, rawStore, cfg.FetchWorkers, cfg.ForceFetch, logger)
	transformer := usecase.NewTransformService(rawStore, paths.Transformed, logger)

	writer, closeWriter, err := buildWriter(ctx, cfg, paths, logger)
	if err != nil {
		return err
	}
	defer closeWriter()

	pipeline := usecase.NewPipelineService(
		extractor,
		transformer,
		csvdir.NewPlayerRepository(paths.Transformed),
		csvdir.NewTeamRepository(paths.Transformed),
		csvdir.NewFixtureRepository(paths.Transformed),
		usecase.NewTeamFormService(logger),
		usecase.NewEnrichmentService(logger),
		usecase.NewShortlistService(logger),
		writer,
		logger,
	)

	result, err := pipeline.Run(ctx, usecase.AnalysisOptions{
		TopTeams:      cfg.TopTeams,
		PerTeam:       cfg.PerTeam,
		TopPlayers:    cfg.TopPlayers,
		DiffThreshold: cfg.DiffThreshold,
		TempThreshold: cfg.TempThreshold,
		DataTimestamp: usecase.DataTimestamp(runAt),
	})
	if err != nil {
		return err
	}

	console.PrintRunSummary(os.Stdout, result, cfg.TopTeams)
	return nil
}

func buildWriter(ctx context.Context, cfg config.Config, paths usecase.RunPaths, logger *logging.Logger) (usecase.ResultWriter, func(), error) {
	if cfg.ExecEnv == config.ExecWarehouse {
		db, err := warehouse.Open(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		return warehouse.NewWriter(db, logger), func() { _ = db.Close() }, nil
	}
	return csvout.NewWriter(paths.Analysis, logger), func() {}, nil
}
