package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-weekly/internal/domain/fixture"
	"github.com/riskibarqy/fpl-weekly/internal/domain/player"
	"github.com/riskibarqy/fpl-weekly/internal/domain/shortlist"
	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Extractor captures raw snapshots for the run.
type Extractor interface {
	Run(ctx context.Context) error
}

// Transformer projects raw snapshots to tabular datasets.
type Transformer interface {
	Run(ctx context.Context) error
}

// ResultWriter lands the three result tables in the configured sink.
type ResultWriter interface {
	WriteTeamTable(ctx context.Context, rows []teamform.Row) error
	WriteShortlists(ctx context.Context, perTeam, topK []shortlist.Row) error
}

// RunResult carries the analysis tables for post-run reporting.
type RunResult struct {
	TeamTable []teamform.Row
	PerTeam   []shortlist.Row
	TopK      []shortlist.Row
	Took      time.Duration
}

// PipelineService runs the weekly flow end to end: extract, transform,
// analyze, write.
type PipelineService struct {
	extractor   Extractor
	transformer Transformer
	players     player.Repository
	teams       team.Repository
	fixtures    fixture.Repository
	teamForm    *TeamFormService
	enrichment  *EnrichmentService
	shortlists  *ShortlistService
	writer      ResultWriter
	logger      *logging.Logger
}

func NewPipelineService(
	extractor Extractor,
	transformer Transformer,
	players player.Repository,
	teams team.Repository,
	fixtures fixture.Repository,
	teamForm *TeamFormService,
	enrichment *EnrichmentService,
	shortlists *ShortlistService,
	writer ResultWriter,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		extractor:   extractor,
		transformer: transformer,
		players:     players,
		teams:       teams,
		fixtures:    fixtures,
		teamForm:    teamForm,
		enrichment:  enrichment,
		shortlists:  shortlists,
		writer:      writer,
		logger:      logger,
	}
}

func (s *PipelineService) Run(ctx context.Context, opts AnalysisOptions) (*RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "PipelineService.Run")
	defer span.End()

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	if err := s.extractor.Run(ctx); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	if err := s.transformer.Run(ctx); err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}

	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	fixtures, err := s.fixtures.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fixtures: %w", err)
	}

	teamTable, err := s.teamForm.Compute(ctx, teams, fixtures, opts.DataTimestamp)
	if err != nil {
		return nil, err
	}
	base, err := s.enrichment.Enrich(ctx, players, teams, opts)
	if err != nil {
		return nil, err
	}
	perTeam, err := s.shortlists.PerTeam(ctx, base, teamTable, opts)
	if err != nil {
		return nil, err
	}
	topK, err := s.shortlists.TopK(ctx, base, teamTable, opts)
	if err != nil {
		return nil, err
	}

	if err := s.writer.WriteTeamTable(ctx, teamTable); err != nil {
		return nil, fmt.Errorf("write team table: %w", err)
	}
	if err := s.writer.WriteShortlists(ctx, perTeam, topK); err != nil {
		return nil, fmt.Errorf("write shortlists: %w", err)
	}

	result := &RunResult{
		TeamTable: teamTable,
		PerTeam:   perTeam,
		TopK:      topK,
		Took:      time.Since(started),
	}
	s.logger.InfoContext(ctx, "pipeline complete",
		"teams", len(teamTable),
		"per_team_rows", len(perTeam),
		"top_k_rows", len(topK),
		"took", result.Took.String())
	return result, nil
}
