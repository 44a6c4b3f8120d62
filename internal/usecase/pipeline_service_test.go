package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-weekly/internal/domain/fixture"
	"github.com/riskibarqy/fpl-weekly/internal/domain/player"
	"github.com/riskibarqy/fpl-weekly/internal/domain/shortlist"
	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
)

type stubStage struct {
	calls int
	err   error
}

func (s *stubStage) Run(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubPlayerRepo struct{ players []player.Player }

func (r *stubPlayerRepo) List(ctx context.Context) ([]player.Player, error) {
	return r.players, nil
}

type stubTeamRepo struct{ teams []team.Team }

func (r *stubTeamRepo) List(ctx context.Context) ([]team.Team, error) {
	return r.teams, nil
}

type stubFixtureRepo struct{ fixtures []fixture.Fixture }

func (r *stubFixtureRepo) List(ctx context.Context) ([]fixture.Fixture, error) {
	return r.fixtures, nil
}

type captureWriter struct {
	teamTable []teamform.Row
	perTeam   []shortlist.Row
	topK      []shortlist.Row
}

func (w *captureWriter) WriteTeamTable(ctx context.Context, rows []teamform.Row) error {
	w.teamTable = rows
	return nil
}

func (w *captureWriter) WriteShortlists(ctx context.Context, perTeam, topK []shortlist.Row) error {
	w.perTeam = perTeam
	w.topK = topK
	return nil
}

func pipelineFixtures() ([]team.Team, []player.Player, []fixture.Fixture) {
	teams := []team.Team{
		{ID: 1, Name: "Alpha", ShortName: "ALP"},
		{ID: 2, Name: "Beta", ShortName: "BET"},
	}
	players := []player.Player{
		{ID: 10, WebName: "one", TeamID: 1, ElementType: 3, NowCost: 80,
			Status: player.StatusAvailable, Form: 5, PointsPerGame: 4, Minutes: 900},
		{ID: 11, WebName: "two", TeamID: 2, ElementType: 4, NowCost: 70,
			Status: player.StatusAvailable, Form: 3, PointsPerGame: 3, Minutes: 800},
	}
	fixtures := []fixture.Fixture{
		{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(2), AwayScore: intPtr(0), Finished: true, KickoffAt: kickoff(1)},
		{HomeTeam: 2, AwayTeam: 1, Finished: false, KickoffAt: kickoff(9), HomeDifficulty: intPtr(3), AwayDifficulty: intPtr(2)},
	}
	return teams, players, fixtures
}

func newTestPipeline(extractor, transformer *stubStage, writer *captureWriter) *PipelineService {
	teams, players, fixtures := pipelineFixtures()
	return NewPipelineService(
		extractor,
		transformer,
		&stubPlayerRepo{players: players},
		&stubTeamRepo{teams: teams},
		&stubFixtureRepo{fixtures: fixtures},
		NewTeamFormService(nil),
		NewEnrichmentService(nil),
		NewShortlistService(nil),
		writer,
		nil,
	)
}

func TestPipelineRun(t *testing.T) {
	extractor := &stubStage{}
	transformer := &stubStage{}
	writer := &captureWriter{}
	pipeline := newTestPipeline(extractor, transformer, writer)

	result, err := pipeline.Run(context.Background(), testOptions())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, extractor.calls)
	assert.Equal(t, 1, transformer.calls)

	require.Len(t, result.TeamTable, 2)
	assert.Equal(t, "Alpha", result.TeamTable[0].Team)
	assert.NotEmpty(t, result.PerTeam)
	assert.NotEmpty(t, result.TopK)

	// what the writer got is what the result carries
	assert.Equal(t, result.TeamTable, writer.teamTable)
	assert.Equal(t, result.PerTeam, writer.perTeam)
	assert.Equal(t, result.TopK, writer.topK)

	for _, r := range result.PerTeam {
		assert.Equal(t, testOptions().DataTimestamp, r.DataTimestamp)
	}
}

func TestPipelineRunExtractFails(t *testing.T) {
	boom := errors.New("boom")
	pipeline := newTestPipeline(&stubStage{err: boom}, &stubStage{}, &captureWriter{})

	_, err := pipeline.Run(context.Background(), testOptions())
	require.ErrorIs(t, err, boom)
}

func TestPipelineRunInvalidOptions(t *testing.T) {
	pipeline := newTestPipeline(&stubStage{}, &stubStage{}, &captureWriter{})

	opts := testOptions()
	opts.TopPlayers = 0
	_, err := pipeline.Run(context.Background(), opts)
	require.ErrorIs(t, err, ErrInvalidInput)
}
