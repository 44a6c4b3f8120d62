package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fpl-weekly/internal/domain/fixture"
	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
)

func intPtr(v int) *int { return &v }

func kickoff(day int) time.Time {
	return time.Date(2026, 8, day, 15, 0, 0, 0, time.UTC)
}

func TestTeamFormCompute(t *testing.T) {
	teams := []team.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
	}
	fixtures := []fixture.Fixture{
		// Alpha: W 3-0, D 1-1, L 0-2
		{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(3), AwayScore: intPtr(0), Finished: true, KickoffAt: kickoff(1)},
		{HomeTeam: 2, AwayTeam: 1, HomeScore: intPtr(1), AwayScore: intPtr(1), Finished: true, KickoffAt: kickoff(2)},
		{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(0), AwayScore: intPtr(2), Finished: true, KickoffAt: kickoff(3)},
		// upcoming
		{HomeTeam: 1, AwayTeam: 2, Finished: false, KickoffAt: kickoff(5), HomeDifficulty: intPtr(2), AwayDifficulty: intPtr(4)},
		{HomeTeam: 2, AwayTeam: 1, Finished: false, KickoffAt: kickoff(6), HomeDifficulty: intPtr(3), AwayDifficulty: intPtr(5)},
	}

	svc := NewTeamFormService(nil)
	rows, err := svc.Compute(context.Background(), teams, fixtures, "2026-08-26 12:00:00Z")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Alpha wins the blend and sorts first.
	alpha := rows[0]
	assert.Equal(t, "Alpha", alpha.Team)
	assert.Equal(t, 3, alpha.PlayedLast3)
	assert.Equal(t, 4, alpha.Last3Points)
	assert.Equal(t, 4, alpha.Last3GoalsFor)
	assert.Equal(t, 3, alpha.Last3GoalsAgainst)
	assert.Equal(t, 1, alpha.Last3GoalDiff)
	assert.InDelta(t, 1.33, alpha.Last3AvgGoalsFor, 1e-9)
	assert.Equal(t, 1, alpha.Last3CleanSheets)
	assert.InDelta(t, 0.33, alpha.Last3CleanSheetPct, 1e-9)
	assert.InDelta(t, 4.5, alpha.FormScore, 1e-9)

	assert.Equal(t, 2, alpha.UpcomingNext3)
	require.NotNil(t, alpha.Next3AvgDifficulty)
	assert.InDelta(t, 3.5, *alpha.Next3AvgDifficulty, 1e-9) // own-side 2 and 5
	assert.Equal(t, "Beta, Beta", alpha.Next3Opponents)
	assert.Equal(t, "HA", alpha.Next3HomeAway)
	assert.InDelta(t, 2.5, alpha.FixtureScore, 1e-9)
	assert.InDelta(t, 7.0, alpha.BlendScore, 1e-9)

	beta := rows[1]
	assert.Equal(t, "Beta", beta.Team)
	assert.InDelta(t, 3.5, beta.FormScore, 1e-9)

	// Form z over {4.5, 3.5}: population std 0.5 -> +/-1.
	assert.InDelta(t, 1.0, alpha.FormScoreZ, 1e-9)
	assert.InDelta(t, -1.0, beta.FormScoreZ, 1e-9)
	// Both fixture scores equal: zero spread degrades to 0.
	assert.Zero(t, alpha.FixtureScoreZ)
	assert.InDelta(t, 1.0, alpha.BlendScoreZ, 1e-9)

	assert.Equal(t, "2026-08-26 12:00:00Z", alpha.DataTimestamp)
}

func TestTeamFormComputeNoFixturesForTeam(t *testing.T) {
	teams := []team.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
		{ID: 3, Name: "Gamma"},
	}
	fixtures := []fixture.Fixture{
		{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(2), AwayScore: intPtr(0), Finished: true, KickoffAt: kickoff(1)},
	}

	svc := NewTeamFormService(nil)
	rows, err := svc.Compute(context.Background(), teams, fixtures, "ts")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for _, r := range rows {
		if r.Team != "Gamma" {
			continue
		}
		assert.Zero(t, r.PlayedLast3)
		assert.Zero(t, r.Last3Points)
		assert.Zero(t, r.Last3AvgGoalsFor)
		assert.Zero(t, r.UpcomingNext3)
		assert.Nil(t, r.Next3AvgDifficulty)
		assert.Empty(t, r.Next3Opponents)
		assert.Empty(t, r.Next3HomeAway)
		assert.Zero(t, r.FixtureScore)
		assert.Zero(t, r.FormScore)
	}
}

func TestTeamFormComputePostponedFixtureLeftOutOfWindow(t *testing.T) {
	teams := []team.Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}, {ID: 3, Name: "Gamma"}}
	fixtures := []fixture.Fixture{
		// postponed fixture published without a kickoff time
		{HomeTeam: 1, AwayTeam: 3, Finished: false, HomeDifficulty: intPtr(5), AwayDifficulty: intPtr(5)},
		{HomeTeam: 1, AwayTeam: 2, Finished: false, KickoffAt: kickoff(5), HomeDifficulty: intPtr(2), AwayDifficulty: intPtr(4)},
		{HomeTeam: 2, AwayTeam: 1, Finished: false, KickoffAt: kickoff(6), HomeDifficulty: intPtr(3), AwayDifficulty: intPtr(3)},
		{HomeTeam: 1, AwayTeam: 2, Finished: false, KickoffAt: kickoff(7), HomeDifficulty: intPtr(1), AwayDifficulty: intPtr(4)},
	}

	svc := NewTeamFormService(nil)
	rows, err := svc.Compute(context.Background(), teams, fixtures, "ts")
	require.NoError(t, err)

	for _, r := range rows {
		if r.Team != "Alpha" {
			continue
		}
		// three scheduled fixtures fill the window, postponed one waits
		assert.Equal(t, 3, r.UpcomingNext3)
		assert.Equal(t, "Beta, Beta, Beta", r.Next3Opponents)
		assert.Equal(t, "HAH", r.Next3HomeAway)
		require.NotNil(t, r.Next3AvgDifficulty)
		assert.InDelta(t, 2.0, *r.Next3AvgDifficulty, 1e-9) // own-side 2, 3, 1
	}
}

func TestTeamFormComputeEmptyInputs(t *testing.T) {
	svc := NewTeamFormService(nil)

	_, err := svc.Compute(context.Background(), []team.Team{{ID: 1}}, nil, "ts")
	require.ErrorIs(t, err, ErrEmptyDataset)

	_, err = svc.Compute(context.Background(), nil, []fixture.Fixture{{HomeTeam: 1}}, "ts")
	require.ErrorIs(t, err, ErrEmptyDataset)
}

func TestTeamFormComputeDeterministic(t *testing.T) {
	teams := []team.Team{{ID: 1, Name: "Alpha"}, {ID: 2, Name: "Beta"}}
	fixtures := []fixture.Fixture{
		{HomeTeam: 1, AwayTeam: 2, HomeScore: intPtr(1), AwayScore: intPtr(1), Finished: true, KickoffAt: kickoff(1)},
		{HomeTeam: 2, AwayTeam: 1, Finished: false, KickoffAt: kickoff(9), HomeDifficulty: intPtr(3), AwayDifficulty: intPtr(3)},
	}

	svc := NewTeamFormService(nil)
	first, err := svc.Compute(context.Background(), teams, fixtures, "ts")
	require.NoError(t, err)
	second, err := svc.Compute(context.Background(), teams, fixtures, "ts")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
