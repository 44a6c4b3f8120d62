package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fpl-weekly/internal/domain/fixture"
	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

const formWindow = 3

// TeamFormService derives the last-3 / next-3 form table from the full
// fixture set.
type TeamFormService struct {
	logger *logging.Logger
}

func NewTeamFormService(logger *logging.Logger) *TeamFormService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamFormService{logger: logger}
}

// Compute builds one row per team, scores it, standardizes the scores
// across all teams and returns rows ordered best-first. An empty fixture
// or team set is fatal.
func (s *TeamFormService) Compute(ctx context.Context, teams []team.Team, fixtures []fixture.Fixture, dataTimestamp string) ([]teamform.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "TeamFormService.Compute")
	defer span.End()

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("%w: fixtures", ErrEmptyDataset)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: teams", ErrEmptyDataset)
	}

	played, upcoming := fixture.Partition(fixtures)
	names := team.NameByID(teams)

	rows := make([]teamform.Row, 0, len(teams))
	for _, t := range teams {
		row := buildTeamRow(t.ID, played, upcoming, names)
		row.DataTimestamp = dataTimestamp
		rows = append(rows, row)
	}

	scoreRows(rows)
	teamform.Sort(rows)

	s.logger.DebugContext(ctx, "team form computed",
		"teams", len(rows), "played", len(played), "upcoming", len(upcoming))
	return rows, nil
}

func buildTeamRow(teamID int64, played, upcoming []fixture.Fixture, names map[int64]string) teamform.Row {
	last3 := fixture.Tail(fixture.ForTeam(played, teamID), formWindow)

	var pts, goalsFor, goalsAgainst, cleanSheets int
	for _, f := range last3 {
		scored, conceded := f.Goals(teamID)
		goalsFor += scored
		goalsAgainst += conceded
		if conceded == 0 {
			cleanSheets++
		}
		switch {
		case scored > conceded:
			pts += 3
		case scored == conceded:
			pts++
		}
	}
	denominator := len(last3)
	if denominator == 0 {
		denominator = 1
	}

	next3 := fixture.Head(fixture.ForTeam(upcoming, teamID), formWindow)

	var difficultySum float64
	var difficultyCount int
	opponents := make([]string, 0, len(next3))
	var homeAway strings.Builder
	for _, f := range next3 {
		if d := f.Difficulty(teamID); d != nil {
			difficultySum += float64(*d)
			difficultyCount++
		}
		if f.IsHome(teamID) {
			homeAway.WriteByte('H')
		} else {
			homeAway.WriteByte('A')
		}
		opponents = append(opponents, team.ResolveName(names, f.Opponent(teamID)))
	}
	var avgDifficulty *float64
	if difficultyCount > 0 {
		v := teamform.Round2(difficultySum / float64(difficultyCount))
		avgDifficulty = &v
	}

	return teamform.Row{
		TeamID:               teamID,
		Team:                 team.ResolveName(names, teamID),
		PlayedLast3:          len(last3),
		Last3Points:          pts,
		Last3GoalsFor:        goalsFor,
		Last3GoalsAgainst:    goalsAgainst,
		Last3GoalDiff:        goalsFor - goalsAgainst,
		Last3AvgGoalsFor:     teamform.Round2(float64(goalsFor) / float64(denominator)),
		Last3AvgGoalsAgainst: teamform.Round2(float64(goalsAgainst) / float64(denominator)),
		Last3CleanSheets:     cleanSheets,
		Last3CleanSheetPct:   teamform.Round2(float64(cleanSheets) / float64(denominator)),
		UpcomingNext3:        len(next3),
		Next3AvgDifficulty:   avgDifficulty,
		Next3Opponents:       strings.Join(opponents, ", "),
		Next3HomeAway:        homeAway.String(),
	}
}

// scoreRows fills the form/fixture/blend scores and their z-scores.
// Blend z is the sum of the two component z-scores, not a z-score of
// blend itself.
func scoreRows(rows []teamform.Row) {
	forms := make([]float64, len(rows))
	fixtureScores := make([]float64, len(rows))
	for i := range rows {
		rows[i].FormScore = float64(rows[i].Last3Points) + 0.5*float64(rows[i].Last3GoalDiff)
		if rows[i].Next3AvgDifficulty != nil {
			rows[i].FixtureScore = 6 - *rows[i].Next3AvgDifficulty
		}
		rows[i].BlendScore = rows[i].FormScore + rows[i].FixtureScore
		forms[i] = rows[i].FormScore
		fixtureScores[i] = rows[i].FixtureScore
	}

	formZ := teamform.ZScores(forms)
	fixtureZ := teamform.ZScores(fixtureScores)
	for i := range rows {
		rows[i].FormScoreZ = formZ[i]
		rows[i].FixtureScoreZ = fixtureZ[i]
		rows[i].BlendScoreZ = formZ[i] + fixtureZ[i]
	}
}
