package csvdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-weekly/internal/domain/fixture"
)

// FixtureRepository loads fixtures from fixtures.csv, falling back to a
// legacy fixtures.json raw dump when the CSV is absent.
type FixtureRepository struct {
	dir string
}

func NewFixtureRepository(dir string) *FixtureRepository {
	return &FixtureRepository{dir: dir}
}

func (r *FixtureRepository) List(ctx context.Context) ([]fixture.Fixture, error) {
	_ = ctx

	if _, err := os.Stat(filepath.Join(r.dir, FileFixtures)); err == nil {
		return r.listCSV()
	}
	if _, err := os.Stat(filepath.Join(r.dir, FileFixturesJSON)); err == nil {
		return r.listJSON()
	}
	return nil, fmt.Errorf("need %s or %s in %s", FileFixtures, FileFixturesJSON, r.dir)
}

func (r *FixtureRepository) listCSV() ([]fixture.Fixture, error) {
	t, err := loadTable(r.dir, FileFixtures)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("team_h", "team_a"); err != nil {
		return nil, err
	}

	out := make([]fixture.Fixture, 0, len(t.rows))
	for i, row := range t.rows {
		home, err := t.int64At(row, "team_h")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}
		away, err := t.int64At(row, "team_a")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}
		homeScore, err := t.intPtrAt(row, "team_h_score")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}
		awayScore, err := t.intPtrAt(row, "team_a_score")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}
		homeDifficulty, err := t.intPtrAt(row, "team_h_difficulty")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}
		awayDifficulty, err := t.intPtrAt(row, "team_a_difficulty")
		if err != nil {
			return nil, fmt.Errorf("fixtures row %d: %w", i+1, err)
		}

		out = append(out, fixture.Fixture{
			HomeTeam:       home,
			AwayTeam:       away,
			HomeScore:      homeScore,
			AwayScore:      awayScore,
			Finished:       t.boolAt(row, "finished"),
			KickoffAt:      parseKickoff(t.cell(row, "kickoff_time")),
			HomeDifficulty: homeDifficulty,
			AwayDifficulty: awayDifficulty,
		})
	}
	return out, nil
}

type fixtureJSONRow struct {
	TeamH           int64  `json:"team_h"`
	TeamA           int64  `json:"team_a"`
	TeamHScore      *int   `json:"team_h_score"`
	TeamAScore      *int   `json:"team_a_score"`
	Finished        bool   `json:"finished"`
	KickoffTime     string `json:"kickoff_time"`
	TeamHDifficulty *int   `json:"team_h_difficulty"`
	TeamADifficulty *int   `json:"team_a_difficulty"`
}

func (r *FixtureRepository) listJSON() ([]fixture.Fixture, error) {
	path := filepath.Join(r.dir, FileFixturesJSON)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var rows []fixtureJSONRow
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			HomeTeam:       row.TeamH,
			AwayTeam:       row.TeamA,
			HomeScore:      row.TeamHScore,
			AwayScore:      row.TeamAScore,
			Finished:       row.Finished,
			KickoffAt:      parseKickoff(row.KickoffTime),
			HomeDifficulty: row.TeamHDifficulty,
			AwayDifficulty: row.TeamADifficulty,
		})
	}
	return out, nil
}
