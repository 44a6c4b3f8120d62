package csvdir

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-weekly/internal/domain/team"
)

// TeamRepository loads the transformed teams dataset.
type TeamRepository struct {
	dir string
}

func NewTeamRepository(dir string) *TeamRepository {
	return &TeamRepository{dir: dir}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	_ = ctx

	t, err := loadTable(r.dir, FileTeams)
	if err != nil {
		return nil, err
	}
	if err := t.requireColumns("id", "name"); err != nil {
		return nil, err
	}

	hasShort := t.hasColumn("short_name")

	out := make([]team.Team, 0, len(t.rows))
	for i, row := range t.rows {
		id, err := t.int64At(row, "id")
		if err != nil {
			return nil, fmt.Errorf("teams row %d: %w", i+1, err)
		}
		item := team.Team{
			ID:   id,
			Name: t.stringAt(row, "name"),
		}
		if hasShort {
			item.ShortName = t.stringAt(row, "short_name")
		} else {
			item.ShortName = team.DeriveShort(item.Name)
		}
		out = append(out, item)
	}
	return out, nil
}
