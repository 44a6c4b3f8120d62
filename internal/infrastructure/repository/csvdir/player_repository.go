package csvdir

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-weekly/internal/domain/player"
)

// PlayerRepository loads the transformed players dataset.
type PlayerRepository struct {
	dir string
}

func NewPlayerRepository(dir string) *PlayerRepository {
	return &PlayerRepository{dir: dir}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	_ = ctx

	t, err := loadTable(r.dir, FilePlayers)
	if err != nil {
		return nil, err
	}

	// The transform stage renames id to player_id; accept both so raw
	// pandas exports load too.
	idColumn := "player_id"
	if !t.hasColumn(idColumn) {
		idColumn = "id"
	}
	if err := t.requireColumns(idColumn, "web_name", "team", "element_type", "now_cost", "status"); err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(t.rows))
	for i, row := range t.rows {
		p, err := r.mapRow(t, idColumn, row)
		if err != nil {
			return nil, fmt.Errorf("players row %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PlayerRepository) mapRow(t *table, idColumn string, row []string) (player.Player, error) {
	id, err := t.int64At(row, idColumn)
	if err != nil {
		return player.Player{}, err
	}
	teamID, err := t.int64At(row, "team")
	if err != nil {
		return player.Player{}, err
	}
	elementType, err := t.intAt(row, "element_type")
	if err != nil {
		return player.Player{}, err
	}
	nowCost, err := t.intAt(row, "now_cost")
	if err != nil {
		return player.Player{}, err
	}
	selected, err := t.floatPtrAt(row, "selected_by_percent")
	if err != nil {
		return player.Player{}, err
	}
	form, err := t.floatAt(row, "form")
	if err != nil {
		return player.Player{}, err
	}
	ppg, err := t.floatAt(row, "points_per_game")
	if err != nil {
		return player.Player{}, err
	}
	minutes, err := t.intAt(row, "minutes")
	if err != nil {
		return player.Player{}, err
	}
	eventPoints, err := t.intPtrAt(row, "event_points")
	if err != nil {
		return player.Player{}, err
	}
	costChangeEvent, err := t.intPtrAt(row, "cost_change_event")
	if err != nil {
		return player.Player{}, err
	}
	costChangeStart, err := t.intPtrAt(row, "cost_change_start")
	if err != nil {
		return player.Player{}, err
	}
	chanceThis, err := t.intPtrAt(row, "chance_of_playing_this_round")
	if err != nil {
		return player.Player{}, err
	}
	chanceNext, err := t.intPtrAt(row, "chance_of_playing_next_round")
	if err != nil {
		return player.Player{}, err
	}

	return player.Player{
		ID:                id,
		WebName:           t.stringAt(row, "web_name"),
		TeamID:            teamID,
		ElementType:       elementType,
		NowCost:           nowCost,
		SelectedByPercent: selected,
		Status:            player.Status(t.stringAt(row, "status")),
		Form:              form,
		PointsPerGame:     ppg,
		Minutes:           minutes,
		EventPoints:       eventPoints,
		CostChangeEvent:   costChangeEvent,
		CostChangeStart:   costChangeStart,
		ChanceThisRound:   chanceThis,
		ChanceNextRound:   chanceNext,
	}, nil
}
