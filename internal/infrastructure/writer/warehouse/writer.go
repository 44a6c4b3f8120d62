package warehouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fpl-weekly/internal/domain/shortlist"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Result table names, schema managed by db/migrations.
const (
	TableTeamForm = "team_last3_next3"
	TablePerTeam  = "player_shortlist_per_team"
	TableTopK     = "player_shortlist_topk"
)

// Writer lands the result tables in Postgres. Each write replaces the
// rows for the run's data_timestamp, so re-running a timestamp is
// idempotent. Implements usecase.ResultWriter.
type Writer struct {
	db     *sqlx.DB
	logger *logging.Logger
}

func NewWriter(db *sqlx.DB, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{db: db, logger: logger}
}

// Open connects to the warehouse and verifies the connection.
func Open(ctx context.Context, dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping warehouse: %w", err)
	}
	return db, nil
}

func (w *Writer) WriteTeamTable(ctx context.Context, rows []teamform.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin team table tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteTimestamp(ctx, tx, TableTeamForm, rows[0].DataTimestamp); err != nil {
		return err
	}
	for _, r := range rows {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO team_last3_next3 (
	team_id, team, blend_score_z, form_score_z, fixture_score_z,
	last3_points, upcoming_next3_count, next3_avg_difficulty,
	next3_opponents, next3_home_away, data_timestamp,
	form_score, fixture_score, blend_score
) VALUES (
	:team_id, :team, :blend_score_z, :form_score_z, :fixture_score_z,
	:last3_points, :upcoming_next3_count, :next3_avg_difficulty,
	:next3_opponents, :next3_home_away, :data_timestamp,
	:form_score, :fixture_score, :blend_score
)`, teamFormRecord(r))
		if err != nil {
			return fmt.Errorf("bind team row %d query: %w", r.TeamID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("insert team row %d: %w", r.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team table: %w", err)
	}
	w.logger.InfoContext(ctx, "team table loaded", "table", TableTeamForm, "rows", len(rows))
	return nil
}

func (w *Writer) WriteShortlists(ctx context.Context, perTeam, topK []shortlist.Row) error {
	if err := w.writeShortlist(ctx, TablePerTeam, perTeam); err != nil {
		return err
	}
	return w.writeShortlist(ctx, TableTopK, topK)
}

func (w *Writer) writeShortlist(ctx context.Context, table string, rows []shortlist.Row) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := w.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s tx: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := deleteTimestamp(ctx, tx, table, rows[0].DataTimestamp); err != nil {
		return err
	}
	insert := fmt.Sprintf(`
INSERT INTO %s (
	player_id, web_name, team, team_short, position,
	blend_score_z, form_score_z, fixture_score_z,
	now_cost_m, selected_by_percent, form, points_per_game,
	last_gw_points, price_change_gw, price_change_season, ownership_label,
	availability, shortlist_rank, is_best_pick, data_timestamp
) VALUES (
	:player_id, :web_name, :team, :team_short, :position,
	:blend_score_z, :form_score_z, :fixture_score_z,
	:now_cost_m, :selected_by_percent, :form, :points_per_game,
	:last_gw_points, :price_change_gw, :price_change_season, :ownership_label,
	:availability, :shortlist_rank, :is_best_pick, :data_timestamp
)`, table)
	for _, r := range rows {
		sqlQuery, args, err := sqlx.Named(insert, shortlistRecord(r))
		if err != nil {
			return fmt.Errorf("bind %s row %d query: %w", table, r.PlayerID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, r.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	w.logger.InfoContext(ctx, "shortlist loaded", "table", table, "rows", len(rows))
	return nil
}

func deleteTimestamp(ctx context.Context, tx *sqlx.Tx, table, dataTimestamp string) error {
	sqlQuery := tx.Rebind(fmt.Sprintf("DELETE FROM %s WHERE data_timestamp = ?", table))
	if _, err := tx.ExecContext(ctx, sqlQuery, dataTimestamp); err != nil {
		return fmt.Errorf("clear %s for %s: %w", table, dataTimestamp, err)
	}
	return nil
}

func teamFormRecord(r teamform.Row) map[string]any {
	return map[string]any{
		"team_id":              r.TeamID,
		"team":                 r.Team,
		"blend_score_z":        r.BlendScoreZ,
		"form_score_z":         r.FormScoreZ,
		"fixture_score_z":      r.FixtureScoreZ,
		"last3_points":         r.Last3Points,
		"upcoming_next3_count": r.UpcomingNext3,
		"next3_avg_difficulty": r.Next3AvgDifficulty,
		"next3_opponents":      r.Next3Opponents,
		"next3_home_away":      r.Next3HomeAway,
		"data_timestamp":       r.DataTimestamp,
		"form_score":           r.FormScore,
		"fixture_score":        r.FixtureScore,
		"blend_score":          r.BlendScore,
	}
}

func shortlistRecord(r shortlist.Row) map[string]any {
	return map[string]any{
		"player_id":           r.PlayerID,
		"web_name":            r.WebName,
		"team":                r.Team,
		"team_short":          r.TeamShort,
		"position":            r.Position,
		"blend_score_z":       r.BlendScoreZ,
		"form_score_z":        r.FormScoreZ,
		"fixture_score_z":     r.FixtureScoreZ,
		"now_cost_m":          r.NowCostM,
		"selected_by_percent": r.SelectedByPercent,
		"form":                r.Form,
		"points_per_game":     r.PointsPerGame,
		"last_gw_points":      r.LastGWPoints,
		"price_change_gw":     r.PriceChangeGW,
		"price_change_season": r.PriceChangeSeason,
		"ownership_label":     r.OwnershipLabel,
		"availability":        r.Availability,
		"shortlist_rank":      r.ShortlistRank,
		"is_best_pick":        r.IsBestPick,
		"data_timestamp":      r.DataTimestamp,
	}
}
