package csvout

import (
	"context"
	"strconv"

	"github.com/riskibarqy/fpl-weekly/internal/domain/shortlist"
	"github.com/riskibarqy/fpl-weekly/internal/domain/teamform"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/repository/csvdir"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
)

// Result table file names.
const (
	FileTeamTable = "team_last3_next3.csv"
	FilePerTeam   = "player_shortlist_per_team.csv"
	FileTopK      = "player_shortlist_topK.csv"
)

var teamTableColumns = []string{
	"team_id", "team", "blend_score_z", "form_score_z", "fixture_score_z",
	"last3_points", "upcoming_next3_count", "next3_avg_difficulty",
	"next3_opponents", "next3_home_away", "data_timestamp",
	"form_score", "fixture_score", "blend_score",
}

// Writer lands the result tables as CSV files in the analysis
// directory. Implements usecase.ResultWriter.
type Writer struct {
	dir    string
	logger *logging.Logger
}

func NewWriter(dir string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

func (w *Writer) WriteTeamTable(ctx context.Context, rows []teamform.Row) error {
	ds := csvdir.Dataset{
		Name:   FileTeamTable,
		Header: teamTableColumns,
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		ds.Rows = append(ds.Rows, []string{
			strconv.FormatInt(r.TeamID, 10),
			r.Team,
			fmtFloat(r.BlendScoreZ),
			fmtFloat(r.FormScoreZ),
			fmtFloat(r.FixtureScoreZ),
			strconv.Itoa(r.Last3Points),
			strconv.Itoa(r.UpcomingNext3),
			fmtFloatPtr(r.Next3AvgDifficulty),
			r.Next3Opponents,
			r.Next3HomeAway,
			r.DataTimestamp,
			fmtFloat(r.FormScore),
			fmtFloat(r.FixtureScore),
			fmtFloat(r.BlendScore),
		})
	}
	if err := csvdir.WriteDataset(w.dir, ds); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "team table written", "file", FileTeamTable, "rows", len(rows))
	return nil
}

func (w *Writer) WriteShortlists(ctx context.Context, perTeam, topK []shortlist.Row) error {
	for _, out := range []struct {
		file string
		rows []shortlist.Row
	}{
		{file: FilePerTeam, rows: perTeam},
		{file: FileTopK, rows: topK},
	} {
		ds := csvdir.Dataset{
			Name:   out.file,
			Header: shortlist.Columns(),
			Rows:   make([][]string, 0, len(out.rows)),
		}
		for _, r := range out.rows {
			ds.Rows = append(ds.Rows, shortlistCells(r))
		}
		if err := csvdir.WriteDataset(w.dir, ds); err != nil {
			return err
		}
		w.logger.InfoContext(ctx, "shortlist written", "file", out.file, "rows", len(out.rows))
	}
	return nil
}

func shortlistCells(r shortlist.Row) []string {
	return []string{
		strconv.FormatInt(r.PlayerID, 10),
		r.WebName,
		r.Team,
		r.TeamShort,
		r.Position,
		fmtFloatPtr(r.BlendScoreZ),
		fmtFloatPtr(r.FormScoreZ),
		fmtFloatPtr(r.FixtureScoreZ),
		fmtFloat(r.NowCostM),
		fmtFloatPtr(r.SelectedByPercent),
		fmtFloat(r.Form),
		fmtFloat(r.PointsPerGame),
		fmtIntPtr(r.LastGWPoints),
		fmtFloatPtr(r.PriceChangeGW),
		fmtFloatPtr(r.PriceChangeSeason),
		r.OwnershipLabel,
		r.Availability,
		strconv.Itoa(r.ShortlistRank),
		strconv.FormatBool(r.IsBestPick),
		r.DataTimestamp,
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fmtFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return fmtFloat(*v)
}

func fmtIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
