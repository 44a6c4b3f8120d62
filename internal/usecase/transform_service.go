package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-weekly/internal/domain/snapshot"
	"github.com/riskibarqy/fpl-weekly/internal/infrastructure/repository/csvdir"
	"github.com/riskibarqy/fpl-weekly/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// Player columns projected from the bootstrap elements array, in output
// order. id is renamed to player_id on write.
var playerColumns = []string{
	"id", "first_name", "second_name", "web_name", "team", "element_type",
	"now_cost", "selected_by_percent", "status", "form", "points_per_game",
	"minutes", "goals_scored", "assists", "clean_sheets", "goals_conceded",
	"yellow_cards", "red_cards", "expected_goals", "expected_assists", "expected_goal_involvements",
	"news", "news_added",
	"chance_of_playing_this_round", "chance_of_playing_next_round",
	"event_points", "cost_change_event", "cost_change_start",
}

// Fixture columns projected from the fixtures array.
var fixtureColumns = []string{
	"code", "event", "finished", "finished_provisional", "id",
	"kickoff_time", "minutes", "provisional_start_time", "started",
	"team_a", "team_a_score", "team_h", "team_h_score",
	"team_h_difficulty", "team_a_difficulty", "pulse_id",
}

// TransformService projects the raw snapshots onto tabular datasets in
// the transformed directory: players.csv, teams.csv, events.csv from
// bootstrap-static, fixtures.csv from the fixtures dump.
type TransformService struct {
	store  snapshot.Store
	outDir string
	logger *logging.Logger

	// write is swappable in tests.
	write func(dir string, ds csvdir.Dataset) error
}

func NewTransformService(store snapshot.Store, outDir string, logger *logging.Logger) *TransformService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TransformService{
		store:  store,
		outDir: outDir,
		logger: logger,
		write:  csvdir.WriteDataset,
	}
}

type bootstrapDoc struct {
	Elements []map[string]any `json:"elements"`
	Teams    []map[string]any `json:"teams"`
	Events   []map[string]any `json:"events"`
}

func (s *TransformService) Run(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "TransformService.Run")
	defer span.End()

	rawBootstrap, err := s.store.Read(snapshot.FileBootstrap)
	if err != nil {
		return err
	}
	var bootstrap bootstrapDoc
	if err := sonic.Unmarshal(rawBootstrap, &bootstrap); err != nil {
		return fmt.Errorf("parse %s: %w", snapshot.FileBootstrap, err)
	}
	if len(bootstrap.Elements) == 0 {
		return fmt.Errorf("%w: bootstrap has no elements", ErrEmptyDataset)
	}

	rawFixtures, err := s.store.Read(snapshot.FileFixtures)
	if err != nil {
		return err
	}
	var fixtures []map[string]any
	if err := sonic.Unmarshal(rawFixtures, &fixtures); err != nil {
		return fmt.Errorf("parse %s: %w", snapshot.FileFixtures, err)
	}

	datasets := []csvdir.Dataset{
		playersDataset(bootstrap.Elements, bootstrap.Teams),
		genericDataset(csvdir.FileTeams, bootstrap.Teams),
		genericDataset(csvdir.FileEvents, bootstrap.Events),
		projectedDataset(csvdir.FileFixtures, fixtures, fixtureColumns),
	}

	p := pool.New().WithErrors()
	for _, ds := range datasets {
		ds := ds
		p.Go(func() error {
			if err := s.write(s.outDir, ds); err != nil {
				return err
			}
			s.logger.DebugContext(ctx, "dataset written", "file", ds.Name, "rows", len(ds.Rows))
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("write transformed datasets: %w", err)
	}

	s.logger.InfoContext(ctx, "transform complete",
		"dir", s.outDir,
		"players", len(bootstrap.Elements),
		"teams", len(bootstrap.Teams),
		"fixtures", len(fixtures))
	return nil
}

// playersDataset projects the element columns, joins team_name on, and
// derives now_cost_m. The id column is renamed to player_id.
func playersDataset(elements, teams []map[string]any) csvdir.Dataset {
	columns := presentColumns(elements, playerColumns)

	teamNames := make(map[int64]string, len(teams))
	for _, t := range teams {
		teamNames[asInt64(t["id"])] = asString(t["name"])
	}

	header := make([]string, 0, len(columns)+2)
	for _, c := range columns {
		if c == "id" {
			header = append(header, "player_id")
			continue
		}
		header = append(header, c)
	}
	header = append(header, "team_name", "now_cost_m")

	rows := make([][]string, 0, len(elements))
	for _, e := range elements {
		row := make([]string, 0, len(header))
		for _, c := range columns {
			row = append(row, cellString(e[c]))
		}
		row = append(row, teamNames[asInt64(e["team"])])
		row = append(row, strconv.FormatFloat(asFloat64(e["now_cost"])/10.0, 'f', -1, 64))
		rows = append(rows, row)
	}

	return csvdir.Dataset{Name: csvdir.FilePlayers, Header: header, Rows: rows}
}

// genericDataset keeps every column, ordered by first appearance across
// the rows.
func genericDataset(name string, records []map[string]any) csvdir.Dataset {
	var columns []string
	seen := make(map[string]bool)
	for _, r := range records {
		for key := range r {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	// Map iteration order is random; fix it for reproducible files.
	sort.Strings(columns)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, cellString(r[c]))
		}
		rows = append(rows, row)
	}
	return csvdir.Dataset{Name: name, Header: columns, Rows: rows}
}

func projectedDataset(name string, records []map[string]any, wanted []string) csvdir.Dataset {
	columns := presentColumns(records, wanted)
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(columns))
		for _, c := range columns {
			row = append(row, cellString(r[c]))
		}
		rows = append(rows, row)
	}
	return csvdir.Dataset{Name: name, Header: columns, Rows: rows}
}

// presentColumns filters the wanted list to columns that occur in at
// least one record, preserving the wanted order.
func presentColumns(records []map[string]any, wanted []string) []string {
	present := make(map[string]bool)
	for _, r := range records {
		for key := range r {
			present[key] = true
		}
	}
	out := make([]string, 0, len(wanted))
	for _, c := range wanted {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

func cellString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		raw, err := sonic.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(raw)
	}
}

func asInt64(v any) int64 {
	switch value := v.(type) {
	case float64:
		return int64(value)
	case string:
		out, _ := strconv.ParseInt(value, 10, 64)
		return out
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		out, _ := strconv.ParseFloat(value, 64)
		return out
	default:
		return 0
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
