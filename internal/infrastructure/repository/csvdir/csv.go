package csvdir

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
)

// Transformed dataset file names.
const (
	FilePlayers  = "players.csv"
	FileTeams    = "teams.csv"
	FileEvents   = "events.csv"
	FileFixtures = "fixtures.csv"

	// Legacy raw fixture dump, accepted when fixtures.csv is absent.
	FileFixturesJSON = "fixtures.json"
)

// Dataset is one tabular file ready to be written to the transformed
// directory.
type Dataset struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteDataset serializes a dataset to <dir>/<name> through a pooled
// buffer.
func WriteDataset(dir string, ds Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir %s: %w", dir, err)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w := csv.NewWriter(buf)
	if err := w.Write(ds.Header); err != nil {
		return fmt.Errorf("write %s header: %w", ds.Name, err)
	}
	for _, row := range ds.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s row: %w", ds.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", ds.Name, err)
	}

	path := filepath.Join(dir, ds.Name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write dataset %s: %w", path, err)
	}
	return nil
}

// table is a loaded CSV file with header-indexed cell access.
type table struct {
	file    string
	columns map[string]int
	rows    [][]string
}

func loadTable(dir, file string) (*table, error) {
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}

	return &table{
		file:    file,
		columns: columns,
		rows:    records[1:],
	}, nil
}

// requireColumns fails when any named column is missing; the loader
// treats this as fatal rather than backfilling required data.
func (t *table) requireColumns(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return fmt.Errorf("%s: missing required column %q", t.file, name)
		}
	}
	return nil
}

func (t *table) hasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

func (t *table) cell(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *table) stringAt(row []string, column string) string {
	return t.cell(row, column)
}

// intAt parses an integer cell leniently: pandas renders nullable int
// columns as floats ("3.0"), so float forms are accepted.
func (t *table) intAt(row []string, column string) (int, error) {
	raw := t.cell(row, column)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: column %q: invalid integer %q", t.file, column, raw)
	}
	return int(v), nil
}

func (t *table) int64At(row []string, column string) (int64, error) {
	v, err := t.intAt(row, column)
	return int64(v), err
}

func (t *table) intPtrAt(row []string, column string) (*int, error) {
	raw := t.cell(row, column)
	if raw == "" {
		return nil, nil
	}
	v, err := t.intAt(row, column)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t *table) floatAt(row []string, column string) (float64, error) {
	raw := t.cell(row, column)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: column %q: invalid number %q", t.file, column, raw)
	}
	return v, nil
}

func (t *table) floatPtrAt(row []string, column string) (*float64, error) {
	raw := t.cell(row, column)
	if raw == "" {
		return nil, nil
	}
	v, err := t.floatAt(row, column)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (t *table) boolAt(row []string, column string) bool {
	switch strings.ToLower(t.cell(row, column)) {
	case "true", "t", "1", "yes":
		return true
	default:
		return false
	}
}

var kickoffLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseKickoff parses kickoff timestamps leniently; unparseable values
// degrade to the zero time, matching the coercing load of the source
// datasets.
func parseKickoff(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range kickoffLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
