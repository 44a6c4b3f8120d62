package usecase

import (
	"path/filepath"
	"time"
)

// DataTimestamp formats a run time for result rows.
func DataTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05Z")
}

// DirTimestamp formats a run time for directory names.
func DirTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02_1504")
}

// RunPaths fixes the directory layout for one run: raw snapshots,
// transformed datasets, analysis outputs.
type RunPaths struct {
	Raw         string
	Transformed string
	Analysis    string
}

// NewRunPaths lays a run out under <dataDir>/fpl_dump, reusing the same
// dump across runs so existing snapshots are replayed. With archive set
// the dump directory carries the run timestamp instead, keeping one dump
// per run.
func NewRunPaths(dataDir, outDir string, runAt time.Time, archive bool) RunPaths {
	dump := "fpl_dump"
	if archive {
		dump = "fpl_dump_" + DirTimestamp(runAt)
	}
	return RunPaths{
		Raw:         filepath.Join(dataDir, dump, "raw"),
		Transformed: filepath.Join(dataDir, dump, "transformed"),
		Analysis:    outDir,
	}
}
