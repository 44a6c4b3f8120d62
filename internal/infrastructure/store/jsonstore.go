package store

import (
	"fmt"
	"os"
	"path/filepath"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-weekly/internal/domain/snapshot"
)

// JSONStore persists raw API payloads as JSON files under a single raw
// directory. Implements snapshot.Store.
type JSONStore struct {
	dir    string
	pretty bool
}

func NewJSONStore(dir string, pretty bool) *JSONStore {
	return &JSONStore{dir: dir, pretty: pretty}
}

func (s *JSONStore) Exists(file string) bool {
	info, err := os.Stat(filepath.Join(s.dir, file))
	return err == nil && !info.IsDir()
}

func (s *JSONStore) Write(p snapshot.Payload) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create raw dir %s: %w", s.dir, err)
	}

	body := p.Body
	if s.pretty {
		indented, err := indentJSON(p.Body)
		if err != nil {
			return fmt.Errorf("indent %s payload: %w", p.File, err)
		}
		body = indented
	}

	path := filepath.Join(s.dir, p.File)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

func (s *JSONStore) Read(file string) ([]byte, error) {
	path := filepath.Join(s.dir, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	return raw, nil
}

func indentJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return sonic.MarshalIndent(doc, "", "  ")
}
