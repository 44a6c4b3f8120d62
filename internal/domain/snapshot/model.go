package snapshot

import "time"

// Raw dump file names inside a run's raw directory.
const (
	FileBootstrap = "bootstrap_static.json"
	FileFixtures  = "fixtures.json"
)

// Payload is one raw API response captured during extraction.
type Payload struct {
	Endpoint  string
	File      string
	Body      []byte
	FetchedAt time.Time
}

// Store persists raw payloads for the transform stage and replays them
// on later runs instead of refetching.
type Store interface {
	Exists(file string) bool
	Write(p Payload) error
	Read(file string) ([]byte, error)
}
