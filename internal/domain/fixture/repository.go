package fixture

import "context"

// Repository exposes fixture reads for a loaded snapshot.
type Repository interface {
	List(ctx context.Context) ([]Fixture, error)
}
