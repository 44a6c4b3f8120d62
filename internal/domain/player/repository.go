package player

import "context"

// Repository exposes player reads for a loaded snapshot.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
}
