package team

import "context"

// Repository exposes team reference reads.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
}
