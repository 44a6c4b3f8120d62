package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrEmptyDataset          = errors.New("dataset is empty")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
