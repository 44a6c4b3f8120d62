package usecase

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AnalysisOptions tunes one analysis run. DataTimestamp is stamped onto
// every result row, so the same inputs with the same timestamp produce
// byte-identical outputs.
type AnalysisOptions struct {
	TopTeams      int     `validate:"min=1"`
	PerTeam       int     `validate:"min=1"`
	TopPlayers    int     `validate:"min=1"`
	DiffThreshold float64 `validate:"min=0"`
	TempThreshold float64 `validate:"min=0,gtefield=DiffThreshold"`
	DataTimestamp string  `validate:"required"`
}

func (o AnalysisOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: analysis options: %v", ErrInvalidInput, err)
	}
	return nil
}
