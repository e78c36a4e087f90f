package clauses

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/parley-labs/parley/engine"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInputs checks each clause in an ingest payload against its
// struct tags before anything reaches storage. Confidence stays within
// [0, 1] and page is non-negative so stored sets never feed the engine
// values outside its scoring domain.
func validateInputs(inputs []ClauseInput) error {
	for i, input := range inputs {
		switch input.RiskLevel {
		case engine.RiskLow, engine.RiskMedium, engine.RiskHigh:
		default:
			return fmt.Errorf("%w: clause %d: %q", ErrInvalidRiskLevel, i, input.RiskLevel)
		}

		if err := validate.Struct(input); err != nil {
			return fmt.Errorf("%w: clause %d: %v", ErrInvalidClause, i, err)
		}
	}

	return nil
}
