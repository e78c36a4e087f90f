package playbooks

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/parley-labs/parley/engine"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateRules checks incoming rules against both the struct tags and
// the engine's scoring preconditions before anything reaches storage.
func validateRules(name string, rules []engine.Rule) error {
	for i, rule := range rules {
		if err := validate.Struct(rule); err != nil {
			return fmt.Errorf(
				"%w: rule %q (index %d): %v",
				engine.ErrInvalidPlaybook, rule.ID, i, err,
			)
		}
	}

	return engine.ValidatePlaybook(engine.Playbook{Name: name, Rules: rules})
}
