package engine

import "fmt"

// ValidatePlaybook rejects playbooks the engine cannot score: an empty
// rule set or any rule with a non-positive weight. Both conditions wrap
// ErrInvalidPlaybook so callers can match with errors.Is.
func ValidatePlaybook(playbook Playbook) error {
	if len(playbook.Rules) == 0 {
		return fmt.Errorf("%w: playbook %q has no rules", ErrInvalidPlaybook, playbook.Name)
	}

	for i, rule := range playbook.Rules {
		if rule.Weight <= 0 {
			return fmt.Errorf(
				"%w: rule %q (index %d) has non-positive weight %v",
				ErrInvalidPlaybook, rule.ID, i, rule.Weight,
			)
		}
		if rule.Criteria.ClauseType == "" {
			return fmt.Errorf(
				"%w: rule %q (index %d) has no clause type",
				ErrInvalidPlaybook, rule.ID, i,
			)
		}
	}

	return nil
}
