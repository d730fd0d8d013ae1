package domain

import "fmt"

// ValidatePositiveAmount checks that a reward amount is positive.
func ValidatePositiveAmount(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	return nil
}

// ValidateQuest checks a catalog entry for admin configuration errors. A
// quest without rewards or without a positive target cannot be served.
func ValidateQuest(q Quest) error {
	if len(q.Rewards) == 0 {
		return ErrConfiguration(fmt.Sprintf("quest %s has no rewards", q.Slug))
	}
	if q.Condition.Target <= 0 {
		return ErrConfiguration(fmt.Sprintf("quest %s has non-positive target %d", q.Slug, q.Condition.Target))
	}
	for _, r := range q.Rewards {
		switch r.Type {
		case RewardPoints, RewardGems:
			if r.Amount <= 0 {
				return ErrConfiguration(fmt.Sprintf("quest %s has non-positive %s reward", q.Slug, r.Type))
			}
		case RewardChest:
			if r.ChestType == "" {
				return ErrConfiguration(fmt.Sprintf("quest %s has chest reward without chest type", q.Slug))
			}
		default:
			return ErrConfiguration(fmt.Sprintf("quest %s has unknown reward type %s", q.Slug, r.Type))
		}
	}
	return nil
}
