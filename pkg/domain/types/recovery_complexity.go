package types

import "fmt"

// RecoveryComplexity represents how hard restoring normal operations will be
type RecoveryComplexity string

const (
	RecoveryLow      RecoveryComplexity = "low"
	RecoveryMedium   RecoveryComplexity = "medium"
	RecoveryHigh     RecoveryComplexity = "high"
	RecoveryVeryHigh RecoveryComplexity = "very_high"
)

// AllRecoveryComplexities returns all valid recovery complexity tiers
func AllRecoveryComplexities() []RecoveryComplexity {
	return []RecoveryComplexity{
		RecoveryLow,
		RecoveryMedium,
		RecoveryHigh,
		RecoveryVeryHigh,
	}
}

// IsValid checks if the recovery complexity is valid
func (c RecoveryComplexity) IsValid() bool {
	switch c {
	case RecoveryLow, RecoveryMedium, RecoveryHigh, RecoveryVeryHigh:
		return true
	default:
		return false
	}
}

// Score returns the risk score contribution of the complexity tier
func (c RecoveryComplexity) Score() float64 {
	switch c {
	case RecoveryLow:
		return 5
	case RecoveryMedium:
		return 10
	case RecoveryHigh:
		return 15
	case RecoveryVeryHigh:
		return 20
	default:
		return 10
	}
}

// String returns the string representation of the recovery complexity
func (c RecoveryComplexity) String() string {
	return string(c)
}

// ParseRecoveryComplexity parses a string into a RecoveryComplexity
func ParseRecoveryComplexity(s string) (RecoveryComplexity, error) {
	c := RecoveryComplexity(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid recovery complexity: %s", s)
	}
	return c, nil
}
