package types

import "fmt"

// RiskLevel represents the categorical risk band of a vendor or score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
		RiskLevelCritical,
	}
}

// IsValid checks if the risk level is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical:
		return true
	default:
		return false
	}
}

// Rank returns an ordinal rank for the risk level, low=0 through critical=3
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return 1
	}
}

// CascadeMultiplier returns the cascade impact multiplier for the risk level
func (r RiskLevel) CascadeMultiplier() float64 {
	switch r {
	case RiskLevelLow:
		return 0.5
	case RiskLevelMedium:
		return 1.0
	case RiskLevelHigh:
		return 1.5
	case RiskLevelCritical:
		return 2.0
	default:
		return 1.0
	}
}

// String returns the string representation of the risk level
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}

// RiskLevelFromScore bands a vendor overall risk score into a risk level.
// Bands: ≤25 low, ≤50 medium, ≤75 high, else critical.
func RiskLevelFromScore(score float64) RiskLevel {
	switch {
	case score <= 25:
		return RiskLevelLow
	case score <= 50:
		return RiskLevelMedium
	case score <= 75:
		return RiskLevelHigh
	default:
		return RiskLevelCritical
	}
}

// CategorizeRiskScore bands a simulation risk score into a risk level.
// Bands: ≥75 critical, ≥50 high, ≥25 medium, else low.
func CategorizeRiskScore(score float64) RiskLevel {
	switch {
	case score >= 75:
		return RiskLevelCritical
	case score >= 50:
		return RiskLevelHigh
	case score >= 25:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}
