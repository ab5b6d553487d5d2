package types

import "fmt"

// ScenarioType represents the incident category a simulation models
type ScenarioType string

const (
	ScenarioDataBreach        ScenarioType = "data_breach"
	ScenarioRansomware        ScenarioType = "ransomware"
	ScenarioServiceDisruption ScenarioType = "service_disruption"
	ScenarioSupplyChain       ScenarioType = "supply_chain"
	ScenarioMultiVendor       ScenarioType = "multi_vendor"
)

// AllScenarioTypes returns all valid scenario types
func AllScenarioTypes() []ScenarioType {
	return []ScenarioType{
		ScenarioDataBreach,
		ScenarioRansomware,
		ScenarioServiceDisruption,
		ScenarioSupplyChain,
		ScenarioMultiVendor,
	}
}

// IsValid checks if the scenario type is valid
func (s ScenarioType) IsValid() bool {
	switch s {
	case ScenarioDataBreach,
		ScenarioRansomware,
		ScenarioServiceDisruption,
		ScenarioSupplyChain,
		ScenarioMultiVendor:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scenario type
func (s ScenarioType) String() string {
	return string(s)
}

// ParseScenarioType parses a string into a ScenarioType
func ParseScenarioType(s string) (ScenarioType, error) {
	st := ScenarioType(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid scenario type: %s", s)
	}
	return st, nil
}
