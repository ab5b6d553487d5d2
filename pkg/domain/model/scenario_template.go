package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

// ScenarioTemplate is an immutable catalog entry describing one incident
// scenario type with its default parameters.
type ScenarioTemplate struct {
	ID           string
	ScenarioType types.ScenarioType
	Name         string
	Description  string

	DefaultParameters map[string]any

	IsActive bool
	Version  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuiltinScenarioTemplates returns the scenario catalog. The default
// parameters mirror the values the calculators assume when a parameter is
// omitted, so a template-seeded simulation and a bare one behave the same.
func BuiltinScenarioTemplates() []*ScenarioTemplate {
	return []*ScenarioTemplate{
		{
			ID:           "builtin-data-breach",
			ScenarioType: types.ScenarioDataBreach,
			Name:         "Data Breach",
			Description:  "Unauthorized access and exfiltration of records held by the vendor",
			DefaultParameters: map[string]any{
				"records_compromised":  10000,
				"data_types":           []string{"PII"},
				"detection_time_hours": 72.0,
				"breach_vector":        "phishing",
			},
			IsActive: true,
			Version:  "1.0",
		},
		{
			ID:           "builtin-ransomware",
			ScenarioType: types.ScenarioRansomware,
			Name:         "Ransomware",
			Description:  "Encryption attack against the vendor with a ransom demand",
			DefaultParameters: map[string]any{
				"ransom_amount":    500000,
				"downtime_hours":   168.0,
				"encryption_scope": "full",
				"backup_available": true,
			},
			IsActive: true,
			Version:  "1.0",
		},
		{
			ID:           "builtin-service-disruption",
			ScenarioType: types.ScenarioServiceDisruption,
			Name:         "Service Disruption",
			Description:  "Outage of a vendor-provided service",
			DefaultParameters: map[string]any{
				"duration_hours":             24.0,
				"disruption_cause":           "infrastructure_failure",
				"customer_impact_percentage": 50.0,
			},
			IsActive: true,
			Version:  "1.0",
		},
		{
			ID:           "builtin-supply-chain",
			ScenarioType: types.ScenarioSupplyChain,
			Name:         "Supply Chain Compromise",
			Description:  "Malicious code delivered through vendor software",
			DefaultParameters: map[string]any{
				"affected_downstream_count": 100,
				"detection_delay_days":      180.0,
				"compromise_method":         "build_system",
			},
			IsActive: true,
			Version:  "1.0",
		},
		{
			ID:           "builtin-multi-vendor",
			ScenarioType: types.ScenarioMultiVendor,
			Name:         "Multi-Vendor Failure",
			Description:  "Domino effect across dependent vendors from an initial failure",
			DefaultParameters: map[string]any{
				"initial_failure_type": types.ScenarioDataBreach.String(),
				"cascade_probability":  0.6,
			},
			IsActive: true,
			Version:  "1.0",
		},
	}
}
