package model

import (
	"math"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// Vendor represents a third-party vendor with its risk attributes and
// dependency edges. DependentVendorIDs are the vendors this vendor relies
// on; DependencyOfIDs are the vendors that rely on this vendor. The edge
// set is an unconstrained self-referential relation and may contain cycles.
type Vendor struct {
	ID             types.VendorID
	OrganizationID types.OrgID
	Name           string
	Industry       string
	ContractValue  decimal.Decimal

	SecurityPostureScore        int // 0-100
	DataSensitivityLevel        int // 1-5
	ServiceCriticalityLevel     int // 1-5
	IncidentHistoryScore        int // 0-100, higher = fewer incidents
	ComplianceScore             int // 0-100
	ThirdPartyDependenciesScore int // 0-100

	// Derived from the attributes above; RecalculateRiskScore keeps them
	// consistent and must run before any mutated vendor is persisted.
	OverallRiskScore float64
	RiskLevel        types.RiskLevel

	DependentVendorIDs []types.VendorID
	DependencyOfIDs    []types.VendorID

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks that all risk attributes are within their valid ranges
func (v *Vendor) Validate() error {
	if v.Name == "" {
		return goerr.New("vendor name is required")
	}
	if v.SecurityPostureScore < 0 || v.SecurityPostureScore > 100 {
		return goerr.New("security posture score must be between 0 and 100", goerr.V("score", v.SecurityPostureScore))
	}
	if v.DataSensitivityLevel < 1 || v.DataSensitivityLevel > 5 {
		return goerr.New("data sensitivity level must be between 1 and 5", goerr.V("level", v.DataSensitivityLevel))
	}
	if v.ServiceCriticalityLevel < 1 || v.ServiceCriticalityLevel > 5 {
		return goerr.New("service criticality level must be between 1 and 5", goerr.V("level", v.ServiceCriticalityLevel))
	}
	if v.IncidentHistoryScore < 0 || v.IncidentHistoryScore > 100 {
		return goerr.New("incident history score must be between 0 and 100", goerr.V("score", v.IncidentHistoryScore))
	}
	if v.ComplianceScore < 0 || v.ComplianceScore > 100 {
		return goerr.New("compliance score must be between 0 and 100", goerr.V("score", v.ComplianceScore))
	}
	if v.ThirdPartyDependenciesScore < 0 || v.ThirdPartyDependenciesScore > 100 {
		return goerr.New("third party dependencies score must be between 0 and 100", goerr.V("score", v.ThirdPartyDependenciesScore))
	}
	if v.ContractValue.IsNegative() {
		return goerr.New("contract value must not be negative", goerr.V("value", v.ContractValue))
	}
	return nil
}

// RecalculateRiskScore recomputes OverallRiskScore and RiskLevel from the
// current attribute values. The weighted base score is mitigated by the
// compliance factor (1 - compliance/100) and rounded to 3 decimals.
// Incident history is inverted: a lower score means more incidents.
func (v *Vendor) RecalculateRiskScore() float64 {
	dsNormalized := float64(v.DataSensitivityLevel) / 5 * 100
	scNormalized := float64(v.ServiceCriticalityLevel) / 5 * 100

	baseScore := float64(v.SecurityPostureScore)*0.30 +
		dsNormalized*0.20 +
		scNormalized*0.20 +
		float64(100-v.IncidentHistoryScore)*0.15 +
		float64(v.ThirdPartyDependenciesScore)*0.15

	complianceReduction := 1 - float64(v.ComplianceScore)/100

	v.OverallRiskScore = math.Round(baseScore*complianceReduction*1000) / 1000
	v.RiskLevel = types.RiskLevelFromScore(v.OverallRiskScore)

	return v.OverallRiskScore
}

// Clone returns a deep copy of the vendor
func (v *Vendor) Clone() *Vendor {
	clone := *v
	clone.DependentVendorIDs = append([]types.VendorID(nil), v.DependentVendorIDs...)
	clone.DependencyOfIDs = append([]types.VendorID(nil), v.DependencyOfIDs...)
	return &clone
}
