package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// BusinessProcess represents a critical business process of an organization
// and the vendors it depends on.
type BusinessProcess struct {
	ID             types.ProcessID
	OrganizationID types.OrgID
	Name           string
	Description    string

	CriticalityLevel          int // 1-5, 5 being most critical
	HourlyOperatingCost       decimal.Decimal
	AnnualRevenueContribution decimal.Decimal

	DependentVendorIDs []types.VendorID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DependsOn reports whether the process depends on the given vendor
func (p *BusinessProcess) DependsOn(vendorID types.VendorID) bool {
	for _, id := range p.DependentVendorIDs {
		if id == vendorID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the business process
func (p *BusinessProcess) Clone() *BusinessProcess {
	clone := *p
	clone.DependentVendorIDs = append([]types.VendorID(nil), p.DependentVendorIDs...)
	return &clone
}
