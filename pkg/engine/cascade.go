package engine

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// cascadeContractShare is the share of a vendor's contract value taken as
// the base cascade impact
var cascadeContractShare = decimal.NewFromFloat(0.20)

// vendorCascadeImpact computes the impact of a cascade on a single
// dependent vendor: 20% of its contract value, scaled by its risk level.
func vendorCascadeImpact(vendor *model.Vendor) decimal.Decimal {
	multiplier := decimal.NewFromFloat(vendor.RiskLevel.CascadeMultiplier())
	return vendor.ContractValue.Mul(cascadeContractShare).Mul(multiplier)
}

// calculateCascadingImpacts is the generic depth-1 cascade step: it
// enumerates the target vendor's direct dependents only (not transitive)
// and folds their individual impacts into the result. The multi_vendor
// scenario performs its own cascade computation inline and skips this.
func (r *run) calculateCascadingImpacts(ctx context.Context) {
	var impacts []model.CascadeImpact
	total := decimal.Zero

	for _, dep := range r.graph.Dependents(r.vendor.ID) {
		impact := vendorCascadeImpact(dep)
		impacts = append(impacts, model.CascadeImpact{
			VendorID:   dep.ID,
			VendorName: dep.Name,
			Impact:     impact,
			Reason:     "direct_dependency",
		})
		total = total.Add(impact)
	}

	r.res.CascadingVendorImpacts = impacts
	r.res.TotalCascadingImpact = total

	if len(impacts) > 0 {
		logging.From(ctx).Info("calculated cascading impacts",
			"vendors", len(impacts),
			"total", total.String())
	}
}
