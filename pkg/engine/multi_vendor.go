package engine

import (
	"context"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
	"github.com/shopspring/decimal"
)

// cascadeCostMultiplier scales the baseline direct and operational costs
// when a failure cascades across vendors
var cascadeCostMultiplier = decimal.NewFromFloat(1.5)

// upstreamCascadeFactor lowers the cascade probability for vendors that
// depend on the target: upstream propagation is considered less likely
const upstreamCascadeFactor = 0.8

// multiVendorFailure simulates a domino effect across dependent vendors.
// The baseline impact comes from recursively running the nested initial
// failure scenario; cascaded vendors then get the flat per-vendor cascade
// formula rather than a full scenario calculation of their own. The
// generic cascade step is skipped for this scenario since the cascade is
// computed here.
func (r *run) multiVendorFailure(ctx context.Context) error {
	initialFailure := types.ScenarioType(r.params.str("initial_failure_type", string(types.ScenarioDataBreach)))
	cascadeProbability := r.params.float("cascade_probability", 0.6)

	switch initialFailure {
	case types.ScenarioDataBreach:
		if err := r.dataBreach(ctx); err != nil {
			return err
		}
	case types.ScenarioRansomware:
		if err := r.ransomware(ctx); err != nil {
			return err
		}
	default:
		if err := r.serviceDisruption(ctx); err != nil {
			return err
		}
	}

	initialImpact := r.res.DirectCosts.
		Add(r.res.OperationalCosts).
		Add(r.res.RegulatoryCosts).
		Add(r.res.ReputationalCosts)

	// Sample independently whether each connected vendor is also affected
	var cascadeImpacts []model.CascadeImpact

	for _, dep := range r.graph.Dependents(r.vendor.ID) {
		if r.rng.Float64() < cascadeProbability {
			cascadeImpacts = append(cascadeImpacts, model.CascadeImpact{
				VendorID:   dep.ID,
				VendorName: dep.Name,
				Impact:     vendorCascadeImpact(dep),
				Reason:     "dependency_failure",
			})
		}
	}

	for _, dep := range r.graph.DependencyOf(r.vendor.ID) {
		if r.rng.Float64() < cascadeProbability*upstreamCascadeFactor {
			cascadeImpacts = append(cascadeImpacts, model.CascadeImpact{
				VendorID:   dep.ID,
				VendorName: dep.Name,
				Impact:     vendorCascadeImpact(dep),
				Reason:     "upstream_failure",
			})
		}
	}

	totalCascade := decimal.Zero
	for _, c := range cascadeImpacts {
		totalCascade = totalCascade.Add(c.Impact)
	}

	r.res.CascadingVendorImpacts = cascadeImpacts
	r.res.TotalCascadingImpact = totalCascade

	r.res.DirectCosts = r.res.DirectCosts.Mul(cascadeCostMultiplier)
	r.res.OperationalCosts = r.res.OperationalCosts.Mul(cascadeCostMultiplier)
	r.res.RecoveryComplexity = types.RecoveryVeryHigh

	r.res.ImpactBreakdown["cascade_analysis"] = map[string]any{
		"initial_failure":      initialFailure.String(),
		"initial_impact":       initialImpact.InexactFloat64(),
		"cascade_probability":  cascadeProbability,
		"vendors_affected":     len(cascadeImpacts),
		"total_cascade_impact": totalCascade.InexactFloat64(),
		"cascade_multiplier":   cascadeCostMultiplier.InexactFloat64(),
	}

	logging.From(ctx).Info("multi-vendor failure impact calculated",
		"initial_failure", initialFailure,
		"vendors_affected", len(cascadeImpacts),
		"total_cascade", totalCascade.String())

	return nil
}
