package engine

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

func TestComposeRiskScoreBounds(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	complexities := gen.OneConstOf(
		types.RecoveryLow, types.RecoveryMedium, types.RecoveryHigh, types.RecoveryVeryHigh)

	properties.Property("score stays within 0-100", prop.ForAll(
		func(impact int64, downtime float64, complexity types.RecoveryComplexity, vendorScore float64) bool {
			score := composeRiskScore(decimal.NewFromInt(impact), downtime, complexity, vendorScore)
			return score >= 0 && score <= 100
		},
		gen.Int64Range(0, 1e12),
		gen.Float64Range(0, 100000),
		complexities,
		gen.Float64Range(0, 100),
	))

	properties.Property("more impact never lowers the score", prop.ForAll(
		func(impact int64, extra int64) bool {
			a := composeRiskScore(decimal.NewFromInt(impact), 0, types.RecoveryLow, 0)
			b := composeRiskScore(decimal.NewFromInt(impact+extra), 0, types.RecoveryLow, 0)
			return b >= a
		},
		gen.Int64Range(1, 1e10),
		gen.Int64Range(0, 1e10),
	))

	properties.TestingRun(t)
}

func TestRecomputeTotalIdentity(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("total equals the sum of its parts", prop.ForAll(
		func(direct, operational, regulatory, reputational, cascading int64) bool {
			r := &model.SimulationResult{
				DirectCosts:          decimal.NewFromInt(direct),
				OperationalCosts:     decimal.NewFromInt(operational),
				RegulatoryCosts:      decimal.NewFromInt(regulatory),
				ReputationalCosts:    decimal.NewFromInt(reputational),
				TotalCascadingImpact: decimal.NewFromInt(cascading),
			}
			want := decimal.NewFromInt(direct + operational + regulatory + reputational + cascading)
			return r.RecomputeTotal().Equal(want)
		},
		gen.Int64Range(0, 1e12),
		gen.Int64Range(0, 1e12),
		gen.Int64Range(0, 1e12),
		gen.Int64Range(0, 1e12),
		gen.Int64Range(0, 1e12),
	))

	properties.TestingRun(t)
}

func TestVendorCascadeImpactProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	levels := gen.OneConstOf(
		types.RiskLevelLow, types.RiskLevelMedium, types.RiskLevelHigh, types.RiskLevelCritical)

	properties.Property("cascade impact never exceeds 40% of contract value", prop.ForAll(
		func(contract int64, level types.RiskLevel) bool {
			v := &model.Vendor{
				ContractValue: decimal.NewFromInt(contract),
				RiskLevel:     level,
			}
			impact := vendorCascadeImpact(v)
			ceiling := decimal.NewFromInt(contract).Mul(decimal.NewFromFloat(0.4))
			return impact.GreaterThanOrEqual(decimal.Zero) && impact.LessThanOrEqual(ceiling)
		},
		gen.Int64Range(0, 1e10),
		levels,
	))

	properties.Property("riskier vendors cascade harder", prop.ForAll(
		func(contract int64) bool {
			low := vendorCascadeImpact(&model.Vendor{
				ContractValue: decimal.NewFromInt(contract), RiskLevel: types.RiskLevelLow})
			crit := vendorCascadeImpact(&model.Vendor{
				ContractValue: decimal.NewFromInt(contract), RiskLevel: types.RiskLevelCritical})
			return crit.GreaterThanOrEqual(low)
		},
		gen.Int64Range(0, 1e10),
	))

	properties.TestingRun(t)
}

func TestRiskBandingConsistency(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("both banding functions stay within one band of each other", prop.ForAll(
		func(score float64) bool {
			a := types.RiskLevelFromScore(score)
			b := types.CategorizeRiskScore(score)
			diff := a.Rank() - b.Rank()
			if diff < 0 {
				diff = -diff
			}
			return diff <= 1
		},
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}
