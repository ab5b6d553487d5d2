package model

import (
	"time"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// CascadeImpact records the secondary impact propagated to one vendor
// connected to the simulation target through the dependency graph.
type CascadeImpact struct {
	VendorID   types.VendorID
	VendorName string
	Impact     decimal.Decimal
	Reason     string
}

// ConfidenceInterval is a lower/upper percentile pair
type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// MonteCarloStats holds the statistical envelope produced by the
// probabilistic refinement step. Values are floating point by design:
// sampling is inherently approximate and kept separate from the exact
// deterministic totals.
type MonteCarloStats struct {
	Iterations int
	Mean       float64
	Median     float64
	StdDev     float64
	Min        float64
	Max        float64

	Percentiles         map[int]float64
	ConfidenceIntervals map[string]ConfidenceInterval

	// First 100 draws, kept for distribution visualization
	DistributionSample []float64
}

// SimulationResult is the immutable output of one simulation execution.
// A simulation has at most one result; re-execution replaces it.
type SimulationResult struct {
	ID           string
	SimulationID types.SimulationID

	DirectCosts       decimal.Decimal
	OperationalCosts  decimal.Decimal
	RegulatoryCosts   decimal.Decimal
	ReputationalCosts decimal.Decimal

	// Always recomputed as the four buckets plus TotalCascadingImpact,
	// never stored independently from its inputs.
	TotalFinancialImpact decimal.Decimal

	DowntimeHours              float64
	ProductivityLossPercentage float64 // 0-100
	CustomersAffected          int
	EstimatedRecoveryTimeHours float64
	RecoveryComplexity         types.RecoveryComplexity

	CascadingVendorImpacts []CascadeImpact
	TotalCascadingImpact   decimal.Decimal

	AffectedProcessIDs []types.ProcessID
	ImpactBreakdown    map[string]any

	RiskScore float64 // 0-100

	MonteCarlo *MonteCarloStats

	CreatedAt time.Time
}

// RecomputeTotal folds the four cost buckets and the cascading impact into
// TotalFinancialImpact.
func (r *SimulationResult) RecomputeTotal() decimal.Decimal {
	r.TotalFinancialImpact = r.DirectCosts.
		Add(r.OperationalCosts).
		Add(r.RegulatoryCosts).
		Add(r.ReputationalCosts).
		Add(r.TotalCascadingImpact)
	return r.TotalFinancialImpact
}
