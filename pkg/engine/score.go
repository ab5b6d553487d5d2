package engine

import (
	"math"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// composeRiskScore combines financial impact, downtime, recovery
// complexity and the vendor's base risk into a single 0-100 score. It runs
// after cascading impacts are folded into the total, so cascading losses
// raise the score.
//
// Financial impact uses a logarithmic scale anchored at
// $100K=30, $1M=50, $10M=70, $100M=90.
func composeRiskScore(totalImpact decimal.Decimal, downtimeHours float64, complexity types.RecoveryComplexity, vendorRiskScore float64) float64 {
	var financialScore float64
	if totalImpact.IsPositive() {
		financialScore = math.Min(100, 30+20*math.Log10(totalImpact.InexactFloat64()/100000))
	}

	downtimeScore := math.Min(25, downtimeHours/10)
	complexityScore := complexity.Score()
	vendorComponent := vendorRiskScore / 4

	score := financialScore + downtimeScore + complexityScore + vendorComponent
	return math.Max(0, math.Min(100, score))
}
