package engine

import (
	"math"
	"testing"

	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/shopspring/decimal"
)

func TestComposeRiskScoreFinancialAnchors(t *testing.T) {
	tests := []struct {
		impact int64
		want   float64
	}{
		{100000, 30},
		{1000000, 50},
		{10000000, 70},
		{100000000, 90},
	}

	for _, tt := range tests {
		got := composeRiskScore(decimal.NewFromInt(tt.impact), 0, types.RecoveryLow, 0)
		// RecoveryLow contributes a flat 5
		if math.Abs(got-(tt.want+5)) > 1e-9 {
			t.Errorf("composeRiskScore(%d) = %v, want %v", tt.impact, got, tt.want+5)
		}
	}
}

func TestComposeRiskScoreZeroImpact(t *testing.T) {
	got := composeRiskScore(decimal.Zero, 50, types.RecoveryMedium, 40)

	// 0 financial + 5 downtime + 10 complexity + 10 vendor
	if got != 25 {
		t.Errorf("composeRiskScore = %v, want 25", got)
	}
}

func TestComposeRiskScoreDowntimeCap(t *testing.T) {
	uncapped := composeRiskScore(decimal.Zero, 250, types.RecoveryLow, 0)
	capped := composeRiskScore(decimal.Zero, 10000, types.RecoveryLow, 0)

	if uncapped != 30 || capped != 30 {
		t.Errorf("downtime component must cap at 25, got %v and %v", uncapped-5, capped-5)
	}
}

func TestComposeRiskScoreClamped(t *testing.T) {
	got := composeRiskScore(decimal.NewFromInt(1e15), 10000, types.RecoveryVeryHigh, 100)
	if got != 100 {
		t.Errorf("score must clamp to 100, got %v", got)
	}

	// Tiny impact drives the log term negative
	low := composeRiskScore(decimal.NewFromInt(1), 0, types.RecoveryLow, 0)
	if low < 0 {
		t.Errorf("score must clamp to 0, got %v", low)
	}
}
