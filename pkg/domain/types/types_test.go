package types_test

import (
	"testing"

	"github.com/secmon-lab/briareus/pkg/domain/types"
)

func TestScenarioTypeParse(t *testing.T) {
	for _, st := range types.AllScenarioTypes() {
		parsed, err := types.ParseScenarioType(st.String())
		if err != nil {
			t.Errorf("ParseScenarioType(%q) returned error: %v", st, err)
		}
		if parsed != st {
			t.Errorf("ParseScenarioType(%q) = %q", st, parsed)
		}
	}

	if _, err := types.ParseScenarioType("earthquake"); err == nil {
		t.Error("expected error for unknown scenario type")
	}
	if types.ScenarioType("").IsValid() {
		t.Error("empty scenario type must not be valid")
	}
}

func TestSimulationStatusTransitions(t *testing.T) {
	tests := []struct {
		from    types.SimulationStatus
		to      types.SimulationStatus
		allowed bool
	}{
		{types.SimulationStatusPending, types.SimulationStatusRunning, true},
		{types.SimulationStatusRunning, types.SimulationStatusCompleted, true},
		{types.SimulationStatusRunning, types.SimulationStatusFailed, true},
		{types.SimulationStatusPending, types.SimulationStatusCompleted, false},
		{types.SimulationStatusCompleted, types.SimulationStatusRunning, false},
		{types.SimulationStatusFailed, types.SimulationStatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestSimulationStatusNormalize(t *testing.T) {
	if types.SimulationStatus("").Normalize() != types.SimulationStatusPending {
		t.Error("empty status must normalize to pending")
	}
	if types.SimulationStatusRunning.Normalize() != types.SimulationStatusRunning {
		t.Error("non-empty status must normalize to itself")
	}
}

func TestSimulationStatusTerminal(t *testing.T) {
	if !types.SimulationStatusCompleted.IsTerminal() || !types.SimulationStatusFailed.IsTerminal() {
		t.Error("completed and failed must be terminal")
	}
	if types.SimulationStatusPending.IsTerminal() || types.SimulationStatusRunning.IsTerminal() {
		t.Error("pending and running must not be terminal")
	}
}

func TestRiskLevelFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.RiskLevel
	}{
		{0, types.RiskLevelLow},
		{25, types.RiskLevelLow},
		{25.001, types.RiskLevelMedium},
		{50, types.RiskLevelMedium},
		{75, types.RiskLevelHigh},
		{75.001, types.RiskLevelCritical},
		{100, types.RiskLevelCritical},
	}

	for _, tt := range tests {
		if got := types.RiskLevelFromScore(tt.score); got != tt.want {
			t.Errorf("RiskLevelFromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCategorizeRiskScore(t *testing.T) {
	tests := []struct {
		score float64
		want  types.RiskLevel
	}{
		{0, types.RiskLevelLow},
		{24.999, types.RiskLevelLow},
		{25, types.RiskLevelMedium},
		{50, types.RiskLevelHigh},
		{74.999, types.RiskLevelHigh},
		{75, types.RiskLevelCritical},
	}

	for _, tt := range tests {
		if got := types.CategorizeRiskScore(tt.score); got != tt.want {
			t.Errorf("CategorizeRiskScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCategorizeRiskScoreMonotonic(t *testing.T) {
	prev := types.CategorizeRiskScore(0)
	for score := 1.0; score <= 100; score++ {
		cur := types.CategorizeRiskScore(score)
		if cur.Rank() < prev.Rank() {
			t.Fatalf("banding not monotonic at score %v: %s after %s", score, cur, prev)
		}
		prev = cur
	}
}

func TestCascadeMultiplier(t *testing.T) {
	tests := []struct {
		level types.RiskLevel
		want  float64
	}{
		{types.RiskLevelLow, 0.5},
		{types.RiskLevelMedium, 1.0},
		{types.RiskLevelHigh, 1.5},
		{types.RiskLevelCritical, 2.0},
	}

	for _, tt := range tests {
		if got := tt.level.CascadeMultiplier(); got != tt.want {
			t.Errorf("CascadeMultiplier(%s) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRecoveryComplexityScore(t *testing.T) {
	tests := []struct {
		complexity types.RecoveryComplexity
		want       float64
	}{
		{types.RecoveryLow, 5},
		{types.RecoveryMedium, 10},
		{types.RecoveryHigh, 15},
		{types.RecoveryVeryHigh, 20},
	}

	for _, tt := range tests {
		if got := tt.complexity.Score(); got != tt.want {
			t.Errorf("Score(%s) = %v, want %v", tt.complexity, got, tt.want)
		}
	}
}

func TestNewIDsUnique(t *testing.T) {
	if types.NewVendorID() == types.NewVendorID() {
		t.Error("NewVendorID must generate unique IDs")
	}
	if types.NewSimulationID() == types.NewSimulationID() {
		t.Error("NewSimulationID must generate unique IDs")
	}
}
