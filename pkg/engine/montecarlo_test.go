package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRunMonteCarloDeterministic(t *testing.T) {
	baseline := decimal.NewFromInt(1000000)

	a := runMonteCarlo(baseline, 500, monteCarloSigma, rand.New(rand.NewSource(1)))
	b := runMonteCarlo(baseline, 500, monteCarloSigma, rand.New(rand.NewSource(1)))

	if a.Mean != b.Mean || a.StdDev != b.StdDev || a.Median != b.Median {
		t.Error("same seed must produce identical statistics")
	}
	for p, v := range a.Percentiles {
		if b.Percentiles[p] != v {
			t.Errorf("percentile %d differs between identical seeds", p)
		}
	}
}

func TestRunMonteCarloOrdering(t *testing.T) {
	stats := runMonteCarlo(decimal.NewFromInt(1000000), 2000, monteCarloSigma, rand.New(rand.NewSource(3)))

	p := stats.Percentiles
	if !(stats.Min <= p[10] && p[10] <= p[25] && p[25] <= p[50] && p[50] <= p[75] && p[75] <= p[90] && p[90] <= stats.Max) {
		t.Errorf("percentiles out of order: min=%v p=%v max=%v", stats.Min, p, stats.Max)
	}
	if stats.Median != p[50] {
		t.Error("median must equal the 50th percentile")
	}

	for label, ci := range stats.ConfidenceIntervals {
		if ci.Lower > ci.Upper {
			t.Errorf("interval %s inverted: [%v, %v]", label, ci.Lower, ci.Upper)
		}
	}
	if stats.ConfidenceIntervals["90"].Lower < stats.ConfidenceIntervals["99"].Lower {
		t.Error("99% interval must contain the 90% interval")
	}
}

func TestRunMonteCarloClipping(t *testing.T) {
	base := 1000000.0
	stats := runMonteCarlo(decimal.NewFromFloat(base), 5000, monteCarloSigma, rand.New(rand.NewSource(9)))

	lo := base * (1.0 - monteCarloClipBand)
	hi := base * (1.0 + monteCarloClipBand)
	if stats.Min < lo-1e-6 {
		t.Errorf("Min %v below clip floor %v", stats.Min, lo)
	}
	if stats.Max > hi+1e-6 {
		t.Errorf("Max %v above clip ceiling %v", stats.Max, hi)
	}

	// Mean of a clipped N(1, 0.15) multiplier stays near the baseline
	if math.Abs(stats.Mean-base)/base > 0.02 {
		t.Errorf("Mean %v drifted too far from baseline %v", stats.Mean, base)
	}
}

func TestRunMonteCarloSampleSize(t *testing.T) {
	stats := runMonteCarlo(decimal.NewFromInt(500000), 1000, monteCarloSigma, rand.New(rand.NewSource(2)))
	if len(stats.DistributionSample) != monteCarloSampleSize {
		t.Errorf("sample size = %d, want %d", len(stats.DistributionSample), monteCarloSampleSize)
	}
	if stats.Iterations != 1000 {
		t.Errorf("Iterations = %d, want 1000", stats.Iterations)
	}

	small := runMonteCarlo(decimal.NewFromInt(500000), 100, monteCarloSigma, rand.New(rand.NewSource(2)))
	if len(small.DistributionSample) != 100 {
		t.Errorf("small run sample size = %d, want 100", len(small.DistributionSample))
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{100, 40},
		{50, 25},
		{25, 17.5},
	}
	for _, tt := range tests {
		if got := percentile(sorted, tt.p); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if percentile(nil, 50) != 0 {
		t.Error("empty input must yield 0")
	}
	if percentile([]float64{7}, 90) != 7 {
		t.Error("single element must yield itself")
	}
}
