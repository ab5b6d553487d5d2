package engine

import (
	"math"
	"math/rand"
	"sort"

	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/shopspring/decimal"
)

const (
	// Standard deviation of the multiplicative noise
	monteCarloSigma = 0.15
	// Samples are clipped to ±30% around the baseline
	monteCarloClipBand = 0.30
	// Size of the distribution sample kept for visualization
	monteCarloSampleSize = 100
)

// runMonteCarlo resamples the deterministic baseline under multiplicative
// normal noise and reports the resulting distribution. It is a pure
// function of (baseline, iterations, sigma, rng): fixing the random source
// makes the output reproducible. Sampling converts the exact baseline to
// floating point at this boundary only; the statistics stay separate from
// the deterministic monetary totals.
func runMonteCarlo(baseline decimal.Decimal, iterations int, sigma float64, rng *rand.Rand) *model.MonteCarloStats {
	base := baseline.InexactFloat64()

	results := make([]float64, iterations)
	for i := range results {
		variation := 1.0 + rng.NormFloat64()*sigma
		variation = math.Max(1.0-monteCarloClipBand, math.Min(1.0+monteCarloClipBand, variation))
		results[i] = base * variation
	}

	sample := results
	if len(sample) > monteCarloSampleSize {
		sample = sample[:monteCarloSampleSize]
	}
	distributionSample := append([]float64(nil), sample...)

	sorted := append([]float64(nil), results...)
	sort.Float64s(sorted)

	stats := &model.MonteCarloStats{
		Iterations: iterations,
		Mean:       mean(results),
		Median:     percentile(sorted, 50),
		StdDev:     stdDev(results),
		Min:        sorted[0],
		Max:        sorted[len(sorted)-1],
		Percentiles: map[int]float64{
			10: percentile(sorted, 10),
			25: percentile(sorted, 25),
			50: percentile(sorted, 50),
			75: percentile(sorted, 75),
			90: percentile(sorted, 90),
			95: percentile(sorted, 95),
			99: percentile(sorted, 99),
		},
		ConfidenceIntervals: map[string]model.ConfidenceInterval{
			"90": {Lower: percentile(sorted, 5), Upper: percentile(sorted, 95)},
			"95": {Lower: percentile(sorted, 2.5), Upper: percentile(sorted, 97.5)},
			"99": {Lower: percentile(sorted, 0.5), Upper: percentile(sorted, 99.5)},
		},
		DistributionSample: distributionSample,
	}

	return stats
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation
func stdDev(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// percentile computes the p-th percentile of sorted values with linear
// interpolation between adjacent ranks
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}
