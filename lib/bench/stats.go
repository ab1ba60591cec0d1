// Package bench provides small statistics helpers for the client's
// performance testing command.
package bench

import (
	"math"
	"sort"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Stats summarizes a set of latency samples.
type Stats struct {
	Count        int     `json:"count"`
	Mean         float64 `json:"mean"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	StdDeviation float64 `json:"std_deviation"`
	P50          float64 `json:"p50"`
	P95          float64 `json:"p95"`
	P99          float64 `json:"p99"`
}

// NewStats computes summary statistics from latency samples in seconds.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	var sumSquaredDiffs float64
	for _, v := range sorted {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(sorted)))

	return Stats{
		Count:        len(sorted),
		Mean:         mean,
		Min:          min,
		Max:          max,
		StdDeviation: stdDev,
		P50:          percentile(sorted, 0.50),
		P95:          percentile(sorted, 0.95),
		P99:          percentile(sorted, 0.99),
	}
}

// NewStatsFromDurations converts durations to seconds and computes the
// summary statistics.
func NewStatsFromDurations(durations []time.Duration) Stats {
	values := make([]float64, len(durations))
	for i, d := range durations {
		values[i] = d.Seconds()
	}
	return NewStats(values)
}

// NewStatsFromTimer converts a go-metrics timer, which samples in
// nanoseconds, to summary statistics in seconds.
func NewStatsFromTimer(t gometrics.Timer) Stats {
	snap := t.Snapshot()
	if snap.Count() == 0 {
		return Stats{}
	}

	ps := snap.Percentiles([]float64{0.50, 0.95, 0.99})
	sec := func(ns float64) float64 { return ns / float64(time.Second) }

	return Stats{
		Count:        int(snap.Count()),
		Mean:         sec(snap.Mean()),
		Min:          sec(float64(snap.Min())),
		Max:          sec(float64(snap.Max())),
		StdDeviation: sec(snap.StdDev()),
		P50:          sec(ps[0]),
		P95:          sec(ps[1]),
		P99:          sec(ps[2]),
	}
}

// percentile returns the p-quantile of an ascending sample using
// nearest-rank interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
