// Package histogram partitions a result-time sample into adaptively-sized
// bins for distribution display.
package histogram

import (
	"math"

	"github.com/okian/paceline/internal/domain/normalize"
)

// Default bin-count bounds.
const (
	DefaultMinBins = 8
	DefaultMaxBins = 24
)

// Histogram is the binned distribution of a finite time sample.
type Histogram struct {
	Bins     []int
	BinWidth float64
	Min      float64
	Max      float64
	// Labels are clock-formatted ticks at the raw sample min, midpoint and
	// max; they are sample bounds, not bin boundaries.
	Labels [3]string
}

// Bin partitions times into clamp(round(sqrt(n)), minBins, maxBins) bins.
// The caller supplies finite values only. The second return is false for an
// empty sample.
func Bin(times []float64, minBins, maxBins int) (Histogram, bool) {
	if len(times) == 0 {
		return Histogram{}, false
	}
	if minBins < 1 {
		minBins = DefaultMinBins
	}
	if maxBins < minBins {
		maxBins = DefaultMaxBins
	}

	minT, maxT := times[0], times[0]
	for _, t := range times[1:] {
		minT = math.Min(minT, t)
		maxT = math.Max(maxT, t)
	}

	binCount := int(math.Round(math.Sqrt(float64(len(times)))))
	if binCount < minBins {
		binCount = minBins
	}
	if binCount > maxBins {
		binCount = maxBins
	}

	// All values identical collapses to a unit-width bin.
	width := (maxT - minT) / float64(binCount)
	if width == 0 {
		width = 1
	}

	bins := make([]int, binCount)
	for _, t := range times {
		idx := int(math.Floor((t - minT) / width))
		// Clamp to absorb floating-point edge effects at the maximum.
		if idx >= binCount {
			idx = binCount - 1
		}
		if idx < 0 {
			idx = 0
		}
		bins[idx]++
	}

	return Histogram{
		Bins:     bins,
		BinWidth: width,
		Min:      minT,
		Max:      maxT,
		Labels: [3]string{
			normalize.FormatRawSeconds(minT),
			normalize.FormatRawSeconds(minT + (maxT-minT)/2),
			normalize.FormatRawSeconds(maxT),
		},
	}, true
}
