package scoring

import (
	"math"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
)

// minMaxNorm maps v from [lo, hi] onto [0,1]. A degenerate range maps
// every value to the neutral midpoint 0.5 rather than dividing by zero.
func minMaxNorm(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	n := (v - lo) / (hi - lo)
	return clamp01(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rescale maps raw scores onto the closed integer range [0, 1000] through
// a population-wide min-max transform. All-equal raw scores map to the
// midpoint 500. The transform is order-preserving and idempotent as a
// presentation: rescaling the same raw population twice yields identical
// final scores.
func Rescale(raws []float64) []int {
	if len(raws) == 0 {
		return nil
	}

	lo, hi := raws[0], raws[0]
	for _, r := range raws[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}

	finals := make([]int, len(raws))
	if hi <= lo {
		for i := range finals {
			finals[i] = domain.ScoreMidpoint
		}
		return finals
	}

	span := float64(domain.ScoreMax - domain.ScoreMin)
	for i, r := range raws {
		finals[i] = domain.ScoreMin + int(math.Round(span*(r-lo)/(hi-lo)))
	}
	return finals
}
