// Package verification checks that a scoring run is reproducible: the
// same input population scored twice must yield identical results.
package verification

import (
	"fmt"
	"math"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
)

// FloatTolerance is the tolerance for raw score comparisons. Final
// scores are integers and must match exactly.
const FloatTolerance = 1e-9

// FieldDivergence represents a mismatch between two runs of the scorer.
type FieldDivergence struct {
	Field    string // field name
	Expected any    // value from the first run
	Actual   any    // value from the second run
}

// Result contains the comparison outcome for a single wallet.
type Result struct {
	WalletAddress string
	Match         bool
	Divergences   []FieldDivergence
}

// Report aggregates the comparison of two complete scoring runs.
type Report struct {
	TotalWallets     int
	MatchedWallets   int
	DivergentWallets int
	Results          []Result
}

// CompareScored compares one wallet's scores from two runs and returns
// the divergent fields. Raw scores compare within FloatTolerance.
func CompareScored(first, second *domain.ScoredWallet) []FieldDivergence {
	var divergences []FieldDivergence

	if first.WalletAddress != second.WalletAddress {
		divergences = append(divergences, FieldDivergence{
			Field:    "WalletAddress",
			Expected: first.WalletAddress,
			Actual:   second.WalletAddress,
		})
	}

	if !floatEquals(first.RawScore, second.RawScore) {
		divergences = append(divergences, FieldDivergence{
			Field:    "RawScore",
			Expected: first.RawScore,
			Actual:   second.RawScore,
		})
	}

	if first.FinalScore != second.FinalScore {
		divergences = append(divergences, FieldDivergence{
			Field:    "FinalScore",
			Expected: first.FinalScore,
			Actual:   second.FinalScore,
		})
	}

	return divergences
}

// VerifyScored compares two complete runs wallet by wallet. Both runs
// must cover the same population in the same order.
func VerifyScored(first, second []domain.ScoredWallet) (*Report, error) {
	if len(first) != len(second) {
		return nil, fmt.Errorf("population size changed between runs: %d vs %d", len(first), len(second))
	}

	report := &Report{
		TotalWallets: len(first),
		Results:      make([]Result, len(first)),
	}
	for i := range first {
		divergences := CompareScored(&first[i], &second[i])
		report.Results[i] = Result{
			WalletAddress: first[i].WalletAddress,
			Match:         len(divergences) == 0,
			Divergences:   divergences,
		}
		if len(divergences) == 0 {
			report.MatchedWallets++
		} else {
			report.DivergentWallets++
		}
	}
	return report, nil
}

// floatEquals compares two float64 values within FloatTolerance.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}
