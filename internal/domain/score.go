package domain

// ScoredWallet represents the scoring result for a single wallet.
type ScoredWallet struct {
	WalletAddress string  // canonicalized wallet identifier
	RawScore      float64 // weighted composite in [0,1] before rescaling
	FinalScore    int     // population-rescaled trust score in [0,1000]
}

// Trust score output bounds.
const (
	ScoreMin = 0
	ScoreMax = 1000
	// ScoreMidpoint is assigned to every wallet when the raw score
	// population is degenerate (all values equal).
	ScoreMidpoint = 500
)
