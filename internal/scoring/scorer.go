package scoring

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jvsiddharth/aave-credit-score/internal/config"
	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
	"github.com/jvsiddharth/aave-credit-score/internal/stats"
)

// Scorer turns wallet feature vectors into bounded trust scores.
//
// Scoring is two-stage. Stage one normalizes every feature to [0,1] via
// population min-max and combines them into a raw score through the
// configured signed weights; the weighted sum is mapped from its weight
// envelope onto [0,1] so raw scores are comparable across weight choices.
// Stage two rescales the raw population onto integer [0,1000].
type Scorer struct {
	cfg    config.ScoringConfig
	keys   []string // weight keys in deterministic order
	envLo  float64  // smallest reachable weighted sum
	envHi  float64  // largest reachable weighted sum
	logger *logging.Logger
}

// NewScorer validates the scoring configuration and returns a scorer.
// Validation happens before any data is read: a bad weighting map would
// silently mis-score every wallet.
func NewScorer(cfg config.ScoringConfig, logger *logging.Logger) (*Scorer, error) {
	if err := ValidateWeights(cfg.Weights); err != nil {
		return nil, err
	}
	if cfg.BotFrequencyPercentile <= 0 || cfg.BotFrequencyPercentile > 1 {
		return nil, fmt.Errorf("%w: bot_frequency_percentile must be in (0,1], got %v",
			ErrConfiguration, cfg.BotFrequencyPercentile)
	}
	if cfg.BotPenalty >= 1 {
		return nil, fmt.Errorf("%w: bot_penalty must be below 1 to reduce the frequency contribution, got %v",
			ErrConfiguration, cfg.BotPenalty)
	}
	if cfg.NoBorrowCredit < 0 || cfg.NoBorrowCredit > 1 {
		return nil, fmt.Errorf("%w: no_borrow_credit must be in [0,1], got %v",
			ErrConfiguration, cfg.NoBorrowCredit)
	}

	keys := make([]string, 0, len(cfg.Weights))
	for k := range cfg.Weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lo, hi := 0.0, 0.0
	for _, key := range keys {
		w := cfg.Weights[key]
		if key == WeightTransactionFrequency {
			// Normal contribution spans [0,w]; bots contribute w*penalty.
			lo += min3(0, w, w*cfg.BotPenalty)
			hi += max3(0, w, w*cfg.BotPenalty)
			continue
		}
		if w > 0 {
			hi += w
		} else {
			lo += w
		}
	}

	return &Scorer{
		cfg:    cfg,
		keys:   keys,
		envLo:  lo,
		envHi:  hi,
		logger: logger.WithComponent("scoring"),
	}, nil
}

// Score produces one ScoredWallet per input vector, in input order.
// An empty population yields an empty result, not an error.
func (s *Scorer) Score(vectors []domain.WalletFeatures) []domain.ScoredWallet {
	if len(vectors) == 0 {
		s.logger.Warn("empty wallet population, emitting no scores")
		return []domain.ScoredWallet{}
	}

	bounds := computeBounds(vectors, s.cfg.BotFrequencyPercentile)

	raws := make([]float64, len(vectors))
	for i := range vectors {
		raws[i] = s.rawScore(&vectors[i], bounds)
	}
	finals := Rescale(raws)

	scored := make([]domain.ScoredWallet, len(vectors))
	for i := range vectors {
		scored[i] = domain.ScoredWallet{
			WalletAddress: vectors[i].WalletAddress,
			RawScore:      raws[i],
			FinalScore:    finals[i],
		}
	}

	s.logger.Info("scoring complete",
		zap.Int("wallets", len(scored)),
		zap.Float64("bot_frequency_cutoff", bounds.freqCutoff),
	)
	return scored
}

// rawScore combines the normalized features of one wallet into [0,1].
func (s *Scorer) rawScore(v *domain.WalletFeatures, b *populationBounds) float64 {
	sum := 0.0
	for _, key := range s.keys {
		sum += s.contribution(key, s.cfg.Weights[key], v, b)
	}
	if s.envHi <= s.envLo {
		return 0.5
	}
	return clamp01((sum - s.envLo) / (s.envHi - s.envLo))
}

// contribution computes one feature's weighted term.
func (s *Scorer) contribution(key string, w float64, v *domain.WalletFeatures, b *populationBounds) float64 {
	switch key {
	case WeightBorrowRepayRatio:
		if v.BorrowCount == 0 {
			// Never borrowed is not the same signal as borrowed and
			// never repaid; credit the configured neutral value.
			return w * s.cfg.NoBorrowCredit
		}
		return w * minMaxNorm(v.BorrowRepayRatio, b.repayLo, b.repayHi)

	case WeightCollateralFirst:
		if v.BorrowCount == 0 {
			return w * s.cfg.NoBorrowCredit
		}
		if v.CollateralFirst {
			return w
		}
		return 0

	case WeightLiquidationCount:
		return w * minMaxNorm(float64(v.LiquidationCount), b.liqLo, b.liqHi)

	case WeightTransactionFrequency:
		// Beyond the percentile cutoff frequency reads as bot-like and
		// contributes the penalized term instead of a monotone reward.
		if v.TransactionFrequency > b.freqCutoff {
			return w * s.cfg.BotPenalty
		}
		return w * minMaxNorm(v.TransactionFrequency, b.freqLo, b.freqCutoff)

	case WeightUniqueAssetCount:
		return w * minMaxNorm(float64(v.UniqueAssetCount), b.assetsLo, b.assetsHi)

	case WeightVolatilityScore:
		return w * minMaxNorm(v.VolatilityScore, b.volLo, b.volHi)

	case WeightBorrowDepositRatio:
		return w * minMaxNorm(v.BorrowDepositRatio, b.bdrLo, b.bdrHi)
	}
	return 0
}

// populationBounds holds the per-feature min-max ranges of one scoring run.
type populationBounds struct {
	repayLo, repayHi   float64
	liqLo, liqHi       float64
	freqLo, freqHi     float64
	freqCutoff         float64
	assetsLo, assetsHi float64
	volLo, volHi       float64
	bdrLo, bdrHi       float64
}

// computeBounds scans the population once per feature. The frequency
// cutoff is the configured upper percentile of the observed distribution.
func computeBounds(vectors []domain.WalletFeatures, botPercentile float64) *populationBounds {
	n := len(vectors)
	repay := make([]float64, n)
	liq := make([]float64, n)
	freq := make([]float64, n)
	assets := make([]float64, n)
	vol := make([]float64, n)
	bdr := make([]float64, n)
	for i := range vectors {
		repay[i] = vectors[i].BorrowRepayRatio
		liq[i] = float64(vectors[i].LiquidationCount)
		freq[i] = vectors[i].TransactionFrequency
		assets[i] = float64(vectors[i].UniqueAssetCount)
		vol[i] = vectors[i].VolatilityScore
		bdr[i] = vectors[i].BorrowDepositRatio
	}

	b := &populationBounds{}
	b.repayLo, b.repayHi = stats.MinMax(repay)
	b.liqLo, b.liqHi = stats.MinMax(liq)
	b.freqLo, b.freqHi = stats.MinMax(freq)
	b.assetsLo, b.assetsHi = stats.MinMax(assets)
	b.volLo, b.volHi = stats.MinMax(vol)
	b.bdrLo, b.bdrHi = stats.MinMax(bdr)

	sortedFreq := make([]float64, n)
	copy(sortedFreq, freq)
	sort.Float64s(sortedFreq)
	b.freqCutoff = stats.Percentile(sortedFreq, botPercentile)

	return b
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
