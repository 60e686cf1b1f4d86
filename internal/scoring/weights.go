package scoring

import (
	"fmt"
	"sort"
)

// Feature keys accepted by the weights map.
const (
	WeightBorrowRepayRatio     = "borrow_repay_ratio"
	WeightLiquidationCount     = "liquidation_count"
	WeightTransactionFrequency = "transaction_frequency"
	WeightCollateralFirst      = "collateral_first"
	WeightUniqueAssetCount     = "unique_asset_count"
	WeightVolatilityScore      = "volatility_score"
	WeightBorrowDepositRatio   = "borrow_deposit_ratio"
)

// requiredSigns maps each mandatory feature key to its expected weight
// sign. Positive features reward, negative features deduct.
var requiredSigns = map[string]int{
	WeightBorrowRepayRatio:     1,
	WeightLiquidationCount:     -1,
	WeightTransactionFrequency: 1,
	WeightCollateralFirst:      1,
	WeightUniqueAssetCount:     1,
	WeightVolatilityScore:      -1,
}

// optionalSigns maps optional feature keys to their expected sign.
var optionalSigns = map[string]int{
	WeightBorrowDepositRatio: -1,
}

// ValidateWeights checks the weighting map before any data is read.
// Every required key must be present with a non-zero weight of the
// expected sign; unknown keys are rejected so a typo cannot silently
// drop a feature from the score.
func ValidateWeights(weights map[string]float64) error {
	keys := make([]string, 0, len(requiredSigns))
	for k := range requiredSigns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		w, ok := weights[key]
		if !ok {
			return fmt.Errorf("%w: missing required weight %q", ErrConfiguration, key)
		}
		if err := checkSign(key, w, requiredSigns[key]); err != nil {
			return err
		}
	}

	for key, w := range weights {
		if _, ok := requiredSigns[key]; ok {
			continue
		}
		sign, ok := optionalSigns[key]
		if !ok {
			return fmt.Errorf("%w: unknown weight key %q", ErrConfiguration, key)
		}
		if err := checkSign(key, w, sign); err != nil {
			return err
		}
	}
	return nil
}

func checkSign(key string, w float64, sign int) error {
	if w == 0 {
		return fmt.Errorf("%w: weight %q must be non-zero", ErrConfiguration, key)
	}
	if sign > 0 && w < 0 {
		return fmt.Errorf("%w: weight %q must be positive, got %v", ErrConfiguration, key, w)
	}
	if sign < 0 && w > 0 {
		return fmt.Errorf("%w: weight %q must be negative, got %v", ErrConfiguration, key, w)
	}
	return nil
}
