package scoring

import (
	"errors"
	"testing"
)

func validWeights() map[string]float64 {
	return map[string]float64{
		WeightBorrowRepayRatio:     0.30,
		WeightLiquidationCount:     -0.25,
		WeightTransactionFrequency: 0.10,
		WeightCollateralFirst:      0.15,
		WeightUniqueAssetCount:     0.10,
		WeightVolatilityScore:      -0.10,
	}
}

func TestValidateWeights_Valid(t *testing.T) {
	if err := ValidateWeights(validWeights()); err != nil {
		t.Errorf("expected valid weights to pass, got %v", err)
	}
}

func TestValidateWeights_OptionalKey(t *testing.T) {
	w := validWeights()
	w[WeightBorrowDepositRatio] = -0.10
	if err := ValidateWeights(w); err != nil {
		t.Errorf("expected optional key to pass, got %v", err)
	}
}

func TestValidateWeights_MissingRequiredKey(t *testing.T) {
	w := validWeights()
	delete(w, WeightLiquidationCount)

	err := ValidateWeights(w)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidateWeights_WrongSign(t *testing.T) {
	cases := []struct {
		key    string
		weight float64
	}{
		{WeightLiquidationCount, 0.25},
		{WeightVolatilityScore, 0.10},
		{WeightBorrowRepayRatio, -0.30},
		{WeightCollateralFirst, -0.15},
		{WeightBorrowDepositRatio, 0.10},
	}

	for _, tc := range cases {
		w := validWeights()
		w[tc.key] = tc.weight
		if err := ValidateWeights(w); !errors.Is(err, ErrConfiguration) {
			t.Errorf("expected sign error for %s=%v, got %v", tc.key, tc.weight, err)
		}
	}
}

func TestValidateWeights_ZeroWeight(t *testing.T) {
	w := validWeights()
	w[WeightBorrowRepayRatio] = 0

	if err := ValidateWeights(w); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected zero weight to fail, got %v", err)
	}
}

func TestValidateWeights_UnknownKey(t *testing.T) {
	w := validWeights()
	w["wallet_age"] = 0.2

	if err := ValidateWeights(w); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected unknown key to fail, got %v", err)
	}
}

func TestValidateWeights_Empty(t *testing.T) {
	if err := ValidateWeights(map[string]float64{}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected empty map to fail, got %v", err)
	}
}
