package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the full pipeline configuration.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Ingest   IngestConfig  `mapstructure:"ingest"`
	Scoring  ScoringConfig `mapstructure:"scoring"`
	Report   ReportConfig  `mapstructure:"report"`
}

// IngestConfig controls raw record parsing and USD normalization.
type IngestConfig struct {
	// FieldAliases maps a logical field name (wallet, action, amount,
	// asset, price, timestamp, decimals) to the record keys that may
	// carry it. Defaults cover the known export shapes.
	FieldAliases map[string][]string `mapstructure:"field_aliases"`
	// AssetDecimals overrides token decimals per asset identifier.
	AssetDecimals map[string]int `mapstructure:"asset_decimals"`
	// AssetPrices supplies static USD prices per asset identifier for
	// records that carry no price field.
	AssetPrices map[string]float64 `mapstructure:"asset_prices"`
	// AssumeUSD treats amounts with no decimals/price information as
	// already USD-denominated instead of applying the magnitude heuristic.
	AssumeUSD bool `mapstructure:"assume_usd"`
	// DefaultDecimals is applied by the magnitude heuristic when a raw
	// integer amount has no decimals information.
	DefaultDecimals int `mapstructure:"default_decimals"`
}

// ScoringConfig controls feature weighting and the bot-frequency penalty.
type ScoringConfig struct {
	// Weights maps feature keys to signed weights. The six required keys
	// are validated at startup; see scoring.ValidateWeights.
	Weights map[string]float64 `mapstructure:"weights"`
	// BotFrequencyPercentile is the upper percentile of the population
	// frequency distribution beyond which activity is treated as bot-like.
	// Tunable; 0.95 by default, no canonical value exists.
	BotFrequencyPercentile float64 `mapstructure:"bot_frequency_percentile"`
	// BotPenalty is the multiplier applied to the frequency weight for
	// wallets beyond the percentile cutoff. Negative values turn the
	// frequency contribution into a deduction.
	BotPenalty float64 `mapstructure:"bot_penalty"`
	// NoBorrowCredit is the normalized value, in [0,1], credited to the
	// borrow_repay_ratio and collateral_first contributions of wallets
	// that never borrowed, keeping them distinct from defaulted borrowers.
	NoBorrowCredit float64 `mapstructure:"no_borrow_credit"`
}

// ReportConfig controls summary output.
type ReportConfig struct {
	// LowScoreThreshold is the final-score cutoff used by the summary
	// count of at-risk wallets.
	LowScoreThreshold int `mapstructure:"low_score_threshold"`
}

// Load reads configuration from the given YAML file (optional), layered
// under AAVE_SCORE_* environment variables and built-in defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix("AAVE_SCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	// Ingest defaults match the protocol export shape: nested actionData
	// with raw amount and USD price, unix-second timestamps.
	v.SetDefault("ingest.field_aliases", map[string][]string{
		"wallet":     {"userWallet", "wallet_address", "wallet", "user"},
		"action":     {"action", "event", "type"},
		"amount_usd": {"amount_usd", "amountUSD", "usd_value"},
		"amount":     {"amount", "value", "raw_amount"},
		"asset":      {"assetSymbol", "asset_id", "asset", "reserve"},
		"price":      {"assetPriceUSD", "price_usd", "price"},
		"timestamp":  {"timestamp", "ts", "block_timestamp"},
		"decimals":   {"decimals", "assetDecimals"},
	})
	v.SetDefault("ingest.asset_decimals", map[string]int{})
	v.SetDefault("ingest.asset_prices", map[string]float64{})
	v.SetDefault("ingest.assume_usd", false)
	v.SetDefault("ingest.default_decimals", 18)

	// Scoring defaults. Repayment discipline carries the largest weight,
	// liquidations the largest deduction.
	v.SetDefault("scoring.weights", map[string]float64{
		"borrow_repay_ratio":    0.30,
		"liquidation_count":     -0.25,
		"transaction_frequency": 0.10,
		"collateral_first":      0.15,
		"unique_asset_count":    0.10,
		"volatility_score":      -0.10,
		"borrow_deposit_ratio":  -0.10,
	})
	v.SetDefault("scoring.bot_frequency_percentile", 0.95)
	v.SetDefault("scoring.bot_penalty", -0.5)
	v.SetDefault("scoring.no_borrow_credit", 0.5)

	v.SetDefault("report.low_score_threshold", 300)
}
