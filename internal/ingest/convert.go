package ingest

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
)

// rawIntegerThreshold separates raw base-unit token amounts from amounts
// already expressed in human units. Protocol exports carry 18-decimal
// base units, so anything above 1e12 is treated as unscaled.
var rawIntegerThreshold = decimal.New(1, 12)

// parseDecimalValue converts a JSON scalar into a decimal. Strings and
// json.Number parse exactly; plain float64 appears only when the caller
// decoded without UseNumber.
func parseDecimalValue(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return decimal.Zero, fmt.Errorf("empty numeric string")
		}
		return decimal.NewFromString(s)
	case float64:
		return decimal.NewFromFloat(t), nil
	case int:
		return decimal.NewFromInt(int64(t)), nil
	case int64:
		return decimal.NewFromInt(t), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// parseIntValue converts a JSON scalar into an int (token decimals field).
func parseIntValue(v any) (int, error) {
	d, err := parseDecimalValue(v)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not an integer: %s", d)
	}
	return int(d.IntPart()), nil
}

// parseTimestamp converts a JSON scalar into a UTC time. Unix seconds
// (integer or fractional) and RFC 3339 strings are accepted.
func parseTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case json.Number:
		return unixToTime(t.String())
	case float64:
		sec := int64(t)
		nsec := int64((t - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), nil
	case string:
		s := strings.TrimSpace(t)
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts.UTC(), nil
		}
		return unixToTime(s)
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func unixToTime(s string) (time.Time, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid unix timestamp %q", s)
	}
	if d.IsNegative() {
		return time.Time{}, fmt.Errorf("negative unix timestamp %s", d)
	}
	sec := d.IntPart()
	nsec := d.Sub(decimal.NewFromInt(sec)).Mul(decimal.New(1, 9)).IntPart()
	return time.Unix(sec, nsec).UTC(), nil
}

// parseAction normalizes an action value to a recognized domain.Action.
func parseAction(v any) (domain.Action, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("action is not a string")
	}
	action := domain.Action(strings.ToLower(strings.TrimSpace(s)))
	if !action.IsValid() {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return action, nil
}

// amountToUSD converts a raw amount to USD.
//
// Decimals resolve from the record's own decimals field, then the
// configured per-asset table, then a magnitude heuristic: raw integers
// above 1e12 are assumed to be base units at defaultDecimals, everything
// else is taken as already human-scaled. Price resolves from the record's
// price field, then the configured per-asset table, then 1 (amount assumed
// USD-denominated).
func (i *Ingestor) amountToUSD(amount decimal.Decimal, record map[string]any, asset string) float64 {
	scaled := amount

	decimals, haveDecimals := 0, false
	if v, ok := i.fields.Resolve(record, FieldDecimals); ok {
		if d, err := parseIntValue(v); err == nil && d >= 0 {
			decimals, haveDecimals = d, true
		}
	}
	if !haveDecimals {
		if d, ok := lookupAsset(i.cfg.AssetDecimals, asset); ok {
			decimals, haveDecimals = d, true
		}
	}

	switch {
	case haveDecimals:
		scaled = amount.Shift(int32(-decimals))
	case i.cfg.AssumeUSD:
		// Amount already USD-denominated.
	case amount.GreaterThan(rawIntegerThreshold) && amount.IsInteger():
		scaled = amount.Shift(int32(-i.cfg.DefaultDecimals))
	}

	price := decimal.NewFromInt(1)
	if v, ok := i.fields.Resolve(record, FieldPrice); ok {
		if p, err := parseDecimalValue(v); err == nil && p.Sign() >= 0 {
			price = p
		}
	} else if p, ok := lookupAsset(i.cfg.AssetPrices, asset); ok {
		price = decimal.NewFromFloat(p)
	}

	usd, _ := scaled.Mul(price).Float64()
	return usd
}

// lookupAsset probes a per-asset config table. YAML map keys arrive
// lowercased, so a miss retries with the lowercased asset.
func lookupAsset[V any](table map[string]V, asset string) (V, bool) {
	if v, ok := table[asset]; ok {
		return v, true
	}
	v, ok := table[strings.ToLower(asset)]
	return v, ok
}
