package ingest

import (
	"sort"
	"strings"
)

// Logical field names resolvable through a FieldMap.
const (
	FieldWallet    = "wallet"
	FieldAction    = "action"
	FieldAmount    = "amount"
	FieldAmountUSD = "amount_usd"
	FieldAsset     = "asset"
	FieldPrice     = "price"
	FieldTimestamp = "timestamp"
	FieldDecimals  = "decimals"
)

// FieldMap maps a logical field to the record keys that may carry it.
// Records are probed at the top level first, then one level inside nested
// objects (the export format nests amount/asset/price under actionData).
type FieldMap map[string][]string

// Resolve returns the first value found for the logical field, trying each
// alias at the top level, then inside nested objects in deterministic key
// order, then case-insensitively at the top level.
func (m FieldMap) Resolve(record map[string]any, field string) (any, bool) {
	aliases := m[field]

	for _, alias := range aliases {
		if v, ok := record[alias]; ok && v != nil {
			return v, true
		}
	}

	// Remaining probes walk record keys in sorted order for determinism.
	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// One level inside nested objects.
	for _, k := range keys {
		nested, isMap := record[k].(map[string]any)
		if !isMap {
			continue
		}
		for _, alias := range aliases {
			if v, ok := nested[alias]; ok && v != nil {
				return v, true
			}
		}
	}

	// Case-insensitive top-level fallback.
	for _, alias := range aliases {
		for _, k := range keys {
			if v := record[k]; v != nil && strings.EqualFold(k, alias) {
				return v, true
			}
		}
	}

	return nil, false
}
