package ingest

import (
	"go.uber.org/zap"

	"github.com/jvsiddharth/aave-credit-score/internal/config"
	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
)

// Stats aggregates per-run ingestion counters. Malformed records never
// abort a run; they land in SkipReasons.
type Stats struct {
	Records     int            // raw records seen, decodable or not
	Retained    int            // transactions passed downstream
	Skipped     int            // malformed records dropped
	Filtered    int            // valid records dropped by the allow-list
	SkipReasons map[string]int // skip counts keyed by reason
}

func (s *Stats) skip(reason string, n int) {
	s.Skipped += n
	s.SkipReasons[reason] += n
}

// Ingestor normalizes raw transaction records into domain transactions.
type Ingestor struct {
	cfg       config.IngestConfig
	fields    FieldMap
	allowlist map[string]struct{}
	logger    *logging.Logger
}

// NewIngestor creates an ingestor for the given configuration.
func NewIngestor(cfg config.IngestConfig, logger *logging.Logger) *Ingestor {
	return &Ingestor{
		cfg:    cfg,
		fields: FieldMap(cfg.FieldAliases),
		logger: logger.WithComponent("ingest"),
	}
}

// WithAllowlist restricts ingestion to the given canonical addresses.
// A nil or empty set means "process all wallets seen".
func (i *Ingestor) WithAllowlist(allowed map[string]struct{}) *Ingestor {
	i.allowlist = allowed
	return i
}

// Run reads the transactions file at path and returns the retained
// transactions in input order together with ingestion stats.
func (i *Ingestor) Run(path string) ([]domain.Transaction, *Stats, error) {
	records, undecodable, err := ReadRawRecords(path)
	if err != nil {
		return nil, nil, err
	}

	stats := &Stats{
		Records:     len(records) + undecodable,
		SkipReasons: make(map[string]int),
	}
	if undecodable > 0 {
		stats.skip(ReasonUndecodable, undecodable)
	}

	txs := make([]domain.Transaction, 0, len(records))
	for _, rec := range records {
		tx, reason := i.parseRecord(rec)
		if reason != "" {
			stats.skip(reason, 1)
			continue
		}
		if len(i.allowlist) > 0 {
			if _, ok := i.allowlist[tx.WalletAddress]; !ok {
				stats.Filtered++
				continue
			}
		}
		tx.Index = len(txs)
		txs = append(txs, tx)
	}
	stats.Retained = len(txs)

	i.logger.Info("ingestion complete",
		zap.Int("records", stats.Records),
		zap.Int("retained", stats.Retained),
		zap.Int("skipped", stats.Skipped),
		zap.Int("filtered", stats.Filtered),
	)
	return txs, stats, nil
}

// parseRecord maps one raw record onto a Transaction. A non-empty reason
// marks the record malformed.
func (i *Ingestor) parseRecord(rec map[string]any) (domain.Transaction, string) {
	var tx domain.Transaction

	rawWallet, ok := i.fields.Resolve(rec, FieldWallet)
	if !ok {
		return tx, ReasonMissingWallet
	}
	walletStr, ok := rawWallet.(string)
	if !ok {
		return tx, ReasonInvalidWallet
	}
	wallet, _, err := CanonicalAddress(walletStr)
	if err != nil {
		return tx, ReasonInvalidWallet
	}

	rawAction, ok := i.fields.Resolve(rec, FieldAction)
	if !ok {
		return tx, ReasonMissingAction
	}
	action, err := parseAction(rawAction)
	if err != nil {
		return tx, ReasonUnknownAction
	}

	rawTimestamp, ok := i.fields.Resolve(rec, FieldTimestamp)
	if !ok {
		return tx, ReasonMissingTimestamp
	}
	timestamp, err := parseTimestamp(rawTimestamp)
	if err != nil {
		return tx, ReasonInvalidTimestamp
	}

	asset := ""
	if rawAsset, ok := i.fields.Resolve(rec, FieldAsset); ok {
		if s, isStr := rawAsset.(string); isStr {
			asset = s
		}
	}

	usd, reason := i.resolveAmountUSD(rec, asset)
	if reason != "" {
		return tx, reason
	}

	tx.WalletAddress = wallet
	tx.Action = action
	tx.AmountUSD = usd
	tx.Timestamp = timestamp
	tx.AssetID = asset
	return tx, ""
}

// resolveAmountUSD prefers a field already denominated in USD; raw token
// amounts go through decimals and price resolution.
func (i *Ingestor) resolveAmountUSD(rec map[string]any, asset string) (float64, string) {
	if v, ok := i.fields.Resolve(rec, FieldAmountUSD); ok {
		usd, err := parseDecimalValue(v)
		if err != nil {
			return 0, ReasonInvalidAmount
		}
		if usd.IsNegative() {
			return 0, ReasonNegativeAmount
		}
		f, _ := usd.Float64()
		return f, ""
	}

	v, ok := i.fields.Resolve(rec, FieldAmount)
	if !ok {
		return 0, ReasonMissingAmount
	}
	amount, err := parseDecimalValue(v)
	if err != nil {
		return 0, ReasonInvalidAmount
	}
	if amount.IsNegative() {
		return 0, ReasonNegativeAmount
	}
	return i.amountToUSD(amount, rec, asset), ""
}
