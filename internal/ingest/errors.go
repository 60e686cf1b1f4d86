package ingest

import "errors"

// ErrUnreadableInput is returned when the input source cannot be opened
// or its container cannot be parsed at all. Individual malformed records
// are skipped and counted instead.
var ErrUnreadableInput = errors.New("unreadable input")

// Skip reasons recorded in Stats.SkipReasons.
const (
	ReasonUndecodable      = "undecodable_record"
	ReasonMissingWallet    = "missing_wallet"
	ReasonInvalidWallet    = "invalid_wallet"
	ReasonMissingAction    = "missing_action"
	ReasonUnknownAction    = "unknown_action"
	ReasonMissingAmount    = "missing_amount"
	ReasonInvalidAmount    = "invalid_amount"
	ReasonNegativeAmount   = "negative_amount"
	ReasonMissingTimestamp = "missing_timestamp"
	ReasonInvalidTimestamp = "invalid_timestamp"
)
