package domain

import "time"

// Action represents the lending protocol action type of a transaction.
type Action string

const (
	ActionDeposit     Action = "deposit"
	ActionBorrow      Action = "borrow"
	ActionRepay       Action = "repay"
	ActionRedeem      Action = "redeemunderlying"
	ActionLiquidation Action = "liquidationcall"
)

// Actions lists all recognized actions in canonical order.
var Actions = []Action{
	ActionDeposit,
	ActionBorrow,
	ActionRepay,
	ActionRedeem,
	ActionLiquidation,
}

// String returns the string representation of Action.
func (a Action) String() string {
	return string(a)
}

// IsValid checks if the action is a recognized value.
func (a Action) IsValid() bool {
	switch a {
	case ActionDeposit, ActionBorrow, ActionRepay, ActionRedeem, ActionLiquidation:
		return true
	}
	return false
}

// Transaction represents a single normalized lending protocol event.
type Transaction struct {
	WalletAddress string    // canonicalized wallet identifier
	Action        Action    // one of the five protocol actions
	AmountUSD     float64   // USD value, decimals-normalized, >= 0
	Timestamp     time.Time // event time, UTC
	AssetID       string    // asset symbol or reserve identifier
	Index         int       // position in the input stream, for stable ordering
}
