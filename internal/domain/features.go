package domain

import "time"

// WalletFeatures represents the behavioral feature vector computed for a
// single wallet from its chronologically ordered transactions.
type WalletFeatures struct {
	WalletAddress string // canonicalized wallet identifier

	TransactionCount     int                // total retained transactions
	ActionProportions    map[Action]float64 // share of each action, sums to 1 when count > 0
	ActiveSpan           time.Duration      // last timestamp minus first timestamp
	TransactionFrequency float64            // transactions per day; = count when span is zero
	BorrowRepayRatio     float64            // repaid USD / borrowed USD; 0 when nothing borrowed
	BorrowCount          int                // number of borrow transactions
	LiquidationCount     int                // number of liquidationcall transactions
	CollateralFirst      bool               // deposit observed strictly before first borrow
	VolatilityScore      float64            // coefficient of variation of inter-tx gaps; 0 with <2 tx
	UniqueAssetCount     int                // distinct AssetIDs touched

	DepositTotalUSD    float64 // summed deposit USD volume
	BorrowTotalUSD     float64 // summed borrow USD volume
	RepayTotalUSD      float64 // summed repay USD volume
	RedeemTotalUSD     float64 // summed redeemunderlying USD volume
	AvgTransactionUSD  float64 // mean USD value across all retained transactions
	BorrowDepositRatio float64 // borrowed USD / deposited USD; 0 when nothing deposited
}
