package features

import (
	"sort"
	"time"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/stats"
)

// Extract groups transactions by wallet and computes one WalletFeatures
// per wallet observed in the input. The result is sorted by wallet address.
//
// Policies:
//   - per-wallet ordering is timestamp ASC, input index ASC
//   - transaction_frequency = count / active_span_days, = count when span is 0
//   - borrow_repay_ratio = repaid USD / borrowed USD, = 0 when nothing borrowed
//   - borrow_deposit_ratio = borrowed USD / deposited USD, = 0 when nothing deposited
//   - volatility = stddev/mean over inter-transaction gaps (seconds), 0 with fewer
//     than 2 transactions or zero mean gap
//   - collateral_first = at least one deposit strictly before the first borrow
func Extract(txs []domain.Transaction) []domain.WalletFeatures {
	if len(txs) == 0 {
		return nil
	}

	groups := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		groups[tx.WalletAddress] = append(groups[tx.WalletAddress], tx)
	}

	wallets := make([]string, 0, len(groups))
	for w := range groups {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)

	result := make([]domain.WalletFeatures, 0, len(wallets))
	for _, w := range wallets {
		result = append(result, extractWallet(w, groups[w]))
	}
	return result
}

// extractWallet computes the feature vector for one wallet group.
// The group is non-empty by construction.
func extractWallet(wallet string, group []domain.Transaction) domain.WalletFeatures {
	sorted := make([]domain.Transaction, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].Index < sorted[j].Index
	})

	n := len(sorted)
	counts := make(map[domain.Action]int, len(domain.Actions))
	totals := make(map[domain.Action]float64, len(domain.Actions))
	assets := make(map[string]struct{})
	totalUSD := 0.0
	firstBorrow := -1
	firstDeposit := -1

	for idx, tx := range sorted {
		counts[tx.Action]++
		totals[tx.Action] += tx.AmountUSD
		totalUSD += tx.AmountUSD
		if tx.AssetID != "" {
			assets[tx.AssetID] = struct{}{}
		}
		if tx.Action == domain.ActionBorrow && firstBorrow < 0 {
			firstBorrow = idx
		}
		if tx.Action == domain.ActionDeposit && firstDeposit < 0 {
			firstDeposit = idx
		}
	}

	proportions := make(map[domain.Action]float64, len(domain.Actions))
	for _, a := range domain.Actions {
		proportions[a] = float64(counts[a]) / float64(n)
	}

	span := sorted[n-1].Timestamp.Sub(sorted[0].Timestamp)
	frequency := float64(n)
	if spanDays := span.Hours() / 24; spanDays > 0 {
		frequency = float64(n) / spanDays
	}

	borrowRepayRatio := 0.0
	if totals[domain.ActionBorrow] > 0 {
		borrowRepayRatio = totals[domain.ActionRepay] / totals[domain.ActionBorrow]
	}
	borrowDepositRatio := 0.0
	if totals[domain.ActionDeposit] > 0 {
		borrowDepositRatio = totals[domain.ActionBorrow] / totals[domain.ActionDeposit]
	}

	return domain.WalletFeatures{
		WalletAddress: wallet,

		TransactionCount:     n,
		ActionProportions:    proportions,
		ActiveSpan:           span,
		TransactionFrequency: frequency,
		BorrowRepayRatio:     borrowRepayRatio,
		BorrowCount:          counts[domain.ActionBorrow],
		LiquidationCount:     counts[domain.ActionLiquidation],
		CollateralFirst:      firstBorrow >= 0 && firstDeposit >= 0 && firstDeposit < firstBorrow,
		VolatilityScore:      gapVolatility(sorted),
		UniqueAssetCount:     len(assets),

		DepositTotalUSD:    totals[domain.ActionDeposit],
		BorrowTotalUSD:     totals[domain.ActionBorrow],
		RepayTotalUSD:      totals[domain.ActionRepay],
		RedeemTotalUSD:     totals[domain.ActionRedeem],
		AvgTransactionUSD:  totalUSD / float64(n),
		BorrowDepositRatio: borrowDepositRatio,
	}
}

// gapVolatility computes the coefficient of variation over inter-transaction
// gaps in seconds. Transactions must be pre-sorted chronologically.
func gapVolatility(sorted []domain.Transaction) float64 {
	if len(sorted) < 2 {
		return 0
	}
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].Timestamp.Sub(sorted[i-1].Timestamp)
		gaps = append(gaps, gap.Seconds())
	}
	mean := stats.Mean(gaps)
	if mean == 0 {
		return 0
	}
	return stats.SampleStddev(gaps, mean) / mean
}

// ActiveSpanDays converts an active span to fractional days.
func ActiveSpanDays(span time.Duration) float64 {
	return span.Hours() / 24
}
