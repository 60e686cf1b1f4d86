package reporting

import (
	"fmt"
	"strings"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/features"
)

// RenderScoresCSV renders the wallet score table as a CSV string.
// Rows must be pre-sorted by the generator.
func RenderScoresCSV(rows []ScoreRow) string {
	var sb strings.Builder

	sb.WriteString("wallet_address,score\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d\n", r.WalletAddress, r.FinalScore))
	}

	return sb.String()
}

// RenderFeaturesCSV renders the full feature matrix as a CSV string,
// one row per wallet in extractor order.
func RenderFeaturesCSV(vectors []domain.WalletFeatures) string {
	var sb strings.Builder

	sb.WriteString("wallet_address,transaction_count,active_span_days,transaction_frequency,")
	sb.WriteString("borrow_repay_ratio,borrow_count,liquidation_count,collateral_first,")
	sb.WriteString("volatility_score,unique_asset_count,")
	sb.WriteString("deposit_total_usd,borrow_total_usd,repay_total_usd,redeem_total_usd,")
	sb.WriteString("avg_transaction_usd,borrow_deposit_ratio,")
	sb.WriteString("prop_deposit,prop_borrow,prop_repay,prop_redeemunderlying,prop_liquidationcall\n")

	for _, v := range vectors {
		collateralFirst := 0
		if v.CollateralFirst {
			collateralFirst = 1
		}
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%d,%d,%d,%.6f,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.6f,%.4f,%.4f,%.4f,%.4f,%.4f\n",
			v.WalletAddress,
			v.TransactionCount,
			features.ActiveSpanDays(v.ActiveSpan),
			v.TransactionFrequency,
			v.BorrowRepayRatio,
			v.BorrowCount,
			v.LiquidationCount,
			collateralFirst,
			v.VolatilityScore,
			v.UniqueAssetCount,
			v.DepositTotalUSD,
			v.BorrowTotalUSD,
			v.RepayTotalUSD,
			v.RedeemTotalUSD,
			v.AvgTransactionUSD,
			v.BorrowDepositRatio,
			v.ActionProportions[domain.ActionDeposit],
			v.ActionProportions[domain.ActionBorrow],
			v.ActionProportions[domain.ActionRepay],
			v.ActionProportions[domain.ActionRedeem],
			v.ActionProportions[domain.ActionLiquidation],
		))
	}

	return sb.String()
}
