package ingest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
)

const (
	walletA = "0x1111111111111111111111111111111111111111"
	walletB = "0x2222222222222222222222222222222222222222"
)

func TestIngestor_Run_ExportShape(t *testing.T) {
	// Protocol export format: camelCase wallet, nested actionData with
	// raw base-unit amount and per-event price.
	content := `[{
		"userWallet": "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B",
		"action": "Deposit",
		"timestamp": 1700000000,
		"actionData": {
			"amount": "2000000000000000000",
			"assetSymbol": "WETH",
			"assetPriceUSD": "1500"
		}
	}]`
	path := writeInput(t, content)

	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	txs, stats, err := ing.Run(path)
	require.NoError(t, err)

	require.Len(t, txs, 1)
	assert.Equal(t, 1, stats.Records)
	assert.Equal(t, 1, stats.Retained)
	assert.Equal(t, 0, stats.Skipped)

	tx := txs[0]
	assert.Equal(t, "0xab5801a7d398351b8be11c439e05c5b3259aec9b", tx.WalletAddress)
	assert.Equal(t, domain.ActionDeposit, tx.Action)
	assert.InDelta(t, 3000.0, tx.AmountUSD, 0.0001)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), tx.Timestamp)
	assert.Equal(t, "WETH", tx.AssetID)
	assert.Equal(t, 0, tx.Index)
}

func TestIngestor_Run_SkipReasons(t *testing.T) {
	lines := []string{
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000, "amount_usd": "100"}`,
		`{"action": "deposit", "timestamp": 1700000000, "amount_usd": "100"}`,
		`{"wallet": "xyz", "action": "deposit", "timestamp": 1700000000, "amount_usd": "100"}`,
		`{"wallet": "` + walletA + `", "action": "swap", "timestamp": 1700000000, "amount_usd": "100"}`,
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": "never", "amount_usd": "100"}`,
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000, "amount_usd": "-5"}`,
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000}`,
	}
	path := writeInput(t, joinLines(lines))

	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	txs, stats, err := ing.Run(path)
	require.NoError(t, err)

	assert.Len(t, txs, 1)
	assert.Equal(t, 7, stats.Records)
	assert.Equal(t, 6, stats.Skipped)
	assert.Equal(t, 1, stats.SkipReasons[ReasonMissingWallet])
	assert.Equal(t, 1, stats.SkipReasons[ReasonInvalidWallet])
	assert.Equal(t, 1, stats.SkipReasons[ReasonUnknownAction])
	assert.Equal(t, 1, stats.SkipReasons[ReasonInvalidTimestamp])
	assert.Equal(t, 1, stats.SkipReasons[ReasonNegativeAmount])
	assert.Equal(t, 1, stats.SkipReasons[ReasonMissingAmount])
}

func TestIngestor_Run_UndecodableLines(t *testing.T) {
	lines := []string{
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000, "amount_usd": "100"}`,
		`this line is not json`,
		`{"wallet": "` + walletB + `", "action": "borrow", "timestamp": 1700000100, "amount_usd": "50"}`,
	}
	path := writeInput(t, joinLines(lines))

	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	txs, stats, err := ing.Run(path)
	require.NoError(t, err)

	assert.Len(t, txs, 2)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, 1, stats.SkipReasons[ReasonUndecodable])
}

func TestIngestor_Run_Allowlist(t *testing.T) {
	lines := []string{
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000, "amount_usd": "100"}`,
		`{"wallet": "` + walletB + `", "action": "deposit", "timestamp": 1700000100, "amount_usd": "200"}`,
	}
	path := writeInput(t, joinLines(lines))

	ing := NewIngestor(testIngestConfig(), logging.NewNop()).
		WithAllowlist(map[string]struct{}{walletA: {}})
	txs, stats, err := ing.Run(path)
	require.NoError(t, err)

	require.Len(t, txs, 1)
	assert.Equal(t, walletA, txs[0].WalletAddress)
	assert.Equal(t, 1, stats.Filtered)
	assert.Equal(t, 1, stats.Retained)
}

func TestIngestor_Run_IndexFollowsRetainedOrder(t *testing.T) {
	lines := []string{
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000, "amount_usd": "1"}`,
		`{"action": "deposit", "timestamp": 1700000000, "amount_usd": "1"}`,
		`{"wallet": "` + walletB + `", "action": "repay", "timestamp": 1700000200, "amount_usd": "2"}`,
	}
	path := writeInput(t, joinLines(lines))

	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	txs, _, err := ing.Run(path)
	require.NoError(t, err)

	require.Len(t, txs, 2)
	assert.Equal(t, 0, txs[0].Index)
	assert.Equal(t, 1, txs[1].Index)
}

func TestIngestor_Run_AmountUSDPreferred(t *testing.T) {
	// When both fields are present the USD-denominated one wins and the
	// raw amount is never scaled.
	lines := []string{
		`{"wallet": "` + walletA + `", "action": "deposit", "timestamp": 1700000000,` +
			` "amount_usd": "42.5", "amount": "9999999999999999999999"}`,
	}
	path := writeInput(t, joinLines(lines))

	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	txs, _, err := ing.Run(path)
	require.NoError(t, err)

	require.Len(t, txs, 1)
	assert.InDelta(t, 42.5, txs[0].AmountUSD, 0.0001)
}

func TestIngestor_Run_UnreadableFile(t *testing.T) {
	ing := NewIngestor(testIngestConfig(), logging.NewNop())
	_, _, err := ing.Run(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, ErrUnreadableInput))
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
