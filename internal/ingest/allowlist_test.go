package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllowlist(t *testing.T) {
	content := "# trusted wallets\n" +
		"0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B\n" +
		"\n" +
		"11111111111111111111111111111111\n"
	path := filepath.Join(t.TempDir(), "allowlist.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	allowed, err := LoadAllowlist(path)
	require.NoError(t, err)

	assert.Len(t, allowed, 2)
	assert.Contains(t, allowed, "0xab5801a7d398351b8be11c439e05c5b3259aec9b")
	assert.Contains(t, allowed, "11111111111111111111111111111111")
}

func TestLoadAllowlist_InvalidEntriesKeptVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allowlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("Not-A-Wallet\n"), 0644))

	allowed, err := LoadAllowlist(path)
	require.NoError(t, err)

	assert.Contains(t, allowed, "not-a-wallet")
}

func TestLoadAllowlist_MissingFile(t *testing.T) {
	_, err := LoadAllowlist(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
