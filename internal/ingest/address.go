package ingest

import (
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Network identifies the address format a wallet was recognized as.
type Network string

const (
	NetworkEVM    Network = "evm"
	NetworkSolana Network = "solana"
)

// CanonicalAddress validates a raw wallet identifier and returns its
// canonical form together with the detected network.
//
// EVM addresses (0x-prefixed 20-byte hex) canonicalize to lowercase hex.
// Base58-encoded 32-byte ed25519 keys keep their case-sensitive encoding;
// off-curve keys are program-derived accounts, not user wallets, and are
// rejected.
func CanonicalAddress(raw string) (string, Network, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" {
		return "", "", fmt.Errorf("empty address")
	}

	if common.IsHexAddress(addr) {
		return strings.ToLower(common.HexToAddress(addr).Hex()), NetworkEVM, nil
	}

	decoded, err := base58.Decode(addr)
	if err == nil && len(decoded) == 32 {
		if !isOnCurve(decoded) {
			return "", "", fmt.Errorf("program-derived address %q is not a wallet", addr)
		}
		return addr, NetworkSolana, nil
	}

	return "", "", fmt.Errorf("unrecognized address format %q", addr)
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
