package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadAllowlist reads a flat file of wallet addresses, one per line.
// Blank lines and #-comments are ignored. Entries are canonicalized the
// same way record addresses are; entries that fail validation are kept
// lowercased verbatim so exact matches still apply.
func LoadAllowlist(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allowlist: %w", err)
	}
	defer f.Close()

	allowed := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if canonical, _, err := CanonicalAddress(line); err == nil {
			allowed[canonical] = struct{}{}
		} else {
			allowed[strings.ToLower(line)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read allowlist: %w", err)
	}
	return allowed, nil
}
