// Package main dumps the per-wallet feature matrix without scoring.
// Useful for inspecting extractor output before tuning weights.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jvsiddharth/aave-credit-score/internal/config"
	"github.com/jvsiddharth/aave-credit-score/internal/features"
	"github.com/jvsiddharth/aave-credit-score/internal/ingest"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
	"github.com/jvsiddharth/aave-credit-score/internal/reporting"
)

func main() {
	input := flag.String("input", "", "Transactions file, JSON array or NDJSON (required)")
	output := flag.String("output", "wallet_features.csv", "Feature matrix CSV output path")
	allowlistPath := flag.String("allowlist", "", "Optional wallet allow-list file, one address per line")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	logLevel := flag.String("log-level", "", "Log level override (debug|info|warn|error)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -input")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ingestor := ingest.NewIngestor(cfg.Ingest, logger)
	if *allowlistPath != "" {
		allowed, err := ingest.LoadAllowlist(*allowlistPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Allowlist error: %v\n", err)
			os.Exit(1)
		}
		ingestor = ingestor.WithAllowlist(allowed)
	}

	txs, stats, err := ingestor.Run(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest error: %v\n", err)
		os.Exit(1)
	}

	vectors := features.Extract(txs)
	if err := os.WriteFile(*output, []byte(reporting.RenderFeaturesCSV(vectors)), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Write error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Extracted features for %d wallets -> %s\n", len(vectors), *output)
	if stats.Skipped > 0 {
		fmt.Printf("  skipped records: %d\n", stats.Skipped)
	}
}
