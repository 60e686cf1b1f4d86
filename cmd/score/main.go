// Package main provides the wallet trust scoring entry point.
// Executes: ingest → feature extraction → scoring → reporting
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jvsiddharth/aave-credit-score/internal/config"
	"github.com/jvsiddharth/aave-credit-score/internal/ingest"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
	"github.com/jvsiddharth/aave-credit-score/internal/pipeline"
)

func main() {
	// Parse flags
	input := flag.String("input", "", "Transactions file, JSON array or NDJSON (required)")
	output := flag.String("output", "wallet_scores.csv", "Scores CSV output path")
	allowlistPath := flag.String("allowlist", "", "Optional wallet allow-list file, one address per line")
	featuresOut := flag.String("features-out", "", "Optional feature matrix CSV output path")
	summaryOut := flag.String("summary-out", "", "Optional Markdown summary output path")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	logLevel := flag.String("log-level", "", "Log level override (debug|info|warn|error)")
	verify := flag.Bool("verify", false, "Score the input twice and fail on any divergence")
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

	runner, err := pipeline.NewRunner(cfg, logger, *input, *output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if *allowlistPath != "" {
		allowed, err := ingest.LoadAllowlist(*allowlistPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Allowlist error: %v\n", err)
			os.Exit(1)
		}
		runner = runner.WithAllowlist(allowed)
	}
	if *featuresOut != "" {
		runner = runner.WithFeaturesOutput(*featuresOut)
	}
	if *summaryOut != "" {
		runner = runner.WithSummaryOutput(*summaryOut)
	}

	report, err := runner.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	if *verify {
		verifyReport, err := runner.VerifyDeterminism()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Verification error: %v\n", err)
			os.Exit(1)
		}
		if verifyReport.DivergentWallets > 0 {
			fmt.Fprintf(os.Stderr, "Verification failed: %d of %d wallets diverged between runs\n",
				verifyReport.DivergentWallets, verifyReport.TotalWallets)
			for _, r := range verifyReport.Results {
				for _, d := range r.Divergences {
					fmt.Fprintf(os.Stderr, "  %s %s: %v != %v\n", r.WalletAddress, d.Field, d.Expected, d.Actual)
				}
			}
			os.Exit(1)
		}
		fmt.Printf("Verified: %d wallets scored identically across runs\n", verifyReport.TotalWallets)
	}

	fmt.Printf("Scored %d wallets -> %s\n", report.WalletCount, *output)
	if report.WalletCount > 0 {
		fmt.Printf("  score range: [%d, %d], mean %.1f\n",
			report.Scores.Min, report.Scores.Max, report.Scores.Mean)
		fmt.Printf("  wallets below %d: %d\n",
			report.Scores.LowScoreThreshold, report.Scores.LowScoreCount)
	}
	if report.Ingest.Skipped > 0 {
		fmt.Printf("  skipped records: %d\n", report.Ingest.Skipped)
	}
	if report.Ingest.Filtered > 0 {
		fmt.Printf("  filtered by allow-list: %d\n", report.Ingest.Filtered)
	}
}
