package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// topWalletRows bounds the wallet table in the Markdown summary.
const topWalletRows = 20

// RenderMarkdown renders the run report as a Markdown string.
func RenderMarkdown(r *RunReport) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Wallet Trust Score Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Wallets scored: %d\n\n", r.WalletCount))

	// Ingestion
	sb.WriteString("## Ingestion\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Records | %d |\n", r.Ingest.Records))
	sb.WriteString(fmt.Sprintf("| Retained | %d |\n", r.Ingest.Retained))
	sb.WriteString(fmt.Sprintf("| Skipped | %d |\n", r.Ingest.Skipped))
	sb.WriteString(fmt.Sprintf("| Filtered by allow-list | %d |\n", r.Ingest.Filtered))
	sb.WriteString("\n")

	if len(r.Ingest.SkipReasons) > 0 {
		sb.WriteString("### Skip Reasons\n\n")
		reasons := make([]string, 0, len(r.Ingest.SkipReasons))
		for reason := range r.Ingest.SkipReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", reason, r.Ingest.SkipReasons[reason]))
		}
		sb.WriteString("\n")
	}

	// Score distribution
	sb.WriteString("## Score Distribution\n\n")
	if r.WalletCount > 0 {
		sb.WriteString("| Statistic | Value |\n")
		sb.WriteString("|-----------|-------|\n")
		sb.WriteString(fmt.Sprintf("| Mean | %.1f |\n", r.Scores.Mean))
		sb.WriteString(fmt.Sprintf("| Min | %d |\n", r.Scores.Min))
		sb.WriteString(fmt.Sprintf("| P10 | %.1f |\n", r.Scores.P10))
		sb.WriteString(fmt.Sprintf("| P25 | %.1f |\n", r.Scores.P25))
		sb.WriteString(fmt.Sprintf("| P50 | %.1f |\n", r.Scores.P50))
		sb.WriteString(fmt.Sprintf("| P75 | %.1f |\n", r.Scores.P75))
		sb.WriteString(fmt.Sprintf("| P90 | %.1f |\n", r.Scores.P90))
		sb.WriteString(fmt.Sprintf("| Max | %d |\n", r.Scores.Max))
		sb.WriteString(fmt.Sprintf("| Below %d | %d |\n", r.Scores.LowScoreThreshold, r.Scores.LowScoreCount))
		sb.WriteString("\n")
	} else {
		sb.WriteString("No wallets scored.\n\n")
	}

	// Top wallets
	sb.WriteString("## Top Wallets\n\n")
	if len(r.Rows) > 0 {
		sb.WriteString("| Wallet | Score |\n")
		sb.WriteString("|--------|-------|\n")
		limit := len(r.Rows)
		if limit > topWalletRows {
			limit = topWalletRows
		}
		for _, row := range r.Rows[:limit] {
			sb.WriteString(fmt.Sprintf("| %s | %d |\n", row.WalletAddress, row.FinalScore))
		}
	} else {
		sb.WriteString("No wallet rows available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
