package reporting

import "time"

// RunReport represents the summary of one scoring run.
type RunReport struct {
	// Metadata
	GeneratedAt time.Time

	// Ingestion counters
	Ingest IngestSummary

	// Scored population
	WalletCount int
	Scores      ScoreDistribution

	// Rows sorted by final score DESC, wallet address ASC
	Rows []ScoreRow
}

// IngestSummary carries the ingestion counters into the report.
type IngestSummary struct {
	Records     int
	Retained    int
	Skipped     int
	Filtered    int
	SkipReasons map[string]int
}

// ScoreDistribution contains population statistics over final scores.
type ScoreDistribution struct {
	Mean float64
	Min  int
	Max  int
	P10  float64
	P25  float64
	P50  float64
	P75  float64
	P90  float64

	// LowScoreCount counts wallets with a final score below the threshold.
	LowScoreThreshold int
	LowScoreCount     int
}

// ScoreRow represents one row in the wallet score table.
type ScoreRow struct {
	WalletAddress string
	FinalScore    int
	RawScore      float64
}
