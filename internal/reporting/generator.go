package reporting

import (
	"sort"
	"time"

	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/stats"
)

// Generator assembles the run report from scored wallets.
type Generator struct {
	lowScoreThreshold int
	now               func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a report generator. Wallets scoring below
// lowScoreThreshold are counted in the distribution summary.
func NewGenerator(lowScoreThreshold int) *Generator {
	return &Generator{
		lowScoreThreshold: lowScoreThreshold,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces the full run report. Rows are sorted by final score
// DESC, wallet address ASC.
func (g *Generator) Generate(scored []domain.ScoredWallet, ingest IngestSummary) *RunReport {
	rows := make([]ScoreRow, len(scored))
	for i, s := range scored {
		rows[i] = ScoreRow{
			WalletAddress: s.WalletAddress,
			FinalScore:    s.FinalScore,
			RawScore:      s.RawScore,
		}
	}
	sortScoreRows(rows)

	return &RunReport{
		GeneratedAt: g.now(),
		Ingest:      ingest,
		WalletCount: len(rows),
		Scores:      g.generateDistribution(rows),
		Rows:        rows,
	}
}

// generateDistribution computes population statistics over final scores.
func (g *Generator) generateDistribution(rows []ScoreRow) ScoreDistribution {
	dist := ScoreDistribution{LowScoreThreshold: g.lowScoreThreshold}
	if len(rows) == 0 {
		return dist
	}

	finals := make([]float64, len(rows))
	lowCount := 0
	for i, r := range rows {
		finals[i] = float64(r.FinalScore)
		if r.FinalScore < g.lowScoreThreshold {
			lowCount++
		}
	}
	sort.Float64s(finals)

	dist.Mean = stats.Mean(finals)
	dist.Min = int(finals[0])
	dist.Max = int(finals[len(finals)-1])
	dist.P10 = stats.Percentile(finals, 0.10)
	dist.P25 = stats.Percentile(finals, 0.25)
	dist.P50 = stats.Percentile(finals, 0.50)
	dist.P75 = stats.Percentile(finals, 0.75)
	dist.P90 = stats.Percentile(finals, 0.90)
	dist.LowScoreCount = lowCount
	return dist
}

// sortScoreRows sorts by final score DESC, wallet address ASC.
func sortScoreRows(rows []ScoreRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FinalScore != rows[j].FinalScore {
			return rows[i].FinalScore > rows[j].FinalScore
		}
		return rows[i].WalletAddress < rows[j].WalletAddress
	})
}
