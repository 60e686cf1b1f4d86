package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jvsiddharth/aave-credit-score/internal/config"
	"github.com/jvsiddharth/aave-credit-score/internal/domain"
	"github.com/jvsiddharth/aave-credit-score/internal/features"
	"github.com/jvsiddharth/aave-credit-score/internal/ingest"
	"github.com/jvsiddharth/aave-credit-score/internal/logging"
	"github.com/jvsiddharth/aave-credit-score/internal/reporting"
	"github.com/jvsiddharth/aave-credit-score/internal/scoring"
	"github.com/jvsiddharth/aave-credit-score/internal/verification"
)

// Runner orchestrates the scoring pipeline: Ingestor, Feature Extractor,
// Scorer, Reporter. Each stage consumes the prior stage's complete output;
// nothing feeds back upstream.
type Runner struct {
	cfg       *config.Config
	logger    *logging.Logger
	ingestor  *ingest.Ingestor
	scorer    *scoring.Scorer
	generator *reporting.Generator

	inputPath    string
	outputPath   string
	featuresPath string // optional feature matrix CSV
	summaryPath  string // optional Markdown summary
}

// NewRunner wires the pipeline stages. The scoring configuration is
// validated here, before any data is read.
func NewRunner(cfg *config.Config, logger *logging.Logger, inputPath, outputPath string) (*Runner, error) {
	scorer, err := scoring.NewScorer(cfg.Scoring, logger)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:        cfg,
		logger:     logger.WithComponent("pipeline"),
		ingestor:   ingest.NewIngestor(cfg.Ingest, logger),
		scorer:     scorer,
		generator:  reporting.NewGenerator(cfg.Report.LowScoreThreshold),
		inputPath:  inputPath,
		outputPath: outputPath,
	}, nil
}

// WithAllowlist restricts the run to the given canonical addresses.
func (r *Runner) WithAllowlist(allowed map[string]struct{}) *Runner {
	r.ingestor = r.ingestor.WithAllowlist(allowed)
	return r
}

// WithFeaturesOutput also writes the full feature matrix as CSV.
func (r *Runner) WithFeaturesOutput(path string) *Runner {
	r.featuresPath = path
	return r
}

// WithSummaryOutput also writes a Markdown run summary.
func (r *Runner) WithSummaryOutput(path string) *Runner {
	r.summaryPath = path
	return r
}

// WithClock sets a custom clock function for deterministic output.
func (r *Runner) WithClock(clock func() time.Time) *Runner {
	r.generator = r.generator.WithClock(clock)
	return r
}

// Run executes the full pipeline and writes the output files. The scores
// CSV is always written, header-only when the population is empty.
func (r *Runner) Run() (*reporting.RunReport, error) {
	txs, stats, err := r.ingestor.Run(r.inputPath)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}

	vectors := features.Extract(txs)
	scored := r.scorer.Score(vectors)

	report := r.generator.Generate(scored, reporting.IngestSummary{
		Records:     stats.Records,
		Retained:    stats.Retained,
		Skipped:     stats.Skipped,
		Filtered:    stats.Filtered,
		SkipReasons: stats.SkipReasons,
	})

	if err := writeFile(r.outputPath, reporting.RenderScoresCSV(report.Rows)); err != nil {
		return nil, fmt.Errorf("write scores: %w", err)
	}

	if r.featuresPath != "" {
		if err := writeFile(r.featuresPath, reporting.RenderFeaturesCSV(vectors)); err != nil {
			return nil, fmt.Errorf("write features: %w", err)
		}
	}

	if r.summaryPath != "" {
		if err := writeFile(r.summaryPath, reporting.RenderMarkdown(report)); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
	}

	r.logger.Info("run complete",
		zap.Int("wallets", report.WalletCount),
		zap.Float64("score_mean", report.Scores.Mean),
		zap.Int("low_score_wallets", report.Scores.LowScoreCount),
		zap.Int("skipped_records", stats.Skipped),
		zap.String("output", r.outputPath),
	)
	return report, nil
}

// VerifyDeterminism scores the input twice and compares the runs wallet
// by wallet. Nothing is written; this exercises the whole pipeline up to
// the reporter.
func (r *Runner) VerifyDeterminism() (*verification.Report, error) {
	first, err := r.scoreOnce()
	if err != nil {
		return nil, err
	}
	second, err := r.scoreOnce()
	if err != nil {
		return nil, err
	}

	report, err := verification.VerifyScored(first, second)
	if err != nil {
		return nil, err
	}

	r.logger.Info("determinism verification complete",
		zap.Int("wallets", report.TotalWallets),
		zap.Int("divergent", report.DivergentWallets),
	)
	return report, nil
}

func (r *Runner) scoreOnce() ([]domain.ScoredWallet, error) {
	txs, _, err := r.ingestor.Run(r.inputPath)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return r.scorer.Score(features.Extract(txs)), nil
}

// writeFile writes content, creating the parent directory if needed.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
