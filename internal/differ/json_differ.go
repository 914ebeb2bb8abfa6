package differ

import (
	"fmt"
	"time"

	"github.com/aleister1102/respdiff/internal/common"
	"github.com/aleister1102/respdiff/internal/config"
	"github.com/aleister1102/respdiff/internal/jsonvalue"
	"github.com/aleister1102/respdiff/internal/models"
	"github.com/rs/zerolog"
)

// JSONDiffer compares parsed documents using the configured defaults and
// reports size limits and timing alongside the line diff.
type JSONDiffer struct {
	logger    zerolog.Logger
	assembler *Assembler
	statsCalc *DiffStatsCalculator
	limit     sizeLimit
	maxSizeMB int
	defaults  Options
}

// JSONDifferBuilder provides a fluent interface for creating JSONDiffer
type JSONDifferBuilder struct {
	logger     zerolog.Logger
	diffConfig *config.DiffConfig
	lineOpts   LineOptions
}

// NewJSONDifferBuilder creates a new builder
func NewJSONDifferBuilder(logger zerolog.Logger) *JSONDifferBuilder {
	return &JSONDifferBuilder{
		logger: logger.With().Str("component", "JSONDiffer").Logger(),
	}
}

// WithConfig sets the diff section of the application configuration
func (b *JSONDifferBuilder) WithConfig(cfg *config.DiffConfig) *JSONDifferBuilder {
	b.diffConfig = cfg
	return b
}

// WithLineOptions overrides the line differ settings
func (b *JSONDifferBuilder) WithLineOptions(opts LineOptions) *JSONDifferBuilder {
	b.lineOpts = opts
	return b
}

// Build creates a new JSONDiffer instance
func (b *JSONDifferBuilder) Build() (*JSONDiffer, error) {
	if b.diffConfig == nil {
		return nil, common.NewValidationError("diff", b.diffConfig, "diff config cannot be nil")
	}

	lineOpts := b.lineOpts
	if b.diffConfig.EnableSemanticCleanup {
		lineOpts.SemanticCleanup = true
	}
	if b.diffConfig.TimeoutSeconds > 0 {
		lineOpts.Timeout = time.Duration(b.diffConfig.TimeoutSeconds) * time.Second
	}

	return &JSONDiffer{
		logger:    b.logger,
		assembler: NewAssembler(lineOpts),
		statsCalc: NewDiffStatsCalculator(),
		limit:     sizeLimitMB(b.diffConfig.MaxDocumentSizeMB),
		maxSizeMB: b.diffConfig.MaxDocumentSizeMB,
		defaults: Options{
			ExclusionPaths: append([]string(nil), b.diffConfig.ExclusionPaths...),
			IgnoreOrder:    b.diffConfig.IgnoreOrder,
		},
	}, nil
}

// NewJSONDiffer creates a new instance of JSONDiffer
func NewJSONDiffer(logger zerolog.Logger, cfg *config.DiffConfig) (*JSONDiffer, error) {
	return NewJSONDifferBuilder(logger).
		WithConfig(cfg).
		Build()
}

// DefaultOptions returns the options taken from configuration.
func (d *JSONDiffer) DefaultOptions() Options {
	return Options{
		ExclusionPaths: append([]string(nil), d.defaults.ExclusionPaths...),
		IgnoreOrder:    d.defaults.IgnoreOrder,
	}
}

// Compare diffs left against right. Documents whose rendered form exceeds
// the configured size limit are not diffed; the result is marked TooLarge.
func (d *JSONDiffer) Compare(left, right jsonvalue.Value, opts Options) *models.JSONComparison {
	startTime := time.Now()

	oldText, newText := d.assembler.Texts(left, right, opts)
	builder := NewJSONComparisonBuilder().
		WithOptions(opts).
		WithTexts(oldText, newText)

	if err := d.limit.check(oldText, newText); err != nil {
		d.logger.Warn().Err(err).Int("old_bytes", len(oldText)).Int("new_bytes", len(newText)).Msg("Document too large for detailed diff")
		return builder.
			WithTooLarge(d.tooLargeMessage(oldText, newText)).
			WithProcessingTime(time.Since(startTime)).
			Build()
	}

	result := d.assembler.AssembleTexts(oldText, newText)
	stats := d.statsCalc.CalculateStats(result.Lines)

	d.logger.Debug().
		Int("lines", len(result.Lines)).
		Int("added", result.AddedCount).
		Int("removed", result.RemovedCount).
		Int("move_groups", stats.MoveGroups).
		Int("exclusion_paths", len(opts.ExclusionPaths)).
		Bool("ignore_order", opts.IgnoreOrder).
		Dur("duration", time.Since(startTime)).
		Msg("Compared documents")

	return builder.
		WithResult(result, stats).
		WithProcessingTime(time.Since(startTime)).
		Build()
}

func (d *JSONDiffer) tooLargeMessage(oldText, newText string) string {
	return fmt.Sprintf("Documents are too large for a detailed diff (limit: %dMB). Old size: %d bytes, New size: %d bytes.",
		d.maxSizeMB, len(oldText), len(newText))
}
