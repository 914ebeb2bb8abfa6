package differ

import (
	"time"

	"github.com/aleister1102/respdiff/internal/models"
)

// JSONComparisonBuilder builds JSONComparison objects
type JSONComparisonBuilder struct {
	result models.JSONComparison
}

// NewJSONComparisonBuilder creates a new result builder
func NewJSONComparisonBuilder() *JSONComparisonBuilder {
	return &JSONComparisonBuilder{
		result: models.JSONComparison{
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

// WithOptions records the options the comparison ran with
func (rb *JSONComparisonBuilder) WithOptions(opts Options) *JSONComparisonBuilder {
	rb.result.ExclusionPaths = append([]string(nil), opts.ExclusionPaths...)
	rb.result.IgnoreOrder = opts.IgnoreOrder
	return rb
}

// WithTexts sets the normalized documents that were compared
func (rb *JSONComparisonBuilder) WithTexts(oldText, newText string) *JSONComparisonBuilder {
	rb.result.OldText = oldText
	rb.result.NewText = newText
	return rb
}

// WithResult sets the diff result and statistics
func (rb *JSONComparisonBuilder) WithResult(result models.DiffResult, stats DiffStatistics) *JSONComparisonBuilder {
	rb.result.Result = result
	rb.result.IsIdentical = stats.IsIdentical
	return rb
}

// WithTooLarge marks the comparison as skipped because of its size
func (rb *JSONComparisonBuilder) WithTooLarge(errorMessage string) *JSONComparisonBuilder {
	rb.result.TooLarge = true
	rb.result.ErrorMessage = errorMessage
	rb.result.IsIdentical = rb.result.OldText == rb.result.NewText
	return rb
}

// WithProcessingTime sets the processing time
func (rb *JSONComparisonBuilder) WithProcessingTime(duration time.Duration) *JSONComparisonBuilder {
	rb.result.ProcessingTimeMs = duration.Milliseconds()
	return rb
}

// Build creates the final JSONComparison
func (rb *JSONComparisonBuilder) Build() *models.JSONComparison {
	return &rb.result
}
