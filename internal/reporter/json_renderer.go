package reporter

import (
	"encoding/json"
	"io"

	"github.com/aleister1102/respdiff/internal/models"
)

// JSONRenderer writes the DiffResult as indented JSON. Oversized
// comparisons are written as the comparison record so the reason is kept.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render encodes the result.
func (r *JSONRenderer) Render(w io.Writer, cmp *models.JSONComparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if cmp.TooLarge {
		return enc.Encode(cmp)
	}
	result := cmp.Result
	if result.Lines == nil {
		result.Lines = []models.DiffLine{}
	}
	return enc.Encode(result)
}
