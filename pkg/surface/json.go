package surface

import (
	"encoding/json"
	"io"

	"github.com/delvescope/delvescope/pkg/scoring"
)

// JSONRenderer marshals AssessmentResult to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, result *scoring.AssessmentResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
