// Package surface defines output rendering for Delvescope assessments.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/delvescope/delvescope/pkg/scoring"
)

// Renderer produces formatted output from an AssessmentResult.
type Renderer interface {
	// Render writes the formatted assessment to the writer.
	Render(w io.Writer, result *scoring.AssessmentResult) error
}

// ForFormat returns the renderer for a --format flag value. Unknown formats
// fall back to the terminal renderer.
func ForFormat(format string) Renderer {
	if format == "json" {
		return &JSONRenderer{}
	}
	return &TerminalRenderer{}
}
