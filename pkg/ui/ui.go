// Package ui renders command results in terminal (styled), text (plain) and
// JSON formats.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/barkeep/pkg/errors"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders one of the result types of this package
	RenderResult(result any) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to terminal output otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return newTerminal(output), nil
	case FormatText:
		return newText(output), nil
	case FormatJSON:
		return newJSON(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
