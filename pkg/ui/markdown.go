package ui

import "github.com/charmbracelet/glamour"

// MarkdownRenderer renders markdown for the terminal.
type MarkdownRenderer struct {
	Style string // "dark", "light", "notty", "auto" or a style file path
	Width int    // 0 keeps glamour's default
}

// NewMarkdownRenderer returns a renderer that detects the terminal style.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: "auto"}
}

// Render returns content styled for the terminal, or content unchanged when
// glamour fails.
func (r *MarkdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
