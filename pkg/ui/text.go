package ui

import (
	"fmt"
	"io"
	"strings"
)

// textRenderer writes unstyled output for pipes and dumb terminals.
type textRenderer struct {
	output io.Writer
}

func newText(w io.Writer) *textRenderer {
	return &textRenderer{output: w}
}

func (r *textRenderer) RenderResult(result any) error {
	var b strings.Builder

	switch v := result.(type) {
	case *Report:
		if v.Valid {
			fmt.Fprintf(&b, "%s is valid\n  bars: %s  widgets: %d\n", v.Path, strings.Join(v.Bars, ", "), len(v.Widgets))
			break
		}
		fmt.Fprintf(&b, "%s has %s\n", v.Path, plural(len(v.Problems), "problem"))
		writeProblems(&b, v.Problems)
	case *WidgetList:
		for _, w := range v.Widgets {
			fmt.Fprintf(&b, "%s", w.Type)
			if w.Alias != "" {
				fmt.Fprintf(&b, " (%s)", w.Alias)
			}
			fmt.Fprintf(&b, "\n  %s\n  actions: %s\n", w.Description, strings.Join(w.Actions, ", "))
		}
	case *Labels:
		for _, l := range v.Labels {
			writeLabel(&b, l)
		}
	case *Label:
		writeLabel(&b, *v)
	case *Document:
		b.WriteString(v.Markdown)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderError(err error) error {
	var b strings.Builder
	problems := Problems(err)
	if len(problems) == 1 && problems[0].Path == "" {
		fmt.Fprintf(&b, "Error: %s\n", problems[0].Message)
	} else {
		fmt.Fprintf(&b, "Error: %s\n", plural(len(problems), "problem"))
		writeProblems(&b, problems)
	}
	_, werr := io.WriteString(r.output, b.String())
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func writeProblems(b *strings.Builder, problems []Problem) {
	for _, p := range problems {
		b.WriteString("  ")
		if p.Path != "" {
			b.WriteString(p.Path + ": ")
		}
		b.WriteString(p.Message)
		if p.Suggestion != "" {
			fmt.Fprintf(b, " (did you mean %q?)", p.Suggestion)
		}
		b.WriteString("\n")
	}
}

func writeLabel(b *strings.Builder, l Label) {
	if !l.Visible {
		return
	}
	if l.Bar != "" {
		fmt.Fprintf(b, "%s/%s: %s\n", l.Bar, l.Widget, l.Text())
		return
	}
	fmt.Fprintf(b, "%s: %s\n", l.Widget, l.Text())
}
