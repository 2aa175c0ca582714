package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// terminalRenderer styles output with lipgloss and pterm.
type terminalRenderer struct {
	output   io.Writer
	markdown *MarkdownRenderer
}

func newTerminal(w io.Writer) *terminalRenderer {
	return &terminalRenderer{output: w, markdown: NewMarkdownRenderer()}
}

func (r *terminalRenderer) RenderResult(result any) error {
	switch v := result.(type) {
	case *Report:
		return r.report(v)
	case *WidgetList:
		return r.widgets(v)
	case *Labels:
		for _, l := range v.Labels {
			if err := r.label(l); err != nil {
				return err
			}
		}
		return nil
	case *Label:
		return r.label(*v)
	case *Document:
		_, err := io.WriteString(r.output, r.markdown.Render(v.Markdown))
		return err
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *terminalRenderer) RenderError(err error) error {
	problems := Problems(err)
	if len(problems) == 1 && problems[0].Path == "" {
		_, werr := fmt.Fprintf(r.output, "%s %s\n", ErrorIndicator, ErrorStyle.Render(problems[0].Message))
		return werr
	}
	if _, werr := fmt.Fprintf(r.output, "%s %s\n", ErrorIndicator, ErrorStyle.Render(fmt.Sprintf("%d problems", len(problems)))); werr != nil {
		return werr
	}
	return r.problems(problems)
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *terminalRenderer) report(rep *Report) error {
	if rep.Valid {
		_, err := fmt.Fprintf(r.output, "%s %s is valid\n  %s\n",
			SuccessIndicator,
			PathStyle.Render(rep.Path),
			MutedStyle.Render(fmt.Sprintf("bars: %s  widgets: %d", strings.Join(rep.Bars, ", "), len(rep.Widgets))),
		)
		return err
	}

	if _, err := fmt.Fprintf(r.output, "%s %s has %s\n",
		ErrorIndicator,
		PathStyle.Render(rep.Path),
		ErrorStyle.Render(plural(len(rep.Problems), "problem")),
	); err != nil {
		return err
	}
	return r.problems(rep.Problems)
}

func (r *terminalRenderer) problems(problems []Problem) error {
	for _, p := range problems {
		line := "  " + p.Message
		if p.Path != "" {
			line = "  " + TitleStyle.Render(p.Path) + ": " + p.Message
		}
		if p.Suggestion != "" {
			line += " " + WarningStyle.Render(fmt.Sprintf("(did you mean %q?)", p.Suggestion))
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

func (r *terminalRenderer) widgets(list *WidgetList) error {
	data := pterm.TableData{{"Type", "Alias", "Actions", "Description"}}
	for _, w := range list.Widgets {
		data = append(data, []string{w.Type, w.Alias, strings.Join(w.Actions, ", "), w.Description})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

func (r *terminalRenderer) label(l Label) error {
	name := l.Widget
	if l.Bar != "" {
		name = l.Bar + "/" + l.Widget
	}
	if !l.Visible {
		_, err := fmt.Fprintf(r.output, "%s %s\n", HiddenIndicator, MutedStyle.Render(name))
		return err
	}
	_, err := fmt.Fprintf(r.output, "%s %s\n", MutedStyle.Render(name), LabelStyle.Render(l.Text()))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
