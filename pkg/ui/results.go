package ui

import (
	stderrors "errors"
	"strings"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/schema"
)

// Problem is one configuration error shown to the user.
type Problem struct {
	Path       string `json:"path,omitempty"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Problems flattens err into a list. Validation errors yield one problem per
// option; any other error yields a single entry.
func Problems(err error) []Problem {
	if err == nil {
		return nil
	}

	var verrs *schema.ValidationErrors
	if stderrors.As(err, &verrs) {
		out := make([]Problem, 0, verrs.Len())
		for _, v := range verrs.Errors {
			out = append(out, Problem{
				Path:       v.Path,
				Code:       string(v.Code),
				Message:    v.Message,
				Suggestion: v.Suggestion,
			})
		}
		return out
	}

	p := Problem{Code: string(errors.GetErrorCode(err)), Message: err.Error()}
	var bkErr *errors.BarkeepError
	if stderrors.As(err, &bkErr) {
		p.Message = bkErr.Message
		if bkErr.Wrapped != nil {
			p.Message += ": " + bkErr.Wrapped.Error()
		}
		if s, ok := bkErr.Details["suggestion"].(string); ok {
			p.Suggestion = s
		}
		if path, ok := bkErr.Details["path"].(string); ok {
			p.Path = path
		}
	}
	return []Problem{p}
}

// Report is the outcome of validating a configuration file.
type Report struct {
	Path     string    `json:"path"`
	Valid    bool      `json:"valid"`
	Bars     []string  `json:"bars,omitempty"`
	Widgets  []string  `json:"widgets,omitempty"`
	Problems []Problem `json:"problems,omitempty"`
}

// WidgetInfo describes one catalogue entry.
type WidgetInfo struct {
	Type        string   `json:"type"`
	Alias       string   `json:"alias,omitempty"`
	Description string   `json:"description"`
	Actions     []string `json:"actions"`
}

// WidgetList is the widget catalogue as shown by `barkeep widgets`.
type WidgetList struct {
	Widgets []WidgetInfo `json:"widgets"`
}

// LabelPart is one span or text piece of a label.
type LabelPart struct {
	Class string `json:"class"`
	Text  string `json:"text"`
}

// Label is one rendered widget label.
type Label struct {
	Bar     string      `json:"bar,omitempty"`
	Widget  string      `json:"widget"`
	Label   string      `json:"label"`
	Parts   []LabelPart `json:"parts,omitempty"`
	Visible bool        `json:"visible"`
}

// Text returns the label with span markup removed.
func (l Label) Text() string {
	if len(l.Parts) == 0 {
		return l.Label
	}
	texts := make([]string, 0, len(l.Parts))
	for _, p := range l.Parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, " ")
}

// Labels is a batch of rendered labels.
type Labels struct {
	Labels []Label `json:"labels"`
}

// Document is markdown shown through glamour on terminals.
type Document struct {
	Markdown string `json:"markdown"`
}
