package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidConfig(t *testing.T) error {
	t.Helper()
	_, err := schema.New().
		Add("update_interval", schema.Integer(1000).Range(0, 60000)).
		Normalize(map[string]any{"update_interval": -1, "labl": "x"}, schema.Strict)
	require.Error(t, err)
	return errors.Wrap(err, errors.ErrConfigValid, "invalid configuration")
}

func TestProblems(t *testing.T) {
	t.Run("validation errors", func(t *testing.T) {
		problems := ui.Problems(invalidConfig(t))
		require.Len(t, problems, 2)
		assert.Equal(t, "update_interval", problems[0].Path)
		assert.Equal(t, string(errors.ErrOptionRange), problems[0].Code)
		assert.Equal(t, "labl", problems[1].Path)
	})

	t.Run("coded error", func(t *testing.T) {
		err := errors.New(errors.ErrWidgetType, `unknown widget type "clok"`).
			WithDetail("suggestion", "clock")
		problems := ui.Problems(err)
		require.Len(t, problems, 1)
		assert.Equal(t, "clock", problems[0].Suggestion)
		assert.Equal(t, string(errors.ErrWidgetType), problems[0].Code)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ui.Problems(nil))
	})
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		r, err := ui.NewRenderer(format, &buf)
		require.NoError(t, err)
		assert.NotNil(t, r)
	}

	_, err := ui.NewRenderer(ui.Format(42), &buf)
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	render := func(t *testing.T, result any) string {
		var buf bytes.Buffer
		r, err := ui.NewRenderer(ui.FormatText, &buf)
		require.NoError(t, err)
		require.NoError(t, r.RenderResult(result))
		return buf.String()
	}

	t.Run("valid report", func(t *testing.T) {
		out := render(t, &ui.Report{Path: "config.yaml", Valid: true, Bars: []string{"yasb-bar"}, Widgets: []string{"clock"}})
		assert.Equal(t, "config.yaml is valid\n  bars: yasb-bar  widgets: 1\n", out)
	})

	t.Run("invalid report", func(t *testing.T) {
		out := render(t, &ui.Report{Path: "config.yaml", Problems: []ui.Problem{
			{Path: "widgets.clock.options.labl", Message: "unknown option", Suggestion: "label"},
		}})
		assert.Contains(t, out, "config.yaml has 1 problem\n")
		assert.Contains(t, out, `widgets.clock.options.labl: unknown option (did you mean "label"?)`)
	})

	t.Run("labels skip hidden widgets", func(t *testing.T) {
		out := render(t, &ui.Labels{Labels: []ui.Label{
			{Bar: "main", Widget: "clock", Label: "12:00", Visible: true},
			{Bar: "main", Widget: "media", Visible: false},
		}})
		assert.Equal(t, "main/clock: 12:00\n", out)
	})

	t.Run("widget list", func(t *testing.T) {
		out := render(t, &ui.WidgetList{Widgets: []ui.WidgetInfo{
			{Type: "yasb.clock.ClockWidget", Alias: "clock", Description: "Time", Actions: []string{"toggle_label"}},
		}})
		assert.Contains(t, out, "yasb.clock.ClockWidget (clock)\n  Time\n  actions: toggle_label\n")
	})
}

func TestTextRenderer_Error(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderError(invalidConfig(t)))
	assert.Contains(t, buf.String(), "Error: 2 problems\n")
	assert.Contains(t, buf.String(), "  update_interval: ")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&ui.Label{Widget: "cpu", Label: "CPU 12%", Visible: true}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "CPU 12%", got["label"])
	assert.Equal(t, true, got["visible"])

	buf.Reset()
	require.NoError(t, r.RenderError(invalidConfig(t)))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["problems"], 2)
}

func TestTerminalRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&ui.WidgetList{Widgets: []ui.WidgetInfo{
		{Type: "yasb.cpu.CpuWidget", Alias: "cpu", Description: "CPU usage"},
	}}))
	assert.Contains(t, buf.String(), "yasb.cpu.CpuWidget")
	assert.Contains(t, buf.String(), "CPU usage")

	buf.Reset()
	require.NoError(t, r.RenderResult(&ui.Report{Path: "bar.yaml", Valid: true}))
	assert.Contains(t, buf.String(), "bar.yaml")
}
