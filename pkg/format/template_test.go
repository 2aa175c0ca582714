package format

import (
	"testing"
	"time"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, format string, ctx Context) string {
	t.Helper()
	tmpl, err := Parse(format)
	require.NoError(t, err)
	return tmpl.Render(ctx)
}

func TestRender_Fields(t *testing.T) {
	win := map[string]any{
		"title":      "Notepad",
		"class_name": "Notepad",
		"hwnd":       1234,
		"process":    map[string]any{"name": "notepad.exe", "pid": 42},
	}

	tests := []struct {
		name   string
		format string
		ctx    Context
		want   string
	}{
		{"simple", "{icon}", Context{"icon": "\uf240"}, "\uf240"},
		{"nested", "{win[title]}", Context{"win": win}, "Notepad"},
		{"deep", "exe='{win[process][name]}' hwnd={win[hwnd]}", Context{"win": win}, "exe='notepad.exe' hwnd=1234"},
		{"attribute form", "{win.process.name}", Context{"win": win}, "notepad.exe"},
		{"list index", "{cores[1]}", Context{"cores": []any{"a", "b"}}, "b"},
		{"typed slice", "{temps[0]}", Context{"temps": []float64{41.5}}, "41.5"},
		{"literal braces", "{{literal}} {x}", Context{"x": 1}, "{literal} 1"},
		{"whole float", "{percent}%", Context{"percent": 50.0}, "50.0%"},
		{"nil value", "[{v}]", Context{"v": nil}, "[]"},
		{"no fields", "plain text", nil, "plain text"},
		{"mixed", "{percent}% | remaining: {time_remaining}", Context{"percent": 87, "time_remaining": "2:10"}, "87% | remaining: 2:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.format, tt.ctx))
		})
	}
}

func TestRender_UnresolvedKeptLiterally(t *testing.T) {
	ctx := Context{"win": map[string]any{"title": "x"}}

	assert.Equal(t, "{missing} x", render(t, "{missing} {win[title]}", ctx))
	assert.Equal(t, "{win[nope]}", render(t, "{win[nope]}", ctx))
	assert.Equal(t, "{win[title][0]}", render(t, "{win[title][0]}", ctx))
	assert.Equal(t, "{x:.2f}", render(t, "{x:.2f}", nil))
}

func TestRender_FormatSpecs(t *testing.T) {
	tests := []struct {
		format string
		value  any
		want   string
	}{
		{"{x:.2f}", 3.14159, "3.14"},
		{"{x:.2f}", 2, "2.00"},
		{"{x:.0f}", 2.5, "2"},
		{"{x:.1%}", 0.256, "25.6%"},
		{"{x:d}", 42, "42"},
		{"{x:05d}", 42, "00042"},
		{"{x:05d}", -42, "-0042"},
		{"{x:+d}", 7, "+7"},
		{"{x:>6}", "ab", "    ab"},
		{"{x:<6}|", "ab", "ab    |"},
		{"{x:^6}", "ab", "  ab  "},
		{"{x:*^7}", "ab", "**ab***"},
		{"{x:6}", 12, "    12"},
		{"{x:6}|", "ab", "ab    |"},
		{"{x:,}", 1234567, "1,234,567"},
		{"{x:,.2f}", 1234.5, "1,234.50"},
		{"{x:.3}", "abcdef", "abc"},
		{"{x:x}", 255, "ff"},
		{"{x:.2f}", "3.14159", "3.14"},
		{"{x:.2f}", "N/A", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.format, Context{"x": tt.value}))
		})
	}
}

func TestRender_CpuLabel(t *testing.T) {
	ctx := Context{"info": map[string]any{
		"percent": map[string]any{"total": 12.5},
		"freq":    map[string]any{"current": 3192.0},
	}}

	got := render(t, "\uf200 CPU: {info[percent][total]}% | freq: {info[freq][current]:.2f} Mhz", ctx)
	assert.Equal(t, "\uf200 CPU: 12.5% | freq: 3192.00 Mhz", got)
}

func TestRender_TimeTokens(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	ctx := Context{NowKey: at}

	assert.Equal(t, "\uf017 14:05:07", render(t, "\uf017 {%H:%M:%S}", ctx))
	assert.Equal(t, "09-03-24 14:05:07", render(t, "{%d-%m-%y %H:%M:%S}", ctx))

	tmpl, err := Parse("{%H:%M}")
	require.NoError(t, err)
	assert.Empty(t, tmpl.Fields())
	assert.NotEqual(t, "{%H:%M}", tmpl.Render(nil))
}

func TestRender_Structs(t *testing.T) {
	type process struct {
		Name string `mapstructure:"name"`
		PID  int
	}
	type window struct {
		Title     string
		ClassName string
		Process   *process
	}

	ctx := Context{"win": window{Title: "Editor", ClassName: "Chrome_WidgetWin_1", Process: &process{Name: "code.exe", PID: 7}}}

	assert.Equal(t, "Editor", render(t, "{win[title]}", ctx))
	assert.Equal(t, "Chrome_WidgetWin_1", render(t, "{win[class_name]}", ctx))
	assert.Equal(t, "code.exe 7", render(t, "{win[process][name]} {win[process][PID]}", ctx))
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"{unclosed",
		"stray }",
		"{}",
		"{a[b}",
		"{a[]}",
		"{a:.f}",
		"{a:zz}",
		"{a{b}}",
	}

	for _, format := range tests {
		t.Run(format, func(t *testing.T) {
			_, err := Parse(format)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse), "got %v", err)
		})
	}
}

func TestTemplate_Fields(t *testing.T) {
	tmpl, err := Parse("{win[title]} {win.process.name} {icon} {%H} {cores[0]:.1f}")
	require.NoError(t, err)

	assert.Equal(t, []string{"win", "icon", "cores"}, tmpl.Fields())
	assert.Equal(t, "{win[title]} {win.process.name} {icon} {%H} {cores[0]:.1f}", tmpl.Source())
}

func TestTemplate_RenderFunc(t *testing.T) {
	tmpl, err := Parse("{win[title]} ({win[process][name]}) {n}")
	require.NoError(t, err)
	ctx := Context{
		"win": map[string]any{"title": "Doc", "process": map[string]any{"name": "Code.EXE"}},
		"n":   3,
	}

	var seen []string
	got := tmpl.RenderFunc(ctx, func(path, value string) string {
		seen = append(seen, path)
		if path == "win[process][name]" {
			return "code"
		}
		return value
	})

	assert.Equal(t, "Doc (code) 3", got)
	assert.Equal(t, []string{"win[title]", "win[process][name]"}, seen)
}

func TestLookup(t *testing.T) {
	data := map[string]any{
		"a": map[any]any{"b": []any{10, 20}},
		"s": map[string]string{"k": "v"},
	}

	v, err := Lookup(data, "a[b][1]")
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = Lookup(data, "s.k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	_, err = Lookup(data, "a[c]")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))

	_, err = Lookup(data, "a[")
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))
}

func TestCache(t *testing.T) {
	c := NewCache(2)

	first, err := c.Get("{a}")
	require.NoError(t, err)
	second, err := c.Get("{a}")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = c.Get("{b}")
	require.NoError(t, err)
	_, err = c.Get("{c}")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = c.Get("{broken")
	assert.Error(t, err)
	assert.Equal(t, 2, c.Len())

	out, err := Render("{x}!", Context{"x": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)
}
