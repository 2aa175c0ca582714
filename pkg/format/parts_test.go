package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParts(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Part
	}{
		{
			name:    "plain text",
			content: "  87%  ",
			want:    []Part{{Class: ClassLabel, Text: "87%"}},
		},
		{
			name:    "icon span then text",
			content: "<span class=\"icon-battery\">\uf240</span> 87%",
			want: []Part{
				{Class: "icon-battery", Text: "\uf240", Span: true},
				{Class: ClassLabel, Text: "87%"},
			},
		},
		{
			name:    "span without class",
			content: "a <span>b</span> c",
			want: []Part{
				{Class: ClassLabel, Text: "a"},
				{Class: ClassIcon, Text: "b", Span: true},
				{Class: ClassLabel, Text: "c"},
			},
		},
		{
			name:    "single quoted class",
			content: "<span class='cpu'>x</span>",
			want:    []Part{{Class: "cpu", Text: "x", Span: true}},
		},
		{
			name:    "unescaped ampersand",
			content: `<span class="title">Tom & Jerry</span>`,
			want:    []Part{{Class: "title", Text: "Tom & Jerry", Span: true}},
		},
		{
			name:    "empty span dropped",
			content: "<span class=\"icon\"> </span>text",
			want:    []Part{{Class: ClassLabel, Text: "text"}},
		},
		{
			name:    "empty content",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParts(tt.content))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		max      int
		ellipsis string
		want     string
	}{
		{"Visual Studio Code", 6, "...", "Visual..."},
		{"short", 10, "...", "short"},
		{"exact", 5, "...", "exact"},
		{"ünïcödé", 3, "…", "ünï…"},
		{"no limit", 0, "...", "no limit"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.max, tt.ellipsis))
		})
	}
}

func TestMapText(t *testing.T) {
	upper := func(s string) string { return "[" + s + "]" }

	assert.Equal(t, "  [a b]  ", MapText("  a b  ", upper))
	assert.Equal(t, `<span class="icon">x</span> [87%]`, MapText(`<span class="icon">x</span> 87%`, upper))
	assert.Equal(t, "[a] <span>b</span> [c]", MapText("a <span>b</span> c", upper))
	assert.Equal(t, "", MapText("", upper))
	assert.Equal(t, "Visual...", MapText("Visual Studio Code", func(s string) string { return Truncate(s, 6, "...") }))
}
