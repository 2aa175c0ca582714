package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_KeysKeepOrder(t *testing.T) {
	s := New().
		Add("b", String("")).
		Add("a", String("")).
		Add("c", String(""))

	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	s.Add("a", Integer(1))
	assert.Equal(t, []string{"b", "a", "c"}, s.Keys())

	opt, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, TypeInteger, opt.Type)

	s.Remove("a")
	assert.Equal(t, []string{"b", "c"}, s.Keys())
	assert.Equal(t, 2, s.Len())
}

func TestSchema_Lookup(t *testing.T) {
	s := Decorated(Base("", ""), ActionToggleLabel, ActionDoNothing, ActionDoNothing)

	opt, ok := s.Lookup("animation", "duration")
	require.True(t, ok)
	assert.Equal(t, 200, opt.Default)

	_, ok = s.Lookup("animation", "missing")
	assert.False(t, ok)

	_, ok = s.Lookup("label", "nested")
	assert.False(t, ok)
}

func TestSchema_DefaultsAreDeepCopies(t *testing.T) {
	s := New().
		Add("offset", List([]any{1, 1}, nil)).
		Add("shadow", ShadowOption())

	first := s.Defaults()
	first["offset"].([]any)[0] = 99
	first["shadow"].(map[string]any)["color"] = "red"

	second := s.Defaults()
	assert.Equal(t, []any{1, 1}, second["offset"])
	assert.Equal(t, "black", second["shadow"].(map[string]any)["color"])
}

func TestSchema_Extend(t *testing.T) {
	base := New().Add("a", String("a")).Add("b", String("b"))
	ext := New().Add("b", String("B")).Add("c", String("c"))

	merged := base.Extend(ext)
	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	assert.Equal(t, map[string]any{"a": "a", "b": "B", "c": "c"}, merged.Defaults())

	// the receiver is untouched
	assert.Equal(t, []string{"a", "b"}, base.Keys())
}

func TestCommonBlocks(t *testing.T) {
	s := Decorated(Base("{icon}", "{alt}"), ActionToggleLabel, ActionDoNothing, "exec notepad")
	defs := s.Defaults()

	assert.Equal(t, "{icon}", defs["label"])
	assert.Equal(t, "", defs["class_name"])
	assert.Equal(t, map[string]any{"enabled": true, "type": "fadeInOut", "duration": 200}, defs["animation"])
	assert.Equal(t, map[string]any{"enabled": false, "color": "black", "offset": []any{1, 1}, "radius": 3}, defs["label_shadow"])
	assert.Equal(t, map[string]any{"top": 0, "left": 0, "bottom": 0, "right": 0}, defs["container_padding"])
	assert.Equal(t, map[string]any{
		"on_left":   "toggle_label",
		"on_middle": "do_nothing",
		"on_right":  "exec notepad",
	}, defs["callbacks"])
	assert.Equal(t, []any{}, New().Add("rewrite", RewriteOption()).Defaults()["rewrite"])
}

func TestOption_TypeName(t *testing.T) {
	assert.Equal(t, "list[string]", StringList().TypeName())
	assert.Equal(t, "string | integer", OneOf("", String(""), Integer(0)).TypeName())
	assert.Equal(t, "dict", PaddingOption().TypeName())
}

func TestMarkdown(t *testing.T) {
	s := New().
		Add("label", String("{a|b}").Describe("Label")).
		Add("update_interval", Integer(1000).Range(0, 60000)).
		Add("animation", AnimationOption()).
		Add("rewrite", RewriteOption())

	md := s.Markdown("Test Widget")

	assert.Contains(t, md, "# Test Widget")
	assert.Contains(t, md, "| `label` | string | `\"{a\\|b}\"` |  | Label |")
	assert.Contains(t, md, "| `update_interval` | integer | `1000` | 0..60000 |")
	assert.Contains(t, md, "| `animation.duration` | integer | `200` | >= 0 |")
	assert.Contains(t, md, "| `rewrite[].case` | string | `null` | nullable; one of lower, upper, title, capitalize |")
}

func TestSuggest(t *testing.T) {
	known := []string{"label", "label_alt", "update_interval", "callbacks"}

	tests := []struct {
		unknown string
		want    string
	}{
		{"updat_interval", "update_interval"},
		{"update_intervall", "update_interval"},
		{"callback", "callbacks"},
		{"zzz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.unknown, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.unknown, known))
		})
	}
}
