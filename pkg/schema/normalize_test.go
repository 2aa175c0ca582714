package schema

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	s := Base("{icon}", "{percent}%").
		Add("update_interval", Integer(5000).Range(0, 60000)).
		Add("ratio", Float(0.5).Range(0, 1)).
		Add("mode", String("auto").Enum("auto", "manual")).
		Add("max_length", NullableInteger().AtLeast(1)).
		Add("rewrite", RewriteOption()).
		Add("icons", StringList("a", "b", "c").Length(3, 3)).
		Add("width", OneOf("100%", String("").Match(`\d+%|auto`), Integer(0).AtLeast(0)))
	return Decorated(s, ActionToggleLabel, ActionDoNothing, ActionDoNothing)
}

func validationErrors(t *testing.T, err error) *ValidationErrors {
	t.Helper()
	var verrs *ValidationErrors
	require.True(t, stderrors.As(err, &verrs), "expected *ValidationErrors, got %T", err)
	return verrs
}

func TestNormalize_EmptyEqualsDefaults(t *testing.T) {
	s := testSchema()

	got, err := s.Normalize(nil, Strict)
	require.NoError(t, err)
	assert.Equal(t, s.Defaults(), got)

	got, err = s.Normalize(map[string]any{}, Strict)
	require.NoError(t, err)
	assert.Equal(t, s.Defaults(), got)
}

func TestNormalize_NestedMergeKeepsSiblings(t *testing.T) {
	s := testSchema()

	got, err := s.Normalize(map[string]any{
		"animation": map[string]any{"duration": 500},
	}, Strict)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"enabled":  true,
		"type":     "fadeInOut",
		"duration": 500,
	}, got["animation"])
	assert.Equal(t, "do_nothing", got["callbacks"].(map[string]any)["on_middle"])
}

func TestNormalize_DefaultsNotMutated(t *testing.T) {
	s := testSchema()
	before := s.Defaults()

	got, err := s.Normalize(map[string]any{
		"animation": map[string]any{"duration": 500},
		"label":     "changed",
	}, Strict)
	require.NoError(t, err)

	got["animation"].(map[string]any)["enabled"] = false
	assert.Equal(t, before, s.Defaults())
}

func TestNormalize_ScalarsAndListsReplace(t *testing.T) {
	s := testSchema()

	got, err := s.Normalize(map[string]any{
		"label": "{percent}",
		"label_shadow": map[string]any{
			"offset": []any{2},
		},
	}, Strict)
	require.NoError(t, err)

	assert.Equal(t, "{percent}", got["label"])
	assert.Equal(t, []any{2}, got["label_shadow"].(map[string]any)["offset"])
}

func TestNormalize_Coercion(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name  string
		key   string
		input any
		want  any
	}{
		{"integral float to integer", "update_interval", 1000.0, 1000},
		{"int64 to integer", "update_interval", int64(250), 250},
		{"integer to float", "ratio", 1, 1.0},
		{"null on nullable", "max_length", nil, nil},
		{"pattern alternative", "width", "auto", "auto"},
		{"integer alternative", "width", 800, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Normalize(map[string]any{tt.key: tt.input}, Strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got[tt.key])
		})
	}
}

func TestNormalize_Violations(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name  string
		input map[string]any
		path  string
		code  errors.ErrorCode
	}{
		{"out of range", map[string]any{"update_interval": 70000}, "update_interval", errors.ErrOptionRange},
		{"wrong type", map[string]any{"label": 3}, "label", errors.ErrOptionType},
		{"fractional integer", map[string]any{"update_interval": 1.5}, "update_interval", errors.ErrOptionType},
		{"not allowed", map[string]any{"mode": "turbo"}, "mode", errors.ErrOptionAllowed},
		{"null on non-nullable", map[string]any{"label": nil}, "label", errors.ErrOptionType},
		{"below minimum", map[string]any{"max_length": 0}, "max_length", errors.ErrOptionRange},
		{"list length", map[string]any{"icons": []any{"a"}}, "icons", errors.ErrOptionRange},
		{"no alternative", map[string]any{"width": "wide"}, "width", errors.ErrOptionType},
		{"nested", map[string]any{"animation": map[string]any{"enabled": "yes"}}, "animation.enabled", errors.ErrOptionType},
		{
			"list item",
			map[string]any{"rewrite": []any{
				map[string]any{"pattern": "a", "replacement": "b"},
				map[string]any{"pattern": "a", "replacement": "b", "case": "shout"},
			}},
			"rewrite[1].case",
			errors.ErrOptionAllowed,
		},
		{
			"missing required",
			map[string]any{"rewrite": []any{map[string]any{"pattern": "a"}}},
			"rewrite[0].replacement",
			errors.ErrOptionRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Normalize(tt.input, Strict)
			require.Error(t, err)
			assert.Nil(t, got)

			verrs := validationErrors(t, err)
			found := verrs.ForPath(tt.path)
			require.Len(t, found, 1, "errors: %v", verrs)
			assert.Equal(t, tt.code, found[0].Code)
		})
	}
}

func TestNormalize_CollectsAllErrors(t *testing.T) {
	s := testSchema()

	_, err := s.Normalize(map[string]any{
		"update_interval": 70000,
		"label":           false,
		"colour":          "red",
	}, Strict)

	verrs := validationErrors(t, err)
	assert.Equal(t, 3, verrs.Len())
	assert.True(t, verrs.HasCode(errors.ErrOptionUnknown))
	assert.Contains(t, err.Error(), "3 validation errors")
}

func TestNormalize_UnknownKeys(t *testing.T) {
	s := testSchema()
	input := map[string]any{"updat_interval": 1000}

	t.Run("rejected with suggestion", func(t *testing.T) {
		_, err := s.Normalize(input, Strict)
		verrs := validationErrors(t, err)
		require.Equal(t, 1, verrs.Len())
		assert.Equal(t, errors.ErrOptionUnknown, verrs.Errors[0].Code)
		assert.Equal(t, "update_interval", verrs.Errors[0].Suggestion)
		assert.Contains(t, err.Error(), `did you mean "update_interval"`)
	})

	t.Run("ignored under lenient policy", func(t *testing.T) {
		got, err := s.Normalize(input, Policy{UnknownKeys: IgnoreUnknown})
		require.NoError(t, err)
		assert.NotContains(t, got, "updat_interval")
		assert.Equal(t, 5000, got["update_interval"])
	})

	t.Run("nested unknown key", func(t *testing.T) {
		_, err := s.Normalize(map[string]any{
			"animation": map[string]any{"durration": 10},
		}, Strict)
		verrs := validationErrors(t, err)
		require.Len(t, verrs.ForPath("animation.durration"), 1)
		assert.Equal(t, "duration", verrs.Errors[0].Suggestion)
	})
}

func TestNormalize_InvalidPolicies(t *testing.T) {
	s := testSchema()

	t.Run("use default", func(t *testing.T) {
		got, err := s.Normalize(map[string]any{
			"update_interval": 70000,
			"mode":            "turbo",
		}, Policy{Invalid: UseDefault})
		require.NoError(t, err)
		assert.Equal(t, 5000, got["update_interval"])
		assert.Equal(t, "auto", got["mode"])
	})

	t.Run("clamp", func(t *testing.T) {
		got, err := s.Normalize(map[string]any{
			"update_interval": 70000,
			"ratio":           -2.0,
			"mode":            "turbo",
		}, Policy{Invalid: Clamp})
		require.NoError(t, err)
		assert.Equal(t, 60000, got["update_interval"])
		assert.Equal(t, 0.0, got["ratio"])
		assert.Equal(t, "auto", got["mode"])
	})
}

func TestNormalize_RewriteItemsGetDefaults(t *testing.T) {
	s := testSchema()

	got, err := s.Normalize(map[string]any{
		"rewrite": []any{
			map[string]any{"pattern": `^(.+?)\.exe$`, "replacement": `\1`, "case": "lower"},
			map[string]any{"pattern": "x", "replacement": "y"},
		},
	}, Strict)
	require.NoError(t, err)

	rules := got["rewrite"].([]any)
	require.Len(t, rules, 2)
	assert.Equal(t, "lower", rules[0].(map[string]any)["case"])
	assert.Nil(t, rules[1].(map[string]any)["case"])
}

func TestNormalize_NullDictUsesDefaults(t *testing.T) {
	s := testSchema()

	got, err := s.Normalize(map[string]any{"animation": nil}, Strict)
	require.NoError(t, err)
	assert.Equal(t, AnimationOption().DefaultValue(), got["animation"])
}

func TestNormalize_FreeDictMerges(t *testing.T) {
	s := New().Add("icons", FreeDict(map[string]any{"a": "1", "b": "2"}))

	got, err := s.Normalize(map[string]any{
		"icons": map[any]any{"b": "x", "c": "3"},
	}, Strict)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "1", "b": "x", "c": "3"}, got["icons"])
}
