package widget

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/metrics"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstance(t *testing.T, widgetType string, overrides map[string]any, src datasource.Source) *Instance {
	t.Helper()
	resolved, err := widgets.Resolve(widgetType, overrides, schema.Strict)
	require.NoError(t, err)
	inst, err := New("test", resolved, src)
	require.NoError(t, err)
	return inst
}

func window(title, class, process string) format.Context {
	return format.Context{"win": map[string]any{
		"title":      title,
		"class_name": class,
		"hwnd":       1,
		"process":    map[string]any{"name": process, "pid": 2},
	}}
}

func TestNew(t *testing.T) {
	inst := newInstance(t, "battery", nil, nil)

	assert.NotEmpty(t, inst.ID())
	assert.Equal(t, "test", inst.Name())
	assert.Equal(t, widgets.BatteryWidgetType, inst.Definition().Type)
	assert.Equal(t, "{icon}", inst.Values()["label"])

	interval, ok := inst.Interval()
	assert.True(t, ok)
	assert.Equal(t, 5*time.Second, interval)

	other := newInstance(t, "battery", nil, nil)
	assert.NotEqual(t, inst.ID(), other.ID())
}

func TestNew_InvalidTemplate(t *testing.T) {
	resolved, err := widgets.Resolve("battery", map[string]any{"label": "{unclosed"}, schema.Strict)
	require.NoError(t, err)

	_, err = New("bat", resolved, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateParse))

	_, err = New("bat", nil, nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestUpdate_RendersSampleData(t *testing.T) {
	inst := newInstance(t, "battery", map[string]any{"label": "{percent}%"}, nil)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "87%", label)
	assert.Equal(t, "87%", inst.Render())
}

func TestUpdate_DerivedPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		widget string
		label  string
		data   format.Context
		want   string
	}{
		{"battery status icon", "battery", "{status} {icon}", format.Context{"percent": 20}, "low \uf243"},
		{"battery charging", "battery", "{status} {icon}", format.Context{"percent": 99, "is_charging": true}, "charging \uf0e7 \uf240"},
		{"volume level", "volume", "{icon} {level}", format.Context{"volume": map[string]any{"percent": 30}}, "\uf027 30%"},
		{"volume muted", "volume", "{icon} {level}", format.Context{"volume": map[string]any{"percent": 30, "muted": true}}, "\ueee8 mute"},
		{"wifi strength", "wifi", "{wifi_icon}", format.Context{"wifi_strength": 79}, "\U000f0925"},
		{"cpu status", "cpu", "{status}", format.Context{"info": map[string]any{"percent": map[string]any{"total": 95.0}}}, "critical"},
		{"disk status", "disk", "{status}", format.Context{"space": map[string]any{"used": map[string]any{"percent": "61.3%"}}}, "high"},
		{"source value wins", "battery", "{icon}", format.Context{"percent": 20, "icon": "B"}, "B"},
		{"nothing to derive from", "battery", "{icon}", format.Context{}, "{icon}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := newInstance(t, tt.widget, map[string]any{"label": tt.label}, datasource.NewStatic(tt.data))
			label, err := inst.Update(t.Context())
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestRender_StackLabelLimits(t *testing.T) {
	inst := newInstance(t, "komorebi_stack", map[string]any{
		"label_window_active": "[{title}]",
		"label_window":        "{title}",
		"max_length_active":   9,
		"max_length":          3,
	}, datasource.NewStatic(format.Context{"title": "Visual Studio Code"}))

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "[Visual S...", label)

	require.NoError(t, inst.Dispatch(t.Context(), "toggle_label"))
	assert.Equal(t, "Vis...", inst.Render())
}

func TestToggleLabel(t *testing.T) {
	inst := newInstance(t, "battery", nil, nil)
	_, err := inst.Update(t.Context())
	require.NoError(t, err)

	require.NoError(t, inst.Click(t.Context(), Left))
	assert.True(t, inst.ShowingAlt())
	assert.Equal(t, "87% | remaining: 2:10", inst.Render())

	require.NoError(t, inst.Dispatch(t.Context(), "toggle_label"))
	assert.False(t, inst.ShowingAlt())
	assert.Equal(t, "\uf241", inst.Render())
}

func TestDispatch(t *testing.T) {
	inst := newInstance(t, "battery", nil, nil)

	t.Run("empty line is a no-op", func(t *testing.T) {
		assert.NoError(t, inst.Dispatch(t.Context(), ""))
		assert.NoError(t, inst.Dispatch(t.Context(), "   "))
	})

	t.Run("do nothing", func(t *testing.T) {
		assert.NoError(t, inst.Click(t.Context(), Middle))
		assert.False(t, inst.ShowingAlt())
	})

	t.Run("unknown action", func(t *testing.T) {
		unknown := metrics.Dispatches.WithLabelValues(metrics.UnknownAction, "unknown")
		before := testutil.ToFloat64(unknown)

		err := inst.Dispatch(t.Context(), "explode now")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrCallbackUnknown))
		assert.Equal(t, "explode", errors.GetErrorDetails(err)["action"])
		assert.False(t, inst.ShowingAlt())

		assert.Equal(t, before+1, testutil.ToFloat64(unknown))
		assert.False(t, metrics.Dispatches.DeleteLabelValues("explode", "unknown"),
			"configured action names must not become metric labels")
	})

	t.Run("custom action", func(t *testing.T) {
		var got []string
		require.NoError(t, inst.RegisterAction("notify", func(_ context.Context, args []string) error {
			got = args
			return nil
		}))

		require.NoError(t, inst.Dispatch(t.Context(), `notify "low battery" now`))
		assert.Equal(t, []string{"low battery", "now"}, got)
		assert.Contains(t, inst.Actions(), "notify")
	})

	t.Run("failing action", func(t *testing.T) {
		require.NoError(t, inst.RegisterAction("fail", func(context.Context, []string) error {
			return errors.New(errors.ErrInternal, "boom")
		}))

		err := inst.Dispatch(t.Context(), "fail")
		assert.True(t, errors.IsErrorCode(err, errors.ErrCallbackExecute))
	})

	t.Run("exec without program", func(t *testing.T) {
		err := inst.Dispatch(t.Context(), "exec")
		assert.True(t, errors.IsErrorCode(err, errors.ErrCallbackExecute))
	})
}

func TestExec(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "clicked")
	inst := newInstance(t, "battery", map[string]any{
		"callbacks": map[string]any{"on_right": "exec touch " + marker},
	}, nil)

	require.NoError(t, inst.Click(t.Context(), Right))
	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)

	err := inst.Dispatch(t.Context(), "exec barkeep-no-such-program")
	assert.True(t, errors.IsErrorCode(err, errors.ErrCallbackExecute))
}

func TestBuiltinActions(t *testing.T) {
	inst := newInstance(t, "clock", nil, nil)

	assert.Subset(t, inst.Actions(), []string{
		schema.ActionDefault,
		schema.ActionDoNothing,
		schema.ActionToggleLabel,
		schema.ActionUpdateLabel,
		schema.ActionExec,
		widgets.ActionNextTimezone,
		widgets.ActionToggleCalendar,
	})

	assert.False(t, inst.Flag(widgets.ActionToggleCalendar))
	require.NoError(t, inst.Click(t.Context(), Left))
	assert.True(t, inst.Flag(widgets.ActionToggleCalendar))
	require.NoError(t, inst.Click(t.Context(), Left))
	assert.False(t, inst.Flag(widgets.ActionToggleCalendar))
}

func TestNextTimezone(t *testing.T) {
	inst := newInstance(t, "clock", map[string]any{
		"label":     "{timezone} {%H:%M}",
		"timezones": []any{"UTC", "Asia/Tokyo"},
	}, nil)

	clock := inst.Source().(*datasource.Clock)
	clock.SetNow(func() time.Time { return time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC) })

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "UTC 14:05", label)

	require.NoError(t, inst.Click(t.Context(), Middle))
	assert.Equal(t, "Asia/Tokyo 23:05", inst.Render())
}

func TestUpdateLabel(t *testing.T) {
	src := datasource.NewStatic(format.Context{"percent": 10})
	inst := newInstance(t, "battery", map[string]any{"label": "{percent}"}, src)

	_, err := inst.Update(t.Context())
	require.NoError(t, err)

	src.Set(format.Context{"percent": 11})
	require.NoError(t, inst.Dispatch(t.Context(), "update_label"))
	assert.Equal(t, "11", inst.Render())
}

func TestFallbackLabel(t *testing.T) {
	failing := true
	src := datasource.Func(func(context.Context) (format.Context, error) {
		if failing {
			return nil, errors.New(errors.ErrSourceFetch, "offline")
		}
		return format.Context{"data": "ok"}, nil
	})

	inst := newInstance(t, "custom", map[string]any{
		"class_name":        "custom",
		"label":             "{data}",
		"label_placeholder": "Loading...",
	}, src)

	assert.Equal(t, "Loading...", inst.Render())

	label, err := inst.Update(t.Context())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceFetch))
	assert.Equal(t, "Loading...", label)

	failing = false
	label, err = inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "ok", label)
}

func TestStaleDataWithoutFallback(t *testing.T) {
	var calls int
	src := datasource.Func(func(context.Context) (format.Context, error) {
		calls++
		if calls > 1 {
			return nil, errors.New(errors.ErrSourceFetch, "gone")
		}
		return format.Context{"percent": 50}, nil
	})
	inst := newInstance(t, "battery", map[string]any{"label": "{percent}"}, src)

	_, err := inst.Update(t.Context())
	require.NoError(t, err)

	label, err := inst.Update(t.Context())
	assert.Error(t, err)
	assert.Equal(t, "50", label)
}

func TestCustomCommand(t *testing.T) {
	inst := newInstance(t, "custom", map[string]any{
		"class_name":       "custom",
		"label":            "out: {data}",
		"label_max_length": 8,
		"exec_options": map[string]any{
			"run_cmd":       "echo hello world",
			"return_format": "string",
		},
	}, nil)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "out: hel...", label)
}

func TestCustomTruncationSkipsSpans(t *testing.T) {
	src := datasource.NewStatic(format.Context{"data": "abcdefgh"})
	inst := newInstance(t, "custom", map[string]any{
		"class_name":       "custom",
		"label":            "<span>\uf0e7</span> {data}",
		"label_max_length": 3,
	}, src)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "<span>\uf0e7</span> abc...", label)

	parts := inst.Parts()
	require.Len(t, parts, 2)
}

func TestHideEmpty(t *testing.T) {
	src := datasource.NewStatic(format.Context{"data": ""})
	inst := newInstance(t, "custom", map[string]any{
		"class_name":   "custom",
		"label":        "{data}",
		"exec_options": map[string]any{"hide_empty": true},
	}, src)

	_, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.False(t, inst.Visible())

	src.Set(format.Context{"data": map[string]any{"temp": 21}})
	_, err = inst.Update(t.Context())
	require.NoError(t, err)
	assert.True(t, inst.Visible())

	battery := newInstance(t, "battery", nil, nil)
	assert.True(t, battery.Visible())
}

func TestActiveWindowRewrite(t *testing.T) {
	src := datasource.NewStatic(window("Main.go - Editor", "Chrome_WidgetWin_1", "Code.EXE"))
	inst := newInstance(t, "active_window", map[string]any{
		"label":      "{win[process][name]}: {win[title]}",
		"max_length": 7,
		"rewrite": []any{
			map[string]any{"pattern": `^(.+?)\.exe$`, "replacement": `\1`, "case": "lower"},
			map[string]any{"pattern": `^(.+) - Editor$`, "replacement": `\1`},
		},
	}, src)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "code: Main.go", label)

	src.Set(window("A much longer title", "x", "app.exe"))
	label, err = inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "app: A much ...", label)
}

func TestActiveWindowIgnored(t *testing.T) {
	src := datasource.NewStatic(window("Notepad", "Notepad", "notepad.exe"))
	inst := newInstance(t, "active_window", map[string]any{
		"ignore_window": map[string]any{
			"processes": []any{"explorer.exe"},
			"titles":    []any{"search"},
		},
	}, src)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Notepad", label)

	src.Set(window(" Search ", "Windows.UI.Core.CoreWindow", "SearchHost.exe"))
	label, err = inst.Update(t.Context())
	require.NoError(t, err)
	assert.Empty(t, label)

	src.Set(window("File Explorer", "CabinetWClass", "explorer.exe"))
	label, err = inst.Update(t.Context())
	require.NoError(t, err)
	assert.Empty(t, label)
}

func TestActiveWindowNoWindowLabel(t *testing.T) {
	src := datasource.NewStatic(window("Desktop", "Progman", "explorer.exe"))
	inst := newInstance(t, "active_window", map[string]any{
		"label_no_window": "no window",
		"ignore_window":   map[string]any{"classes": []any{"Progman"}},
	}, src)

	label, err := inst.Update(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "no window", label)
}

func TestOnChange(t *testing.T) {
	inst := newInstance(t, "battery", map[string]any{"label": "{percent}"}, nil)

	var (
		mu     sync.Mutex
		labels []string
	)
	inst.OnChange(func(name, label string) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "test", name)
		labels = append(labels, label)
	})

	_, err := inst.Update(t.Context())
	require.NoError(t, err)
	require.NoError(t, inst.Click(t.Context(), Left))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"87", "87% | remaining: 2:10"}, labels)
}

func TestParseButton(t *testing.T) {
	tests := []struct {
		in   string
		want Button
	}{
		{"left", Left},
		{"on_middle", Middle},
		{" Right ", Right},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseButton(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, got.String())
		})
	}

	_, err := ParseButton("wheel")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
