package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/paths"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
watch_config: false
bars:
  main:
    widgets:
      left: [battery]
      right: [memory]
widgets:
  battery:
    type: battery
    options:
      label: "{percent}%"
      label_alt: "{percent}% | remaining: {time_remaining}"
  memory:
    type: yasb.memory.MemoryWidget
    options:
      label: "{virtual_mem_total}"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(paths.EnvStateDir, t.TempDir())
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--output", "text"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "barkeep version dev")
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, "config.yaml", testConfig)
		out, err := execute(t, "validate", path)
		require.NoError(t, err)
		assert.Contains(t, out, path+" is valid")
		assert.Contains(t, out, "bars: main  widgets: 2")
	})

	t.Run("problems are reported", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
widgets:
  battery:
    type: battery
    options:
      update_intervall: 1000
`)
		out, err := execute(t, "validate", path)
		require.ErrorIs(t, err, ErrReported)
		assert.Contains(t, out, "has 1 problem")
		assert.Contains(t, out, `widgets.battery.options.update_intervall`)
		assert.Contains(t, out, `did you mean "update_interval"`)
	})

	t.Run("lenient accepts unknown options", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
widgets:
  battery:
    type: battery
    options:
      update_intervall: 1000
`)
		_, err := execute(t, "--lenient", "--config", path, "validate")
		require.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestWidgetsCmd(t *testing.T) {
	out, err := execute(t, "widgets")
	require.NoError(t, err)
	assert.Contains(t, out, "yasb.clock.ClockWidget (clock)")
	assert.Contains(t, out, "yasb.battery.BatteryWidget (battery)")
}

func TestDefaultsCmd(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "defaults", "battery", "--format", "json")
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &entry))
		assert.Equal(t, widgets.BatteryWidgetType, entry["type"])
		assert.Equal(t, 5000.0, entry["options"].(map[string]any)["update_interval"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, "defaults", "battery")
		require.NoError(t, err)
		assert.Contains(t, out, "type: yasb.battery.BatteryWidget")
		assert.Contains(t, out, "update_interval: 5000")
	})

	t.Run("toml", func(t *testing.T) {
		out, err := execute(t, "defaults", "clock", "--format", "toml")
		require.NoError(t, err)
		assert.Contains(t, out, "yasb.clock.ClockWidget")
		assert.Contains(t, out, "[options]")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "defaults", "battery", "--format", "ini")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := execute(t, "defaults", "batery")
		assert.True(t, errors.IsErrorCode(err, errors.ErrWidgetType))
	})
}

func TestDocsCmd(t *testing.T) {
	out, err := execute(t, "docs", "battery")
	require.NoError(t, err)
	assert.Contains(t, out, "# yasb.battery.BatteryWidget")
	assert.Contains(t, out, "`update_interval`")
	assert.Contains(t, out, "`{percent}`")
	assert.Contains(t, out, "`{status}`")

	out, err = execute(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "# Configuration file")
	assert.Contains(t, out, "`dimensions.width`")
}

func TestRenderCmd(t *testing.T) {
	path := writeFile(t, "config.yaml", testConfig)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"primary label", []string{"battery"}, "battery: 87%\n"},
		{"alternate label", []string{"battery", "--alt"}, "battery: 87% | remaining: 2:10\n"},
		{"every widget", nil, "battery: 87%\nmemory: 15.93GB\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--config", path, "render"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("data file", func(t *testing.T) {
		data := writeFile(t, "data.yaml", "percent: 12\ntime_remaining: \"0:30\"\n")
		out, err := execute(t, "--config", path, "render", "battery", "--data", data)
		require.NoError(t, err)
		assert.Equal(t, "battery: 12%\n", out)
	})

	t.Run("undefined widget", func(t *testing.T) {
		_, err := execute(t, "--config", path, "render", "batery")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrWidgetNotFound))
		assert.Equal(t, "battery", errors.GetErrorDetails(err)["suggestion"])
	})
}

func TestClickCmd(t *testing.T) {
	path := writeFile(t, "config.yaml", testConfig)

	out, err := execute(t, "--config", path, "click", "battery", "left")
	require.NoError(t, err)
	assert.Equal(t, "battery: 87% | remaining: 2:10\n", out)

	out, err = execute(t, "--config", path, "click", "battery", "middle")
	require.NoError(t, err)
	assert.Equal(t, "battery: 87%\n", out)

	_, err = execute(t, "--config", path, "click", "battery", "sideways")
	assert.Error(t, err)
}

func TestRunCmd_Once(t *testing.T) {
	path := writeFile(t, "config.yaml", testConfig)

	out, err := execute(t, "--config", path, "run", "--once")
	require.NoError(t, err)
	assert.Equal(t, "main/battery: 87%\nmain/memory: 15.93GB\n", out)
}

func TestInitCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "conf")

	out, err := execute(t, "init", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, "styles.css"))

	_, err = execute(t, "init", "--dir", dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = execute(t, "init", "--dir", dir, "--force")
	assert.NoError(t, err)
}

func TestCompletionCmd(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "barkeep")
}

func TestHelp_ListsGroups(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Configuration:")
	assert.Contains(t, out, "validate")
	assert.Contains(t, out, "Widgets:")
	assert.Contains(t, out, "render")
}
