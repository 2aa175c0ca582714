package cli

import (
	"context"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/barkeep/pkg/config"
	"github.com/arthur-debert/barkeep/pkg/datasource"
	"github.com/arthur-debert/barkeep/pkg/errors"
	"github.com/arthur-debert/barkeep/pkg/format"
	"github.com/arthur-debert/barkeep/pkg/schema"
	"github.com/arthur-debert/barkeep/pkg/ui"
	"github.com/arthur-debert/barkeep/pkg/widget"
	"github.com/arthur-debert/barkeep/pkg/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBars_ReloadTurnsWatchingOff(t *testing.T) {
	path := writeFile(t, "config.yaml", testConfig)
	load := func(watch bool) *config.Config {
		cfg, err := config.Load(path, schema.Strict)
		require.NoError(t, err)
		cfg.WatchConfig = watch
		return cfg
	}

	r, err := ui.NewRenderer(ui.FormatText, io.Discard)
	require.NoError(t, err)

	var stops atomic.Int32
	reloads := make(chan *config.Config, 1)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runBars(ctx, load(true), r, reloads, func() { stops.Add(1) })
	}()

	reloads <- load(true)
	reloads <- load(false)
	assert.Eventually(t, func() bool { return stops.Load() == 1 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bars did not stop")
	}
	assert.Equal(t, int32(1), stops.Load(), "a watching reload keeps the watcher")
}

func TestServeMetrics_StopsWithContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- serveMetrics(ctx, addr) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics server did not stop")
	}
}

func TestRefresh_FailingSourceKeepsLabel(t *testing.T) {
	resolved, err := widgets.Resolve("battery", map[string]any{"label": "{percent}%"}, schema.Strict)
	require.NoError(t, err)

	calls := 0
	src := datasource.Func(func(context.Context) (format.Context, error) {
		calls++
		if calls > 1 {
			return nil, errors.New(errors.ErrSourceFetch, "sensor gone")
		}
		return format.Context{"percent": 50}, nil
	})
	inst, err := widget.New("battery", resolved, src)
	require.NoError(t, err)

	refresh(t.Context(), inst)
	refresh(t.Context(), inst)
	assert.Equal(t, "50%", inst.Render())
}
