package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	Renders.WithLabelValues("test.Widget").Inc()
	Dispatches.WithLabelValues("toggle_label", "ok").Inc()
	ActiveWidgets.Set(3)

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `barkeep_renders_total{type="test.Widget"}`)
	assert.Contains(t, string(body), `barkeep_callback_dispatches_total{action="toggle_label",result="ok"}`)
	assert.Contains(t, string(body), "barkeep_widgets_active 3")
}
