package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/laninge/indexfonder-se/internal/config"
)

func daemonConfig() *config.Config {
	cfg := &config.Config{
		Site:         "https://indexfonder.se",
		CompressHTML: true,
		Build:        config.BuildConfig{InlineStylesheets: config.InlineAuto},
		Daemon:       &config.DaemonConfig{},
	}
	config.ApplyDefaults(cfg)
	return cfg
}

func TestNew_RequiresDaemonSection(t *testing.T) {
	_, err := New(&config.Config{Site: "https://indexfonder.se"}, "")
	require.Error(t, err)

	_, err = New(nil, "")
	require.Error(t, err)
}

func TestNew_StartsStopped(t *testing.T) {
	d, err := New(daemonConfig(), "")
	require.NoError(t, err)

	status, _, lastResult, lastErr := d.Snapshot()
	require.Equal(t, StatusStopped, status)
	require.Nil(t, lastResult)
	require.NoError(t, lastErr)
}

func TestHealthEndpoint_NotRunningReturns503(t *testing.T) {
	d, err := New(daemonConfig(), "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	d.admin.handleHealth(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, string(StatusStopped), resp.Status)
}

func TestReload_RejectsMissingDaemonSection(t *testing.T) {
	d, err := New(daemonConfig(), "")
	require.NoError(t, err)

	require.Error(t, d.Reload(nil))
	require.Error(t, d.Reload(&config.Config{Site: "https://indexfonder.se"}))
}

func TestReload_SwapsConfig(t *testing.T) {
	d, err := New(daemonConfig(), "")
	require.NoError(t, err)

	newCfg := daemonConfig()
	newCfg.Site = "https://staging.indexfonder.se"
	require.NoError(t, d.Reload(newCfg))
	require.Equal(t, "https://staging.indexfonder.se", d.config().Site)
}

func TestScheduler_ScheduleAndReschedule(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop(context.Background()) }()

	require.Error(t, s.Reschedule("0 6 1 * *"), "reschedule before schedule should fail")

	require.NoError(t, s.ScheduleRefresh("0 6 1 * *", func() {}))
	first := s.jobID
	require.NotEmpty(t, first)

	require.NoError(t, s.Reschedule("30 7 2 * *"))
	require.NotEqual(t, first, s.jobID)
}

func TestScheduler_InvalidCronExpression_Fails(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	defer func() { _ = s.Stop(context.Background()) }()

	require.Error(t, s.ScheduleRefresh("not a cron", func() {}))
}
