package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AdminServer serves /health and /metrics for the daemon.
type AdminServer struct {
	server   *http.Server
	registry *prom.Registry
	daemon   *Daemon
}

// NewAdminServer wires up the admin mux on the given port.
func NewAdminServer(port int, registry *prom.Registry, d *Daemon) *AdminServer {
	registry.MustRegister(
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)

	a := &AdminServer{registry: registry, daemon: d}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return a
}

// Start begins serving in the background.
func (a *AdminServer) Start(ctx context.Context) error {
	go func() {
		slog.Info("Admin server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Admin server failed", "error", err)
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (a *AdminServer) Stop(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

type healthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	LastRunID   string `json:"last_run_id,omitempty"`
	LastSource  string `json:"last_source,omitempty"`
	GlobalFunds int    `json:"global_funds,omitempty"`
	SwedenFunds int    `json:"sweden_funds,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

func (a *AdminServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	status, startTime, lastResult, lastErr := a.daemon.Snapshot()

	resp := healthResponse{
		Status: string(status),
		Uptime: time.Since(startTime).Round(time.Second).String(),
	}
	if lastResult != nil {
		resp.LastRunID = lastResult.RunID
		resp.LastSource = lastResult.Source
		resp.GlobalFunds = lastResult.GlobalFunds
		resp.SwedenFunds = lastResult.SwedenFunds
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}

	code := http.StatusOK
	if status != StatusRunning {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
