// Package daemon runs scheduled fund dataset refreshes with config hot
// reload and an admin endpoint.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/laninge/indexfonder-se/internal/avanza"
	"github.com/laninge/indexfonder-se/internal/config"
	"github.com/laninge/indexfonder-se/internal/history"
	"github.com/laninge/indexfonder-se/internal/metrics"
	"github.com/laninge/indexfonder-se/internal/morningstar"
	"github.com/laninge/indexfonder-se/internal/notify"
	"github.com/laninge/indexfonder-se/internal/updater"
)

// Status represents the current state of the daemon.
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
)

// Daemon owns the refresh schedule, admin server and config watcher.
type Daemon struct {
	mu             sync.RWMutex
	cfg            *config.Config
	configFilePath string
	status         Status
	startTime      time.Time

	registry  *prom.Registry
	recorder  *metrics.Recorder
	store     *history.Store
	publisher *notify.Publisher
	scheduler *Scheduler
	admin     *AdminServer
	watcher   *ConfigWatcher

	lastResult *updater.Result
	lastError  error
}

// New creates a daemon. configFilePath enables hot reload when non-empty.
func New(cfg *config.Config, configFilePath string) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if cfg.Daemon == nil {
		return nil, fmt.Errorf("daemon section missing from configuration")
	}

	registry := prom.NewRegistry()
	d := &Daemon{
		cfg:            cfg,
		configFilePath: configFilePath,
		status:         StatusStopped,
		registry:       registry,
		recorder:       metrics.NewRecorder(registry),
	}

	scheduler, err := NewScheduler()
	if err != nil {
		return nil, err
	}
	d.scheduler = scheduler
	d.admin = NewAdminServer(cfg.Daemon.AdminPort, registry, d)

	if configFilePath != "" {
		watcher, err := NewConfigWatcher(configFilePath, d)
		if err != nil {
			return nil, err
		}
		d.watcher = watcher
	}
	return d, nil
}

// Start brings up all components and blocks until ctx is cancelled.
func (d *Daemon) Start(ctx context.Context) error {
	d.setStatus(StatusStarting)
	d.startTime = time.Now()

	cfg := d.config()

	if cfg.Data.HistoryDB != "" {
		store, err := history.Open(cfg.Data.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		d.store = store
	}

	if cfg.Daemon.NATS != nil {
		pub, err := notify.NewPublisher(cfg.Daemon.NATS)
		if err != nil {
			// A missing broker should not keep the refresh schedule down.
			slog.Warn("NATS publisher unavailable, events disabled", "error", err)
		} else {
			d.publisher = pub
		}
	}

	if err := d.scheduler.ScheduleRefresh(cfg.Daemon.Schedule, func() { d.runOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	d.scheduler.Start(ctx)

	if err := d.admin.Start(ctx); err != nil {
		return fmt.Errorf("start admin server: %w", err)
	}

	if d.watcher != nil {
		if err := d.watcher.Start(ctx); err != nil {
			return fmt.Errorf("start config watcher: %w", err)
		}
	}

	d.setStatus(StatusRunning)
	slog.Info("Daemon running",
		"schedule", cfg.Daemon.Schedule,
		"admin_port", cfg.Daemon.AdminPort,
		"output", cfg.Data.Output)

	<-ctx.Done()
	return nil
}

// Stop shuts everything down within the context deadline.
func (d *Daemon) Stop(ctx context.Context) error {
	d.setStatus(StatusStopping)

	var firstErr error
	if d.watcher != nil {
		if err := d.watcher.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := d.scheduler.Stop(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := d.admin.Stop(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if d.publisher != nil {
		d.publisher.Close()
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	d.setStatus(StatusStopped)
	return firstErr
}

// runOnce executes a single refresh with the current configuration.
func (d *Daemon) runOnce(ctx context.Context) {
	cfg := d.config()

	timeout, err := time.ParseDuration(cfg.Data.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout = 20 * time.Second
	}

	u := updater.New(cfg,
		updater.WithMorningstar(morningstar.NewClient(timeout)),
		updater.WithAvanza(avanza.NewClient(timeout)),
		updater.WithHistory(d.store),
		updater.WithRecorder(d.recorder),
	)

	result, err := u.Run(ctx)

	d.mu.Lock()
	d.lastResult = result
	d.lastError = err
	d.mu.Unlock()

	if err != nil {
		slog.Error("Scheduled update failed", "error", err)
		return
	}

	if d.publisher != nil {
		event := &notify.DatasetUpdatedEvent{
			RunID:       result.RunID,
			Source:      result.Source,
			GlobalFunds: result.GlobalFunds,
			SwedenFunds: result.SwedenFunds,
			Output:      result.Output,
		}
		if err := d.publisher.PublishDatasetUpdated(event); err != nil {
			slog.Warn("Failed to publish dataset event", "error", err)
		}
	}
}

// Reload validates and swaps in a new configuration. An invalid replacement
// keeps the last good config. The refresh schedule is updated when changed.
func (d *Daemon) Reload(newCfg *config.Config) error {
	if newCfg == nil || newCfg.Daemon == nil {
		return fmt.Errorf("reloaded configuration missing daemon section")
	}

	d.mu.Lock()
	oldSchedule := d.cfg.Daemon.Schedule
	d.cfg = newCfg
	d.mu.Unlock()

	if newCfg.Daemon.Schedule != oldSchedule {
		if err := d.scheduler.Reschedule(newCfg.Daemon.Schedule); err != nil {
			return fmt.Errorf("reschedule refresh: %w", err)
		}
		slog.Info("Refresh schedule updated", "schedule", newCfg.Daemon.Schedule)
	}
	slog.Info("Configuration reloaded", "site", newCfg.Site)
	return nil
}

// ConfigPath returns the watched configuration file path.
func (d *Daemon) ConfigPath() string { return d.configFilePath }

func (d *Daemon) config() *config.Config {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cfg
}

func (d *Daemon) setStatus(s Status) {
	d.mu.Lock()
	d.status = s
	d.mu.Unlock()
}

// Snapshot returns current daemon state for the admin endpoint.
func (d *Daemon) Snapshot() (Status, time.Time, *updater.Result, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status, d.startTime, d.lastResult, d.lastError
}
