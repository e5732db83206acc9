// Package updater orchestrates a fund dataset refresh: fetch, fall back,
// sort, write, record.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/laninge/indexfonder-se/internal/config"
	"github.com/laninge/indexfonder-se/internal/dataset"
	"github.com/laninge/indexfonder-se/internal/funds"
	"github.com/laninge/indexfonder-se/internal/history"
	"github.com/laninge/indexfonder-se/internal/metrics"
)

// Source labels where the published dataset came from.
const (
	SourceMorningstar = "morningstar"
	SourceAvanza      = "avanza"
	SourceCurated     = "curated"
)

// Fetcher supplies funds for one listing group from a live source.
type Fetcher interface {
	Fetch(ctx context.Context, group funds.Group) ([]funds.Fund, error)
}

// Result summarizes a finished update run.
type Result struct {
	RunID       string
	Source      string
	Output      string
	GlobalFunds int
	SwedenFunds int
	Duration    time.Duration
}

// Updater runs dataset refreshes. Store and Recorder are optional.
type Updater struct {
	cfg         *config.Config
	morningstar Fetcher
	avanza      Fetcher
	store       *history.Store
	recorder    *metrics.Recorder
	now         func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithMorningstar sets the primary live source.
func WithMorningstar(f Fetcher) Option { return func(u *Updater) { u.morningstar = f } }

// WithAvanza sets the secondary live source.
func WithAvanza(f Fetcher) Option { return func(u *Updater) { u.avanza = f } }

// WithHistory records runs in the given store.
func WithHistory(s *history.Store) Option { return func(u *Updater) { u.store = s } }

// WithRecorder publishes run metrics.
func WithRecorder(r *metrics.Recorder) Option { return func(u *Updater) { u.recorder = r } }

// WithClock overrides the time source (used by tests).
func WithClock(now func() time.Time) Option { return func(u *Updater) { u.now = now } }

// New creates an updater for the given configuration.
func New(cfg *config.Config, opts ...Option) *Updater {
	u := &Updater{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Run performs one refresh. Live sources are tried in order (Morningstar,
// then Avanza); when neither delivers both groups the curated lists are
// published instead, matching the original monthly job.
func (u *Updater) Run(ctx context.Context) (*Result, error) {
	started := u.now()
	runID := history.NewRunID()
	slog.Info("Starting fund dataset update", "run_id", runID)

	collection, source := u.collect(ctx)

	funds.SortByFee(collection.Global)
	funds.SortByFee(collection.Sweden)

	ds := dataset.New(collection, u.cfg.Data.Sources, u.cfg.Data.Disclaimer, u.now())
	if err := dataset.Write(u.cfg.Data.Output, ds); err != nil {
		u.finish(ctx, runID, started, source, collection, err)
		return nil, fmt.Errorf("write dataset: %w", err)
	}

	u.finish(ctx, runID, started, source, collection, nil)

	result := &Result{
		RunID:       runID,
		Source:      source,
		Output:      u.cfg.Data.Output,
		GlobalFunds: len(collection.Global),
		SwedenFunds: len(collection.Sweden),
		Duration:    u.now().Sub(started),
	}
	slog.Info("Fund dataset updated",
		"run_id", runID,
		"source", source,
		"output", result.Output,
		"global_funds", result.GlobalFunds,
		"sweden_funds", result.SwedenFunds)
	return result, nil
}

// collect gathers a complete collection, walking the source chain.
func (u *Updater) collect(ctx context.Context) (*funds.Collection, string) {
	for _, src := range []struct {
		name    string
		fetcher Fetcher
	}{
		{SourceMorningstar, u.morningstar},
		{SourceAvanza, u.avanza},
	} {
		if src.fetcher == nil {
			continue
		}
		c, err := fetchBoth(ctx, src.fetcher)
		ok := err == nil && len(c.Global) > 0 && len(c.Sweden) > 0
		u.recorder.IncSourceResult(src.name, ok)
		if ok {
			return c, src.name
		}
		if err != nil {
			slog.Warn("Fund source failed, falling back", "source", src.name, "error", err)
		} else {
			slog.Warn("Fund source incomplete, falling back", "source", src.name,
				"global", len(c.Global), "sweden", len(c.Sweden))
		}
	}
	slog.Info("Using curated fund data")
	return funds.Curated(), SourceCurated
}

func fetchBoth(ctx context.Context, f Fetcher) (*funds.Collection, error) {
	global, err := f.Fetch(ctx, funds.GroupGlobal)
	if err != nil {
		return nil, err
	}
	sweden, err := f.Fetch(ctx, funds.GroupSweden)
	if err != nil {
		return nil, err
	}
	return &funds.Collection{Global: global, Sweden: sweden}, nil
}

// finish records the run in history and metrics.
func (u *Updater) finish(ctx context.Context, runID string, started time.Time, source string, c *funds.Collection, runErr error) {
	finished := u.now()

	if u.recorder != nil {
		u.recorder.ObserveUpdateDuration(finished.Sub(started))
		if runErr != nil {
			u.recorder.IncOutcome(metrics.OutcomeFailed)
		} else {
			u.recorder.IncOutcome(metrics.OutcomeSuccess)
			u.recorder.SetLastUpdate(finished)
			gr, gi := funds.Counts(c.Global)
			sr, si := funds.Counts(c.Sweden)
			u.recorder.SetFundCount(string(funds.GroupGlobal), "retail", gr)
			u.recorder.SetFundCount(string(funds.GroupGlobal), "institutional", gi)
			u.recorder.SetFundCount(string(funds.GroupSweden), "retail", sr)
			u.recorder.SetFundCount(string(funds.GroupSweden), "institutional", si)
		}
	}

	if u.store != nil {
		_, gi := funds.Counts(c.Global)
		_, si := funds.Counts(c.Sweden)
		run := history.Run{
			ID:          runID,
			Started:     started,
			Finished:    finished,
			Source:      source,
			GlobalTotal: len(c.Global),
			GlobalInst:  gi,
			SwedenTotal: len(c.Sweden),
			SwedenInst:  si,
		}
		if runErr != nil {
			run.Error = runErr.Error()
		}
		if err := u.store.Record(ctx, run); err != nil {
			slog.Warn("Failed to record update run", "run_id", runID, "error", err)
		}
	}
}
