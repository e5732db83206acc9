package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/laninge/indexfonder-se/internal/avanza"
	"github.com/laninge/indexfonder-se/internal/config"
	"github.com/laninge/indexfonder-se/internal/gitops"
	"github.com/laninge/indexfonder-se/internal/history"
	"github.com/laninge/indexfonder-se/internal/morningstar"
	"github.com/laninge/indexfonder-se/internal/updater"
)

// UpdateCmd implements the 'update' command: a one-shot dataset refresh.
type UpdateCmd struct {
	Offline bool `help:"Skip live sources and publish the curated fund lists"`
	Commit  bool `help:"Commit the refreshed dataset to the enclosing git repository"`
}

func (u *UpdateCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	timeout, err := time.ParseDuration(cfg.Data.RequestTimeout)
	if err != nil || timeout <= 0 {
		timeout = 20 * time.Second
	}

	opts := []updater.Option{}
	if !u.Offline {
		opts = append(opts,
			updater.WithMorningstar(morningstar.NewClient(timeout)),
			updater.WithAvanza(avanza.NewClient(timeout)),
		)
	}

	if cfg.Data.HistoryDB != "" {
		store, err := history.Open(cfg.Data.HistoryDB)
		if err != nil {
			return fmt.Errorf("open history store: %w", err)
		}
		defer store.Close()
		opts = append(opts, updater.WithHistory(store))
	}

	result, err := updater.New(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s (source: %s)\n", result.Output, result.Source)
	fmt.Printf("Global funds: %d, Sweden funds: %d\n", result.GlobalFunds, result.SwedenFunds)

	if u.Commit {
		message := fmt.Sprintf("Update fund data (%s)", time.Now().Format("2006-01-02"))
		hash, err := gitops.CommitDataset(filepath.Dir(result.Output), result.Output, message)
		if err != nil {
			return fmt.Errorf("commit dataset: %w", err)
		}
		if hash == "" {
			slog.Info("Dataset unchanged, nothing to commit")
		} else {
			slog.Info("Dataset committed", "commit", hash)
		}
	}
	return nil
}
