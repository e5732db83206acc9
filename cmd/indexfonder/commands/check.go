package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/laninge/indexfonder-se/internal/config"
	"github.com/laninge/indexfonder-se/internal/dataset"
	"github.com/laninge/indexfonder-se/internal/history"
)

// CheckCmd implements the 'check' command: validate config, summarize state.
type CheckCmd struct {
	Runs int `help:"Show the most recent update runs from history" default:"3"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fmt.Printf("Configuration OK: %s\n", root.Config)
	fmt.Printf("  site:                %s\n", cfg.Site)
	fmt.Printf("  compress_html:       %t\n", cfg.CompressHTML)
	fmt.Printf("  inline_stylesheets:  %s\n", cfg.Build.InlineStylesheets)
	fmt.Printf("  dataset output:      %s\n", cfg.Data.Output)

	if ds, err := dataset.Read(cfg.Data.Output); err == nil {
		fmt.Printf("  dataset lastUpdated: %s (%d global, %d sweden)\n",
			ds.LastUpdated, len(ds.Global), len(ds.Sweden))
	} else {
		fmt.Println("  dataset:             not present")
	}

	if cfg.Data.HistoryDB != "" {
		if err := c.printRuns(cfg.Data.HistoryDB); err != nil {
			fmt.Printf("  history:             unavailable (%v)\n", err)
		}
	}
	return nil
}

func (c *CheckCmd) printRuns(dbPath string) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := store.Recent(ctx, c.Runs)
	if err != nil {
		return err
	}
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed: " + run.Error
		}
		fmt.Printf("  run %s  %s  source=%s  global=%d sweden=%d  %s\n",
			run.ID[:8], run.Started.Format(time.RFC3339), run.Source,
			run.GlobalTotal, run.SwedenTotal, status)
	}
	return nil
}
