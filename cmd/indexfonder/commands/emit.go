package commands

import (
	"fmt"
	"os"

	"github.com/laninge/indexfonder-se/internal/config"
)

// EmitCmd implements the 'emit' command: render the build configuration in
// the JSON shape the external site framework consumes.
type EmitCmd struct {
	Output string `short:"o" help:"Write to a file instead of stdout"`
}

func (e *EmitCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := cfg.EmitJSON()
	if err != nil {
		return err
	}

	if e.Output != "" {
		if err := os.WriteFile(e.Output, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", e.Output, err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
