package main

import (
	"github.com/alecthomas/kong"

	"github.com/laninge/indexfonder-se/cmd/indexfonder/commands"
	"github.com/laninge/indexfonder-se/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("indexfonder"),
		kong.Description("Build tooling for indexfonder.se: site configuration and fund dataset pipeline"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
