// Package launcher wires the chainspec CLI: flag parsing, logger setup and
// the build/inspect/presets commands.
package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/tessera-chain/go-chainspec/flags"
)

var app = flags.NewApp("chain specification and genesis block tool")

func init() {
	app.Flags = flags.CommonFlags()
	app.Commands = []cli.Command{
		buildCommand,
		inspectCommand,
		presetsCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		return setupLogger(MakeLoggingConfig(ctx))
	}
}

// Launch parses the arguments and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}
