package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// CommonFlags returns the base set of CLI flags shared across commands.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "log.format",
			Usage: "Log output format (text|json)",
			Value: "text",
		},
		cli.IntFlag{
			Name:  "log.verbosity",
			Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
			Value: 3,
		},
		cli.BoolFlag{
			Name:  "log.color",
			Usage: "Enable colored log output",
		},
		cli.StringFlag{
			Name:  "sentry.dsn",
			Usage: "Sentry DSN for error reporting (disabled when empty)",
		},
	}
}

// SpecFlags returns the flags selecting the chain spec input.
func SpecFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "spec",
			Usage: "Path to the JSON chain specification file",
		},
		cli.StringFlag{
			Name:  "preset",
			Usage: "Name of a built-in chain spec preset (overridden by --spec)",
		},
		cli.StringFlag{
			Name:  "stateroot",
			Usage: "Trusted state root override (hex hash, skips the trie commitment)",
		},
	}
}

// BuildFlags returns the flags of the build command.
func BuildFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "out",
			Usage: "Write the genesis block RLP to this file instead of stdout",
		},
	}
}

// InspectFlags returns the flags of the inspect command.
func InspectFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "genesis",
			Usage: "Path to the serialized genesis block (binary RLP or 0x-hex)",
		},
	}
}
