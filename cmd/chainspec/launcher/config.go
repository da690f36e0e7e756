package launcher

import (
	"fmt"
	"io/ioutil"

	"gopkg.in/urfave/cli.v1"

	"github.com/tessera-chain/go-chainspec/presets"
)

// Config aggregates everything a command run needs.
type Config struct {
	SpecFile   string // path to the chain spec document; wins over PresetName
	PresetName string // built-in spec selector
	StateRoot  string // optional trusted state root override (hex)

	GenesisFile string // inspect: path to the serialized genesis block
	OutFile     string // build: output path for the genesis RLP

	Logging LoggingConfig
}

// LoggingConfig carries the logger settings shared by all commands.
type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

// MakeConfig merges defaults with the CLI flag overrides of the current
// command invocation.
func MakeConfig(ctx *cli.Context) Config {
	cfg := DefaultConfig()

	if v := ctx.String("spec"); v != "" {
		cfg.SpecFile = v
	}
	if v := ctx.String("preset"); v != "" {
		cfg.PresetName = v
	}
	if v := ctx.String("stateroot"); v != "" {
		cfg.StateRoot = v
	}
	if v := ctx.String("genesis"); v != "" {
		cfg.GenesisFile = v
	}
	if v := ctx.String("out"); v != "" {
		cfg.OutFile = v
	}
	cfg.Logging = MakeLoggingConfig(ctx)
	return cfg
}

// MakeLoggingConfig reads the global logging flags.
func MakeLoggingConfig(ctx *cli.Context) LoggingConfig {
	return LoggingConfig{
		Verbosity: ctx.GlobalInt("log.verbosity"),
		Format:    ctx.GlobalString("log.format"),
		Color:     ctx.GlobalBool("log.color"),
		SentryDSN: ctx.GlobalString("sentry.dsn"),
	}
}

// specDocument resolves the chain spec text for the run: an explicit file
// wins over a named preset.
func specDocument(cfg Config) ([]byte, error) {
	if cfg.SpecFile != "" {
		data, err := ioutil.ReadFile(cfg.SpecFile)
		if err != nil {
			return nil, fmt.Errorf("read chain spec: %v", err)
		}
		return data, nil
	}
	if cfg.PresetName != "" {
		doc, err := presets.ByName(cfg.PresetName)
		if err != nil {
			return nil, err
		}
		return []byte(doc), nil
	}
	return nil, fmt.Errorf("no chain spec given: use --spec or --preset (presets: %v)", presets.Names())
}
