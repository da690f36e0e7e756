package launcher

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/vm"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/tessera-chain/go-chainspec/chainspec"
	"github.com/tessera-chain/go-chainspec/flags"
	"github.com/tessera-chain/go-chainspec/presets"
)

var buildCommand = cli.Command{
	Name:   "build",
	Usage:  "Build the canonical genesis block from a chain spec",
	Flags:  append(flags.SpecFlags(), flags.BuildFlags()...),
	Action: buildAction,
}

var inspectCommand = cli.Command{
	Name:   "inspect",
	Usage:  "Decode a serialized genesis block and verify it round-trips",
	Flags:  append(flags.SpecFlags(), flags.InspectFlags()...),
	Action: inspectAction,
}

var presetsCommand = cli.Command{
	Name:      "presets",
	Usage:     "List built-in chain spec presets, or print one",
	ArgsUsage: "[name]",
	Action:    presetsAction,
}

// precompiledTable is the built-in contract set offered to the account
// parser. The Berlin set is a superset of the earlier forks' tables.
var precompiledTable = vm.PrecompiledContractsBerlin

func loadParams(cfg Config) (*chainspec.ChainParams, error) {
	data, err := specDocument(cfg)
	if err != nil {
		return nil, err
	}
	var root common.Hash
	if cfg.StateRoot != "" {
		b := common.FromHex(cfg.StateRoot)
		if len(b) != common.HashLength {
			return nil, fmt.Errorf("--stateroot: not a 32-byte hash")
		}
		root = common.BytesToHash(b)
	}
	return chainspec.LoadConfig(data, root, precompiledTable)
}

func buildAction(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)
	params, err := loadParams(cfg)
	if err != nil {
		return err
	}
	engine, err := params.CreateSealEngine()
	if err != nil {
		return err
	}
	block, err := params.GenesisBlock()
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"engine": engine.Name(),
		"header": chainspec.HeaderHash(block).Hex(),
		"size":   len(block),
	}).Info("genesis block assembled")

	if cfg.OutFile != "" {
		return ioutil.WriteFile(cfg.OutFile, block, 0644)
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(block))
	return nil
}

func inspectAction(ctx *cli.Context) error {
	cfg := MakeConfig(ctx)
	if cfg.GenesisFile == "" {
		return fmt.Errorf("no genesis block given: use --genesis")
	}
	raw, err := readGenesis(cfg.GenesisFile)
	if err != nil {
		return err
	}
	params, err := loadParams(cfg)
	if err != nil {
		return err
	}

	if err := params.PopulateFromGenesis(raw, params.GenesisState); err != nil {
		return err
	}
	engine, err := params.CreateSealEngine()
	if err != nil {
		return err
	}
	if err := engine.VerifySeal(params.SealRLP); err != nil {
		return err
	}

	root, err := params.StateRoot()
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintln(w, "header:      ", chainspec.HeaderHash(raw).Hex())
	fmt.Fprintln(w, "parentHash:  ", params.ParentHash.Hex())
	fmt.Fprintln(w, "author:      ", params.Author.Hex())
	fmt.Fprintln(w, "stateRoot:   ", root.Hex())
	fmt.Fprintln(w, "difficulty:  ", params.Difficulty)
	fmt.Fprintln(w, "gasLimit:    ", params.GasLimit)
	fmt.Fprintln(w, "gasUsed:     ", params.GasUsed)
	fmt.Fprintln(w, "timestamp:   ", params.Timestamp)
	fmt.Fprintln(w, "extraData:   ", hexutil.Encode(params.ExtraData))
	fmt.Fprintln(w, "sealFields:  ", params.SealFields)
	fmt.Fprintln(w, "sealEngine:  ", engine.Name())
	return nil
}

func presetsAction(ctx *cli.Context) error {
	if name := ctx.Args().First(); name != "" {
		doc, err := presets.ByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, doc)
		return nil
	}
	for _, name := range presets.Names() {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}

// readGenesis loads a serialized genesis block from disk, accepting either
// binary RLP or a 0x-prefixed hex dump.
func readGenesis(path string) ([]byte, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis block: %v", err)
	}
	text := strings.TrimSpace(string(data))
	if strings.HasPrefix(text, "0x") {
		return hexutil.Decode(text)
	}
	return data, nil
}
