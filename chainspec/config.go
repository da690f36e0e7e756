package chainspec

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/tessera-chain/go-chainspec/chainspec/genesisstate"
)

// promoted params never duplicated into the open-ended bag
var promotedParams = map[string]bool{
	"accountStartNonce":    true,
	"maximumExtraDataSize": true,
	"blockReward":          true,
	"tieBreakingGas":       true,
}

// LoadConfig parses a full chain spec document into ChainParams.
//
// The document carries a required "sealEngine" selector and "params" object,
// and optionally "genesis" (header fields, overlaid via WithGenesis) and
// "accounts" (initial state, overlaid via WithGenesisState against the
// supplied precompiled table). A non-zero overrideRoot is trusted as the
// state root and skips the trie commitment. Each overlay works on a copy,
// so partial results are never exposed: on any error the in-progress value
// is dropped.
func LoadConfig(data []byte, overrideRoot common.Hash, table genesisstate.PrecompiledTable) (*ChainParams, error) {
	var doc struct {
		SealEngine *string                    `json:"sealEngine"`
		Params     map[string]json.RawMessage `json:"params"`
		Genesis    json.RawMessage            `json:"genesis"`
		Accounts   json.RawMessage            `json:"accounts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{Field: "document", Reason: err.Error()}
	}
	if doc.SealEngine == nil {
		return nil, &ConfigError{Field: "sealEngine", Reason: "missing required key"}
	}
	if doc.Params == nil {
		return nil, &ConfigError{Field: "params", Reason: "missing required key"}
	}

	p := &ChainParams{
		SealEngineName: *doc.SealEngine,
		TieBreakingGas: true,
		OtherParams:    make(map[string]string),
		GenesisState:   make(genesisstate.Accounts),
	}

	var err error
	if p.AccountStartNonce, err = requiredBig(doc.Params, "params.accountStartNonce", "accountStartNonce"); err != nil {
		return nil, err
	}
	if p.MaximumExtraDataSize, err = requiredBig(doc.Params, "params.maximumExtraDataSize", "maximumExtraDataSize"); err != nil {
		return nil, err
	}
	if p.BlockReward, err = requiredBig(doc.Params, "params.blockReward", "blockReward"); err != nil {
		return nil, err
	}
	if raw, ok := doc.Params["tieBreakingGas"]; ok {
		if err := json.Unmarshal(raw, &p.TieBreakingGas); err != nil {
			return nil, &ConfigError{Field: "params.tieBreakingGas", Reason: "not a boolean"}
		}
	}
	for key, raw := range doc.Params {
		if promotedParams[key] {
			continue
		}
		p.OtherParams[key] = rawToString(raw)
	}

	// Accounts are overlaid before the genesis header so the state root the
	// header overlay computes (or the override it trusts) commits the real
	// initial state, not an empty placeholder.
	if len(doc.Accounts) > 0 && !isJSONNull(doc.Accounts) {
		if p, err = p.WithGenesisState(doc.Accounts, table); err != nil {
			return nil, err
		}
	}
	if len(doc.Genesis) > 0 && !isJSONNull(doc.Genesis) {
		if p, err = p.WithGenesis(doc.Genesis, overrideRoot); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// WithGenesisState overlays the genesis account mapping onto a copy of the
// params, wiring precompiled-marked entries against table. The copy's cached
// state root is reset: the commitment must be recomputed over the new
// mapping, never inherited from a value with different state.
func (p *ChainParams) WithGenesisState(data []byte, table genesisstate.PrecompiledTable) (*ChainParams, error) {
	accounts, wired, err := genesisstate.Parse(data, p.AccountStartNonce, table)
	if err != nil {
		return nil, &ConfigError{Field: "accounts", Reason: err.Error()}
	}
	cp := p.Copy()
	cp.GenesisState = accounts
	cp.Precompiled = wired
	cp.stateRoot = nil
	return cp, nil
}

// rawToString renders an extra params value the way it will be handed to the
// engine: strings are unquoted, anything else keeps its JSON text.
func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// requiredBig extracts a required hex (or decimal) big-integer string.
func requiredBig(obj map[string]json.RawMessage, field, key string) (*big.Int, error) {
	raw, ok := obj[key]
	if !ok {
		return nil, &ConfigError{Field: field, Reason: "missing required key"}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &ConfigError{Field: field, Reason: "not a string"}
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, &ConfigError{Field: field, Reason: "malformed integer " + s}
	}
	return v, nil
}

// genesis object helpers keyed on exact JSON spelling

type genesisObject map[string]json.RawMessage

func (o genesisObject) str(field, key string) (string, bool, error) {
	raw, ok := o[key]
	if !ok {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false, &ConfigError{Field: field, Reason: "not a string"}
	}
	return s, true, nil
}

func (o genesisObject) requiredStr(field, key string) (string, error) {
	s, ok, err := o.str(field, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &ConfigError{Field: field, Reason: "missing required key"}
	}
	return s, nil
}

func (o genesisObject) bigOr(field, key string, def *big.Int) (*big.Int, error) {
	s, ok, err := o.str(field, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, &ConfigError{Field: field, Reason: "malformed integer " + s}
	}
	return v, nil
}

func (o genesisObject) requiredBig(field, key string) (*big.Int, error) {
	if _, ok := o[key]; !ok {
		return nil, &ConfigError{Field: field, Reason: "missing required key"}
	}
	return o.bigOr(field, key, nil)
}

func parseHash(field, s string) (common.Hash, error) {
	b := common.FromHex(s)
	if len(b) != common.HashLength {
		return common.Hash{}, &ConfigError{Field: field, Reason: "not a 32-byte hash"}
	}
	return common.BytesToHash(b), nil
}

func parseAddress(field, s string) (common.Address, error) {
	b := common.FromHex(s)
	if len(b) != common.AddressLength {
		return common.Address{}, &ConfigError{Field: field, Reason: "not a 20-byte address"}
	}
	return common.BytesToAddress(b), nil
}
