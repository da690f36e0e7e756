// Package chainspec builds canonical genesis blocks for Ethereum-style chains
// from a declarative JSON chain specification.
//
// This package provides:
//   - ChainParams: the aggregate holding chain-wide parameters, the genesis
//     header fields, and the initial account state
//   - LoadConfig: parsing a full chain spec document into ChainParams
//   - GenesisBlock / PopulateFromGenesis: the canonical RLP encoding of the
//     genesis block and its verified inverse
//   - CreateSealEngine: resolution of the pluggable consensus engine by name
//
// Key concepts:
//   - ChainParams is immutable by convention: every overlay step (genesis
//     header, genesis state) copies the value and returns the copy, so older
//     snapshots stay valid and can be shared freely.
//   - The state root is a lazily computed, memoized commitment over the
//     genesis account mapping. A nil cache means "not yet computed"; once
//     set it is never recomputed on the same value.
//   - Seal fields are the consensus-specific trailing header items (for
//     proof-of-work: mix hash and nonce). SealFields and SealRLP are set
//     together or not at all.
//
// Usage:
//
//	params, err := chainspec.LoadConfig(specJSON, common.Hash{}, vm.PrecompiledContractsBerlin)
//	engine, err := params.CreateSealEngine()
//	block, err := params.GenesisBlock()
package chainspec

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tessera-chain/go-chainspec/chainspec/genesisstate"
)

// BasicHeaderFields is the number of common header fields preceding the
// consensus-specific seal fields in the canonical block header encoding.
const BasicHeaderFields = 13

// ChainParams aggregates everything needed to construct a genesis block:
// chain-wide parameters, the genesis header fields, and the initial account
// state. Values are copied, never mutated in place; see Copy.
type ChainParams struct {
	// Consensus engine selector, resolved at runtime via the sealer registry.
	SealEngineName string

	// Promoted chain parameters. These never appear in OtherParams.
	AccountStartNonce    *big.Int
	MaximumExtraDataSize *big.Int
	BlockReward          *big.Int
	TieBreakingGas       bool

	// OtherParams is the open-ended bag of engine-specific parameters.
	// Engines look up the keys they recognize and ignore the rest.
	OtherParams map[string]string

	// Precompiled holds the built-in contracts wired from the account set,
	// keyed by reserved address.
	Precompiled genesisstate.PrecompiledTable

	// GenesisState is the initial account mapping committed into the state
	// trie to produce the genesis state root.
	GenesisState genesisstate.Accounts

	// Genesis header fields.
	ParentHash common.Hash
	Author     common.Address
	Difficulty *big.Int
	GasLimit   *big.Int
	GasUsed    *big.Int
	Timestamp  *big.Int
	ExtraData  []byte

	// SealFields counts the consensus-specific trailing header items and
	// SealRLP holds their pre-encoded canonical bytes. Either both are
	// empty/zero or SealRLP decodes into exactly SealFields items.
	SealFields int
	SealRLP    []byte

	// stateRoot caches the trie commitment over GenesisState.
	// nil means "not yet computed"; a non-nil value is never recomputed.
	stateRoot *common.Hash
}

// Copy returns a deep, independent copy of the params. Maps and big.Int
// fields are duplicated so the copy can be patched without affecting the
// original.
func (p *ChainParams) Copy() *ChainParams {
	cp := *p

	cp.AccountStartNonce = copyBig(p.AccountStartNonce)
	cp.MaximumExtraDataSize = copyBig(p.MaximumExtraDataSize)
	cp.BlockReward = copyBig(p.BlockReward)
	cp.Difficulty = copyBig(p.Difficulty)
	cp.GasLimit = copyBig(p.GasLimit)
	cp.GasUsed = copyBig(p.GasUsed)
	cp.Timestamp = copyBig(p.Timestamp)

	if p.OtherParams != nil {
		cp.OtherParams = make(map[string]string, len(p.OtherParams))
		for k, v := range p.OtherParams {
			cp.OtherParams[k] = v
		}
	}
	if p.Precompiled != nil {
		cp.Precompiled = make(genesisstate.PrecompiledTable, len(p.Precompiled))
		for a, c := range p.Precompiled {
			cp.Precompiled[a] = c
		}
	}
	if p.GenesisState != nil {
		cp.GenesisState = p.GenesisState.Copy()
	}
	cp.ExtraData = append([]byte(nil), p.ExtraData...)
	cp.SealRLP = append([]byte(nil), p.SealRLP...)

	if p.stateRoot != nil {
		root := *p.stateRoot
		cp.stateRoot = &root
	}
	return &cp
}

// EngineName returns the consensus engine selector.
// Together with Param it lets ChainParams act as the parameter source a
// seal engine binds to.
func (p *ChainParams) EngineName() string { return p.SealEngineName }

// Param looks up an engine-specific parameter from the open-ended bag.
func (p *ChainParams) Param(key string) (string, bool) {
	v, ok := p.OtherParams[key]
	return v, ok
}

// String returns a JSON dump of the params for debugging and logging.
func (p *ChainParams) String() string {
	b, _ := json.Marshal(p)
	return string(b)
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
