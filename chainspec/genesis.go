package chainspec

import (
	"bytes"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/sirupsen/logrus"

	"github.com/tessera-chain/go-chainspec/chainspec/genesisstate"
)

var log = logrus.WithField("module", "chainspec")

// rlpEmptyList is the canonical encoding of an empty list, used for the
// "no transaction bodies" and "no uncle bodies" block trailers.
var rlpEmptyList = []byte{0xc0}

// WithGenesis overlays the genesis header fields from the "genesis" object
// onto a copy of the params.
//
// Field handling follows the canonical chain spec format:
//   - "parentHash", "gasLimit", "timestamp", "extraData" are required
//   - the author accepts either "coinbase" or "author", with "coinbase"
//     taking precedence when both are present
//   - "difficulty" and "gasUsed" default to zero
//   - if both a mix-hash key ("mixhash" checked before "mixHash") and
//     "nonce" are present, the two values become the proof-of-work seal:
//     SealFields is 2 and SealRLP encodes mix hash then nonce. Engines with
//     different seal shapes leave the seal empty here and supply it through
//     CreateSealEngine.
//
// A non-zero overrideRoot is trusted as the state root and skips the trie
// commitment; otherwise the root is computed from the current genesis state
// and memoized on the returned copy.
func (p *ChainParams) WithGenesis(data []byte, overrideRoot common.Hash) (*ChainParams, error) {
	var genesis genesisObject
	if err := json.Unmarshal(data, &genesis); err != nil {
		return nil, &ConfigError{Field: "genesis", Reason: err.Error()}
	}

	cp := p.Copy()

	s, err := genesis.requiredStr("genesis.parentHash", "parentHash")
	if err != nil {
		return nil, err
	}
	if cp.ParentHash, err = parseHash("genesis.parentHash", s); err != nil {
		return nil, err
	}

	authorKey := "author"
	if _, ok := genesis["coinbase"]; ok {
		authorKey = "coinbase"
	}
	if s, err = genesis.requiredStr("genesis."+authorKey, authorKey); err != nil {
		return nil, err
	}
	if cp.Author, err = parseAddress("genesis."+authorKey, s); err != nil {
		return nil, err
	}

	if cp.Difficulty, err = genesis.bigOr("genesis.difficulty", "difficulty", new(big.Int)); err != nil {
		return nil, err
	}
	if cp.GasLimit, err = genesis.requiredBig("genesis.gasLimit", "gasLimit"); err != nil {
		return nil, err
	}
	if cp.GasUsed, err = genesis.bigOr("genesis.gasUsed", "gasUsed", new(big.Int)); err != nil {
		return nil, err
	}
	if cp.Timestamp, err = genesis.requiredBig("genesis.timestamp", "timestamp"); err != nil {
		return nil, err
	}
	if s, err = genesis.requiredStr("genesis.extraData", "extraData"); err != nil {
		return nil, err
	}
	cp.ExtraData = common.FromHex(s)

	mixKey := ""
	if _, ok := genesis["mixhash"]; ok {
		mixKey = "mixhash"
	} else if _, ok := genesis["mixHash"]; ok {
		mixKey = "mixHash"
	}
	if _, ok := genesis["nonce"]; ok && mixKey != "" {
		if s, err = genesis.requiredStr("genesis."+mixKey, mixKey); err != nil {
			return nil, err
		}
		mixHash, err := parseHash("genesis."+mixKey, s)
		if err != nil {
			return nil, err
		}
		if s, err = genesis.requiredStr("genesis.nonce", "nonce"); err != nil {
			return nil, err
		}
		nonce, err := parseNonce("genesis.nonce", s)
		if err != nil {
			return nil, err
		}
		if cp.SealRLP, err = powSealRLP(mixHash, nonce); err != nil {
			return nil, err
		}
		cp.SealFields = 2
	}

	if overrideRoot != (common.Hash{}) {
		cp.stateRoot = &overrideRoot
	} else {
		cp.stateRoot = nil
		if _, err := cp.StateRoot(); err != nil {
			return nil, err
		}
	}
	return cp, nil
}

// StateRoot returns the trie commitment over the genesis account mapping,
// computing and memoizing it on first use. Once cached the root is never
// recomputed on this value; fresh state needs a fresh copy (WithGenesisState
// resets the cache).
func (p *ChainParams) StateRoot() (common.Hash, error) {
	if p.stateRoot != nil {
		return *p.stateRoot, nil
	}
	root, err := genesisstate.Root(p.GenesisState)
	if err != nil {
		return common.Hash{}, &StorageError{Op: "commit genesis state", Err: err}
	}
	p.stateRoot = &root
	return root, nil
}

// GenesisBlock encodes the canonical genesis block: a list of three items,
// the header, an empty transaction-body list and an empty uncle-body list.
// The header carries the thirteen basic fields in fixed order followed by
// exactly SealFields raw items spliced from SealRLP.
//
// The extra-data bound and the seal invariant are validated here, at
// assembly time, so a spec can be loaded and inspected even when a field is
// out of bounds.
func (p *ChainParams) GenesisBlock() ([]byte, error) {
	if p.MaximumExtraDataSize != nil && p.MaximumExtraDataSize.IsUint64() &&
		uint64(len(p.ExtraData)) > p.MaximumExtraDataSize.Uint64() {
		return nil, &ConfigError{Field: "genesis.extraData", Reason: "longer than maximumExtraDataSize"}
	}
	if n, err := rlp.CountValues(p.SealRLP); err != nil || n != p.SealFields {
		return nil, &ConfigError{Field: "sealRLP", Reason: "does not decode into the declared seal field count"}
	}

	root, err := p.StateRoot()
	if err != nil {
		return nil, err
	}

	header := []interface{}{
		p.ParentHash,
		types.EmptyUncleHash, // hash of no uncle headers
		p.Author,
		root,
		types.EmptyRootHash, // transactions
		types.EmptyRootHash, // receipts
		types.Bloom{},
		p.Difficulty,
		uint64(0), // block number
		p.GasLimit,
		p.GasUsed,
		p.Timestamp,
		p.ExtraData,
	}
	if p.SealFields > 0 {
		header = append(header, rlp.RawValue(p.SealRLP))
	}
	headerRLP, err := rlp.EncodeToBytes(header)
	if err != nil {
		return nil, err
	}

	return rlp.EncodeToBytes([]interface{}{
		rlp.RawValue(headerRLP),
		rlp.RawValue(rlpEmptyList),
		rlp.RawValue(rlpEmptyList),
	})
}

// PopulateFromGenesis rebuilds the params' genesis fields from a serialized
// genesis block (or bare header) and the account mapping it was built from,
// then verifies the inverse: re-assembling must reproduce raw byte for byte.
//
// A mismatch means the genesis description is non-canonical or hand-edited
// and is fatal: the IntegrityError carries the computed and expected header
// hashes and the caller must abort, never accept the divergent genesis.
func (p *ChainParams) PopulateFromGenesis(raw []byte, accounts genesisstate.Accounts) error {
	headerRaw, err := headerFromBlock(raw)
	if err != nil {
		return err
	}
	content, _, err := rlp.SplitList(headerRaw)
	if err != nil {
		return &ConfigError{Field: "genesis block", Reason: "header is not a list"}
	}
	items, err := splitRawItems(content)
	if err != nil {
		return &ConfigError{Field: "genesis block", Reason: err.Error()}
	}
	if len(items) < BasicHeaderFields {
		return &ConfigError{Field: "genesis block", Reason: "header has too few fields"}
	}

	if err := rlp.DecodeBytes(items[0], &p.ParentHash); err != nil {
		return &ConfigError{Field: "genesis block.parentHash", Reason: err.Error()}
	}
	if err := rlp.DecodeBytes(items[2], &p.Author); err != nil {
		return &ConfigError{Field: "genesis block.author", Reason: err.Error()}
	}
	p.Difficulty = new(big.Int)
	if err := rlp.DecodeBytes(items[7], p.Difficulty); err != nil {
		return &ConfigError{Field: "genesis block.difficulty", Reason: err.Error()}
	}
	p.GasLimit = new(big.Int)
	if err := rlp.DecodeBytes(items[9], p.GasLimit); err != nil {
		return &ConfigError{Field: "genesis block.gasLimit", Reason: err.Error()}
	}
	p.GasUsed = new(big.Int)
	if err := rlp.DecodeBytes(items[10], p.GasUsed); err != nil {
		return &ConfigError{Field: "genesis block.gasUsed", Reason: err.Error()}
	}
	p.Timestamp = new(big.Int)
	if err := rlp.DecodeBytes(items[11], p.Timestamp); err != nil {
		return &ConfigError{Field: "genesis block.timestamp", Reason: err.Error()}
	}
	p.ExtraData = nil
	if err := rlp.DecodeBytes(items[12], &p.ExtraData); err != nil {
		return &ConfigError{Field: "genesis block.extraData", Reason: err.Error()}
	}

	p.GenesisState = accounts
	p.stateRoot = nil
	p.SealFields = len(items) - BasicHeaderFields
	p.SealRLP = nil
	for _, item := range items[BasicHeaderFields:] {
		p.SealRLP = append(p.SealRLP, item...)
	}

	assembled, err := p.GenesisBlock()
	if err != nil {
		return err
	}
	if !bytes.Equal(assembled, raw) {
		computed := HeaderHash(assembled)
		expected := HeaderHash(raw)
		log.WithFields(logrus.Fields{
			"computed": computed.Hex(),
			"expected": expected.Hex(),
		}).Debug("genesis round-trip mismatch")
		log.WithField("rlp", hexutil.Encode(assembled)).Debug("genesis re-assembled")
		log.WithField("rlp", hexutil.Encode(raw)).Debug("genesis passed")
		return &IntegrityError{Computed: computed, Expected: expected}
	}
	return nil
}

// HeaderHash returns the keccak hash of the header item of a serialized
// genesis block. Bare headers hash as-is.
func HeaderHash(raw []byte) common.Hash {
	header, err := headerFromBlock(raw)
	if err != nil {
		return common.Hash{}
	}
	return crypto.Keccak256Hash(header)
}

// headerFromBlock returns the raw header encoding, whether raw is a full
// block (outer item is a list of lists, header first) or a bare header.
func headerFromBlock(raw []byte) ([]byte, error) {
	content, _, err := rlp.SplitList(raw)
	if err != nil {
		return nil, &ConfigError{Field: "genesis block", Reason: "not a canonical list"}
	}
	kind, _, _, err := rlp.Split(content)
	if err != nil {
		return nil, &ConfigError{Field: "genesis block", Reason: err.Error()}
	}
	if kind != rlp.List {
		// bare header
		return raw, nil
	}
	items, err := splitRawItems(content)
	if err != nil {
		return nil, &ConfigError{Field: "genesis block", Reason: err.Error()}
	}
	return items[0], nil
}

// splitRawItems walks a list's content and returns each item's full raw
// encoding, header bytes included.
func splitRawItems(content []byte) ([][]byte, error) {
	var items [][]byte
	rest := content
	for len(rest) > 0 {
		before := rest
		var err error
		if _, _, rest, err = rlp.Split(rest); err != nil {
			return nil, err
		}
		items = append(items, before[:len(before)-len(rest)])
	}
	return items, nil
}

// powSealRLP encodes the two proof-of-work seal fields, mix hash then nonce.
func powSealRLP(mixHash common.Hash, nonce types.BlockNonce) ([]byte, error) {
	seal, err := rlp.EncodeToBytes(mixHash)
	if err != nil {
		return nil, err
	}
	nonceRLP, err := rlp.EncodeToBytes(nonce)
	if err != nil {
		return nil, err
	}
	return append(seal, nonceRLP...), nil
}

// parseNonce parses an 8-byte proof-of-work nonce.
func parseNonce(field, s string) (types.BlockNonce, error) {
	b := common.FromHex(s)
	if len(b) != 8 {
		return types.BlockNonce{}, &ConfigError{Field: field, Reason: "not an 8-byte nonce"}
	}
	var nonce types.BlockNonce
	copy(nonce[:], b)
	return nonce, nil
}
