package chainspec

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"

	"github.com/tessera-chain/go-chainspec/chainspec/genesisstate"
)

func baseParams(t *testing.T) *ChainParams {
	t.Helper()
	p, err := LoadConfig([]byte(testSpec), common.Hash{}, nil)
	require.NoError(t, err)
	return p
}

// TestWithGenesisCoinbasePrecedence verifies that a genesis object carrying
// both "coinbase" and "author" resolves the author to the coinbase value.
func TestWithGenesisCoinbasePrecedence(t *testing.T) {
	genesis := `{
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"coinbase": "0x1111111111111111111111111111111111111111",
		"author": "0x2222222222222222222222222222222222222222",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x"
	}`
	p, err := baseParams(t).WithGenesis([]byte(genesis), common.Hash{})
	require.NoError(t, err)

	want := common.HexToAddress("0x1111111111111111111111111111111111111111")
	if p.Author != want {
		t.Errorf("Author = %s, want coinbase %s", p.Author.Hex(), want.Hex())
	}
}

// TestWithGenesisDefaults verifies the optional-field defaults: difficulty
// and gasUsed are zero when absent.
func TestWithGenesisDefaults(t *testing.T) {
	p := baseParams(t)
	if p.Difficulty.Sign() != 0 {
		t.Errorf("Difficulty = %v, want 0", p.Difficulty)
	}
	if p.GasUsed.Sign() != 0 {
		t.Errorf("GasUsed = %v, want 0", p.GasUsed)
	}
	if p.GasLimit.Cmp(big.NewInt(0x2fefd8)) != 0 {
		t.Errorf("GasLimit = %v, want 0x2fefd8", p.GasLimit)
	}
}

// TestWithGenesisSealDetection verifies that a camel-case mixHash plus nonce
// yields two seal fields whose encoding decodes back to exactly those two
// values, mix hash first.
func TestWithGenesisSealDetection(t *testing.T) {
	genesis := `{
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"author": "0x0000000000000000000000000000000000000000",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x",
		"mixHash": "0x00000000000000000000000000000000000000000000000000000000000000aa",
		"nonce": "0x0000000000000042"
	}`
	p, err := baseParams(t).WithGenesis([]byte(genesis), common.Hash{})
	require.NoError(t, err)

	if p.SealFields != 2 {
		t.Fatalf("SealFields = %d, want 2", p.SealFields)
	}
	n, err := rlp.CountValues(p.SealRLP)
	require.NoError(t, err)
	if n != 2 {
		t.Fatalf("SealRLP decodes into %d items, want 2", n)
	}

	items, err := splitRawItems(p.SealRLP)
	require.NoError(t, err)
	var mix common.Hash
	require.NoError(t, rlp.DecodeBytes(items[0], &mix))
	if mix != common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000aa") {
		t.Errorf("seal mix hash = %s", mix.Hex())
	}
	var nonce types.BlockNonce
	require.NoError(t, rlp.DecodeBytes(items[1], &nonce))
	if nonce != types.EncodeNonce(0x42) {
		t.Errorf("seal nonce = %x, want 0x42", nonce)
	}
}

// TestWithGenesisMissingKeys verifies that required genesis keys fail with
// a ConfigError while missing seal keys simply leave the seal empty.
func TestWithGenesisMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		genesis string
		field   string
	}{
		{
			name:    "missing parentHash",
			genesis: `{"author": "0x0000000000000000000000000000000000000000", "gasLimit": "0x2fefd8", "timestamp": "0x00", "extraData": "0x"}`,
			field:   "genesis.parentHash",
		},
		{
			name:    "missing gasLimit",
			genesis: `{"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000", "author": "0x0000000000000000000000000000000000000000", "timestamp": "0x00", "extraData": "0x"}`,
			field:   "genesis.gasLimit",
		},
		{
			name:    "short parentHash",
			genesis: `{"parentHash": "0x00", "author": "0x0000000000000000000000000000000000000000", "gasLimit": "0x2fefd8", "timestamp": "0x00", "extraData": "0x"}`,
			field:   "genesis.parentHash",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := baseParams(t).WithGenesis([]byte(tt.genesis), common.Hash{})
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}

	// nonce without mix hash: no seal, no error
	genesis := `{
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"author": "0x0000000000000000000000000000000000000000",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x",
		"nonce": "0x0000000000000042"
	}`
	p, err := baseParams(t).WithGenesis([]byte(genesis), common.Hash{})
	require.NoError(t, err)
	if p.SealFields != 0 || len(p.SealRLP) != 0 {
		t.Errorf("seal = (%d, %x), want empty", p.SealFields, p.SealRLP)
	}
}

// TestGenesisBlockEndToEnd runs the canonical example: a NoProof spec with
// empty accounts must produce a block whose decoded gasLimit is 0x2fefd8
// and whose state root is the empty-trie root.
func TestGenesisBlockEndToEnd(t *testing.T) {
	p := baseParams(t)
	_, err := p.CreateSealEngine()
	require.NoError(t, err)

	block, err := p.GenesisBlock()
	require.NoError(t, err)

	root, err := p.StateRoot()
	require.NoError(t, err)
	if root != types.EmptyRootHash {
		t.Errorf("state root = %s, want empty-trie root %s", root.Hex(), types.EmptyRootHash.Hex())
	}

	decoded := baseParams(t)
	require.NoError(t, decoded.PopulateFromGenesis(block, p.GenesisState))
	if decoded.GasLimit.Cmp(big.NewInt(0x2fefd8)) != 0 {
		t.Errorf("decoded gasLimit = %v, want 0x2fefd8", decoded.GasLimit)
	}
	if decoded.SealFields != 0 {
		t.Errorf("decoded sealFields = %d, want 0", decoded.SealFields)
	}
}

// TestGenesisBlockRoundTrip verifies the assemble/populate/assemble identity
// for a sealed proof-of-work genesis with a non-empty account set.
func TestGenesisBlockRoundTrip(t *testing.T) {
	spec := `{
		"sealEngine": "Ethash",
		"params": {
			"accountStartNonce": "0x00",
			"maximumExtraDataSize": "0x20",
			"blockReward": "0x4563918244f40000"
		},
		"genesis": {
			"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
			"coinbase": "0x0000000000000000000000000000000000000000",
			"difficulty": "0x020000",
			"gasLimit": "0x2fefd8",
			"timestamp": "0x54c98c81",
			"extraData": "0x42",
			"mixhash": "0x0000000000000000000000000000000000000000000000000000000000000000",
			"nonce": "0x0000000000000042"
		},
		"accounts": {
			"0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0": { "balance": "0x1337000000000000000000" }
		}
	}`
	p, err := LoadConfig([]byte(spec), common.Hash{}, nil)
	require.NoError(t, err)

	block, err := p.GenesisBlock()
	require.NoError(t, err)

	decoded := p.Copy()
	require.NoError(t, decoded.PopulateFromGenesis(block, p.GenesisState))

	again, err := decoded.GenesisBlock()
	require.NoError(t, err)
	if !bytes.Equal(block, again) {
		t.Fatal("re-assembled genesis differs from the original encoding")
	}
	if decoded.SealFields != 2 {
		t.Errorf("decoded sealFields = %d, want 2", decoded.SealFields)
	}
	if decoded.Timestamp.Cmp(big.NewInt(0x54c98c81)) != 0 {
		t.Errorf("decoded timestamp = %v", decoded.Timestamp)
	}
}

// TestPopulateFromGenesisMismatch verifies the fatal path: a block whose
// state commitment does not match the supplied account mapping must raise an
// IntegrityError, not silently adopt the decoded root.
func TestPopulateFromGenesisMismatch(t *testing.T) {
	p := baseParams(t)
	block, err := p.GenesisBlock()
	require.NoError(t, err)

	other := genesisstate.Accounts{
		common.HexToAddress("0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0"): {
			Balance: big.NewInt(1),
		},
	}
	err = p.Copy().PopulateFromGenesis(block, other)
	var intErr *IntegrityError
	if !errors.As(err, &intErr) {
		t.Fatalf("err = %v, want *IntegrityError", err)
	}
	if intErr.Expected != HeaderHash(block) {
		t.Errorf("Expected hash = %s, want %s", intErr.Expected.Hex(), HeaderHash(block).Hex())
	}
	if intErr.Computed == intErr.Expected {
		t.Error("Computed == Expected on a mismatch")
	}
}

// TestPopulateFromBareHeader verifies that a bare header (outer item not a
// list of lists) decodes the same way a full block does.
func TestPopulateFromBareHeader(t *testing.T) {
	p := baseParams(t)
	block, err := p.GenesisBlock()
	require.NoError(t, err)

	content, _, err := rlp.SplitList(block)
	require.NoError(t, err)
	items, err := splitRawItems(content)
	require.NoError(t, err)
	header := items[0]

	decoded := baseParams(t)
	// a bare header re-assembles into a full block, so the byte-exact check
	// cannot hold; only the decode path is exercised here
	errPopulate := decoded.PopulateFromGenesis(header, p.GenesisState)
	var intErr *IntegrityError
	if errPopulate == nil {
		t.Fatal("bare header round-trip unexpectedly produced identical bytes")
	}
	if !errors.As(errPopulate, &intErr) {
		t.Fatalf("err = %v, want *IntegrityError", errPopulate)
	}
	if decoded.GasLimit.Cmp(big.NewInt(0x2fefd8)) != 0 {
		t.Errorf("decoded gasLimit = %v, want 0x2fefd8", decoded.GasLimit)
	}
}

// TestStateRootMemoized verifies write-once semantics: once computed, the
// root never changes on the same value, and only a fresh copy with new state
// commits a new root.
func TestStateRootMemoized(t *testing.T) {
	p := baseParams(t)
	first, err := p.StateRoot()
	require.NoError(t, err)

	// mutate the mapping behind the cache; the memoized root must not move
	p.GenesisState[common.HexToAddress("0x01")] = genesisstate.Account{Balance: big.NewInt(5)}
	second, err := p.StateRoot()
	require.NoError(t, err)
	if first != second {
		t.Error("memoized state root changed after computation")
	}

	// a legitimate state change goes through a fresh copy with a reset cache
	fresh, err := p.WithGenesisState([]byte(`{
		"0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0": { "balance": "0x01" }
	}`), nil)
	require.NoError(t, err)
	third, err := fresh.StateRoot()
	require.NoError(t, err)
	if third == first {
		t.Error("fresh copy with different state produced the same root")
	}
}

// TestGenesisBlockExtraDataBound verifies that oversized extra data is
// rejected at assembly time, not at parse time.
func TestGenesisBlockExtraDataBound(t *testing.T) {
	genesis := `{
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"author": "0x0000000000000000000000000000000000000000",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	}`
	// 33 bytes of extra data against a 0x20 (32 byte) bound parses fine
	p, err := baseParams(t).WithGenesis([]byte(genesis), common.Hash{})
	require.NoError(t, err)

	_, err = p.GenesisBlock()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "genesis.extraData" {
		t.Errorf("Field = %q, want genesis.extraData", cfgErr.Field)
	}
}

// TestGenesisBlockSealInvariant verifies that a seal count disagreeing with
// the seal encoding is rejected at assembly.
func TestGenesisBlockSealInvariant(t *testing.T) {
	p := baseParams(t)
	p.SealFields = 1
	p.SealRLP = nil

	_, err := p.GenesisBlock()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
}
