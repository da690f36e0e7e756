package genesisstate

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

func testAccount(i int64) (common.Address, Account) {
	addr := common.BigToAddress(big.NewInt(0x1000 + i))
	return addr, Account{
		Balance: big.NewInt(i * 1000),
		Nonce:   uint64(i),
		Storage: map[common.Hash]common.Hash{
			common.BigToHash(big.NewInt(i)): common.BigToHash(big.NewInt(i * 2)),
		},
	}
}

// TestRootEmptyMapping verifies that no accounts commit to the canonical
// empty-trie root.
func TestRootEmptyMapping(t *testing.T) {
	root, err := Root(Accounts{})
	require.NoError(t, err)
	if root != types.EmptyRootHash {
		t.Errorf("Root(empty) = %s, want %s", root.Hex(), types.EmptyRootHash.Hex())
	}
}

// TestRootDeterministic verifies that the root depends only on the mapping's
// content: repeated commits and different insertion orders agree.
func TestRootDeterministic(t *testing.T) {
	forward := make(Accounts)
	backward := make(Accounts)
	for i := int64(0); i < 16; i++ {
		addr, acc := testAccount(i)
		forward[addr] = acc
	}
	for i := int64(15); i >= 0; i-- {
		addr, acc := testAccount(i)
		backward[addr] = acc
	}

	first, err := Root(forward)
	require.NoError(t, err)
	second, err := Root(forward)
	require.NoError(t, err)
	reversed, err := Root(backward)
	require.NoError(t, err)

	if first != second {
		t.Error("repeated commit of the same mapping produced different roots")
	}
	if first != reversed {
		t.Error("insertion order changed the committed root")
	}
	if first == types.EmptyRootHash {
		t.Error("non-empty mapping committed to the empty-trie root")
	}
}

// TestRootSensitivity verifies that any change to the mapping moves the root.
func TestRootSensitivity(t *testing.T) {
	addr, acc := testAccount(1)
	base, err := Root(Accounts{addr: acc})
	require.NoError(t, err)

	acc.Balance = big.NewInt(999999)
	changed, err := Root(Accounts{addr: acc})
	require.NoError(t, err)
	if base == changed {
		t.Error("balance change did not move the state root")
	}

	acc = Accounts{addr: acc}.Copy()[addr]
	acc.Code = []byte{0x60, 0x00}
	withCode, err := Root(Accounts{addr: acc})
	require.NoError(t, err)
	if withCode == changed {
		t.Error("code change did not move the state root")
	}
}

// TestAccountsCopy verifies the copy is deep for balances and storage.
func TestAccountsCopy(t *testing.T) {
	addr, acc := testAccount(3)
	orig := Accounts{addr: acc}
	cp := orig.Copy()

	cp[addr].Balance.SetInt64(1)
	cp[addr].Storage[common.BigToHash(big.NewInt(3))] = common.Hash{}

	if orig[addr].Balance.Int64() != 3000 {
		t.Error("copy shares the balance big.Int with the original")
	}
	if orig[addr].Storage[common.BigToHash(big.NewInt(3))] != common.BigToHash(big.NewInt(6)) {
		t.Error("copy shares the storage map with the original")
	}
}
