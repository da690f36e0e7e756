// Package genesisstate parses the declarative genesis account set and commits
// it into the secure merkle-patricia trie to produce the genesis state root.
//
// The trie itself is an external capability: this package only drives the
// state database's "commit accounts, get root" surface and treats the result
// as opaque. The account descriptors are the classic chain-spec shape:
//
//	{
//	  "0x0000000000000000000000000000000000000001": {
//	    "precompiled": { "name": "ecrecover" },
//	    "balance": "1"
//	  },
//	  "0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0": {
//	    "balance": "0x1337000000000000000000",
//	    "nonce": "0x00",
//	    "code": "0x60ff",
//	    "storage": { "0x00": "0x2a" }
//	  }
//	}
//
// Balances are accepted under "balance", "wei" or "finney" (1 finney =
// 10^15 wei), as hex or decimal strings. An entry carrying a "precompiled"
// marker is wired to the matching built-in contract from the supplied table;
// a marked address with no table entry is a configuration error.
package genesisstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/vm"
)

// ErrNoPrecompile is returned when an account is marked precompiled but the
// supplied table has no contract registered at its address.
var ErrNoPrecompile = errors.New("no precompiled contract registered at address")

// finneyWei is the wei value of one finney (10^15 wei).
var finneyWei = new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)

// PrecompiledTable maps reserved addresses to their built-in contract
// implementations. It is supplied by the execution-layer collaborator
// (typically one of the vm.PrecompiledContracts* sets).
type PrecompiledTable = map[common.Address]vm.PrecompiledContract

// Account is one entry of the genesis account mapping.
type Account struct {
	Balance    *big.Int
	Nonce      uint64
	Code       []byte
	Storage    map[common.Hash]common.Hash
	Precompile vm.PrecompiledContract // non-nil if the entry is a wired built-in
}

// Accounts is the genesis account mapping, address to initial state.
type Accounts map[common.Address]Account

// Copy returns an independent copy of the mapping. Account balances and
// storage maps are duplicated; precompile implementations are shared since
// they are stateless.
func (a Accounts) Copy() Accounts {
	cp := make(Accounts, len(a))
	for addr, acc := range a {
		dup := acc
		if acc.Balance != nil {
			dup.Balance = new(big.Int).Set(acc.Balance)
		}
		dup.Code = append([]byte(nil), acc.Code...)
		if acc.Storage != nil {
			dup.Storage = make(map[common.Hash]common.Hash, len(acc.Storage))
			for k, v := range acc.Storage {
				dup.Storage[k] = v
			}
		}
		cp[addr] = dup
	}
	return cp
}

// accountJSON mirrors one account descriptor as it appears in the chain
// config document. Unknown balance units are deliberately not guessed at.
type accountJSON struct {
	Balance     string            `json:"balance"`
	Wei         string            `json:"wei"`
	Finney      string            `json:"finney"`
	Nonce       string            `json:"nonce"`
	Code        string            `json:"code"`
	Storage     map[string]string `json:"storage"`
	Precompiled *json.RawMessage  `json:"precompiled"`
}

// Parse decodes the "accounts" object of a chain spec into an account
// mapping. Account nonces default to startNonce when the descriptor does not
// supply one. Entries carrying a "precompiled" marker are resolved against
// table; the wired subset is returned alongside the mapping so the caller
// can keep it on the chain params.
func Parse(data []byte, startNonce *big.Int, table PrecompiledTable) (Accounts, PrecompiledTable, error) {
	var raw map[string]accountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("accounts object: %v", err)
	}

	defaultNonce := uint64(0)
	if startNonce != nil && startNonce.IsUint64() {
		defaultNonce = startNonce.Uint64()
	}

	accounts := make(Accounts, len(raw))
	wired := make(PrecompiledTable)
	for addrHex, desc := range raw {
		addr, err := parseAddress(addrHex)
		if err != nil {
			return nil, nil, err
		}

		acc := Account{Nonce: defaultNonce}

		acc.Balance, err = parseBalance(addrHex, desc)
		if err != nil {
			return nil, nil, err
		}
		if desc.Nonce != "" {
			nonce, ok := math.ParseUint64(desc.Nonce)
			if !ok {
				return nil, nil, fmt.Errorf("account %s: malformed nonce %q", addrHex, desc.Nonce)
			}
			acc.Nonce = nonce
		}
		if desc.Code != "" {
			acc.Code = common.FromHex(desc.Code)
		}
		if len(desc.Storage) > 0 {
			acc.Storage = make(map[common.Hash]common.Hash, len(desc.Storage))
			for k, v := range desc.Storage {
				acc.Storage[common.HexToHash(k)] = common.HexToHash(v)
			}
		}
		if desc.Precompiled != nil {
			contract, ok := table[addr]
			if !ok {
				return nil, nil, fmt.Errorf("account %s: %w", addrHex, ErrNoPrecompile)
			}
			acc.Precompile = contract
			wired[addr] = contract
		}

		accounts[addr] = acc
	}
	return accounts, wired, nil
}

func parseAddress(s string) (common.Address, error) {
	b := common.FromHex(s)
	if len(b) != common.AddressLength {
		return common.Address{}, fmt.Errorf("account %s: not a 20-byte address", s)
	}
	return common.BytesToAddress(b), nil
}

// parseBalance resolves the balance from whichever unit key the descriptor
// uses. Absent keys mean a zero balance, not an error.
func parseBalance(addr string, desc accountJSON) (*big.Int, error) {
	value := desc.Balance
	unit := big.NewInt(1)
	switch {
	case desc.Balance != "":
	case desc.Wei != "":
		value = desc.Wei
	case desc.Finney != "":
		value = desc.Finney
		unit = finneyWei
	default:
		return new(big.Int), nil
	}
	parsed, ok := math.ParseBig256(value)
	if !ok {
		return nil, fmt.Errorf("account %s: malformed balance %q", addr, value)
	}
	return parsed.Mul(parsed, unit), nil
}
