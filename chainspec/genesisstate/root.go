// Copyright 2015 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package genesisstate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"
)

// Root commits the account mapping into a fresh secure trie over an
// in-memory database and returns the resulting state root.
//
// The computation is deterministic: the trie orders entries by hashed key
// internally, so the root is independent of the map's iteration order. An
// empty mapping yields the canonical empty-trie root.
//
// Empty objects are retained on commit so that zero-balance anchors for
// precompiled contracts survive into the committed state.
func Root(accounts Accounts) (common.Hash, error) {
	db := rawdb.NewMemoryDatabase()
	statedb, err := state.New(common.Hash{}, state.NewDatabase(db), nil)
	if err != nil {
		return common.Hash{}, err
	}
	for addr, acc := range accounts {
		if acc.Balance != nil {
			statedb.AddBalance(addr, acc.Balance)
		}
		statedb.SetNonce(addr, acc.Nonce)
		if len(acc.Code) > 0 {
			statedb.SetCode(addr, acc.Code)
		}
		for key, value := range acc.Storage {
			statedb.SetState(addr, key, value)
		}
	}
	return statedb.IntermediateRoot(false), nil
}
