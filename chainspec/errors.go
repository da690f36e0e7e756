package chainspec

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ConfigError reports a malformed or missing piece of the declarative chain
// specification. It is recoverable in the sense that the caller can reject
// startup with a clear message and ask the operator to fix the document.
type ConfigError struct {
	Field  string // the config key (or dotted path) that failed
	Reason string // what was wrong with it
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("chain spec: %s: %s", e.Field, e.Reason)
}

// IntegrityError reports that a decoded genesis block does not reproduce the
// same bytes when re-assembled from its structured form. It is always fatal:
// accepting a divergent genesis would fork the network, so callers must abort
// rather than retry or silently substitute the decoded values.
type IntegrityError struct {
	Computed common.Hash // header hash of the block we re-assembled
	Expected common.Hash // header hash of the block we were given
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("genesis block does not round-trip: computed header %s, expected %s",
		e.Computed.Hex(), e.Expected.Hex())
}

// StorageError wraps a failure of the underlying trie/commitment layer.
// Genesis construction cannot proceed without a working commitment layer,
// so this is fatal at this layer and propagated uninterpreted.
type StorageError struct {
	Op  string // the commitment operation that failed
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("state commitment: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
