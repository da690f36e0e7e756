// Package sealer provides the pluggable consensus seal engines and the
// registry that resolves them by name.
//
// A seal engine owns the consensus-specific trailing header fields of a
// block ("seal fields"): how many there are, their default encoding for a
// freshly built genesis, and whether a given seal is well formed. Engines
// are registered under the name used by the chain spec's "sealEngine" key
// and resolved once at startup.
//
// Usage:
//
//	engine, err := sealer.Create("Ethash")
//	err = engine.SetParams(params)
//	n, seal := engine.SealFields(), engine.SealRLP()
package sealer

import (
	"fmt"
	"sort"
)

// ParamSource is the view of the chain parameters an engine binds to: the
// engine selector plus the open-ended bag of engine-specific parameters.
type ParamSource interface {
	// EngineName returns the configured seal engine selector.
	EngineName() string
	// Param looks up an engine-specific parameter by key.
	Param(key string) (string, bool)
}

// Engine is one consensus seal strategy.
type Engine interface {
	// Name returns the registry name of the engine.
	Name() string
	// SetParams binds the chain parameters to the engine. Engines read the
	// keys they recognize from the bag and ignore the rest.
	SetParams(src ParamSource) error
	// SealFields returns the number of trailing seal items the engine puts
	// in a header.
	SealFields() int
	// SealRLP returns the canonical default encoding of the seal items, as
	// exactly SealFields concatenated raw values. Engines without seal
	// fields return nil.
	SealRLP() []byte
	// VerifySeal checks that sealRLP is a well-formed seal for this engine.
	VerifySeal(sealRLP []byte) error
}

// Factory constructs a fresh engine instance.
type Factory func() Engine

var registry = make(map[string]Factory)

// Register makes an engine available under name. Later registrations of the
// same name replace earlier ones.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// Create resolves an engine by its registry name.
func Create(name string) (Engine, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown seal engine %q (registered: %v)", name, Names())
	}
	return factory(), nil
}

// Names returns the registered engine names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
