package chainspec

import (
	"github.com/tessera-chain/go-chainspec/sealer"
)

// CreateSealEngine resolves the configured consensus engine from the sealer
// registry and binds the chain parameters to it. If the config supplied no
// seal (SealRLP empty), the engine's defaults are back-filled onto the
// params so assembly has a complete seal to splice in.
func (p *ChainParams) CreateSealEngine() (sealer.Engine, error) {
	engine, err := sealer.Create(p.SealEngineName)
	if err != nil {
		return nil, &ConfigError{Field: "sealEngine", Reason: err.Error()}
	}
	if err := engine.SetParams(p); err != nil {
		return nil, &ConfigError{Field: "params", Reason: err.Error()}
	}
	if len(p.SealRLP) == 0 {
		p.SealFields = engine.SealFields()
		p.SealRLP = engine.SealRLP()
	}
	return engine, nil
}
