package sealer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// NoProofName is the registry name of the sealless test engine.
const NoProofName = "NoProof"

// NoProof is the test engine: it adds no seal fields and accepts any chain
// parameters. Used by private and CI networks where blocks carry no proof.
type NoProof struct{}

func init() {
	Register(NoProofName, func() Engine { return NoProof{} })
}

func (NoProof) Name() string { return NoProofName }

func (NoProof) SetParams(src ParamSource) error { return nil }

func (NoProof) SealFields() int { return 0 }

func (NoProof) SealRLP() []byte { return nil }

func (NoProof) VerifySeal(sealRLP []byte) error {
	if n, err := rlp.CountValues(sealRLP); err != nil || n != 0 {
		return fmt.Errorf("no-proof seal must be empty")
	}
	return nil
}
