package sealer

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
)

// EthashName is the registry name of the proof-of-work engine.
const EthashName = "Ethash"

// Ethash is the proof-of-work seal engine. Its seal is two header fields:
// the mix hash and the 8-byte nonce.
type Ethash struct {
	// difficulty schedule parameters, read from the chain params bag
	MinimumDifficulty      *big.Int
	DifficultyBoundDivisor *big.Int
}

func init() {
	Register(EthashName, func() Engine { return new(Ethash) })
}

func (e *Ethash) Name() string { return EthashName }

// SetParams reads the proof-of-work difficulty parameters from the bag.
// Both are optional; unknown keys are left for other consumers.
func (e *Ethash) SetParams(src ParamSource) error {
	var err error
	if e.MinimumDifficulty, err = optionalBig(src, "minimumDifficulty"); err != nil {
		return err
	}
	if e.DifficultyBoundDivisor, err = optionalBig(src, "difficultyBoundDivisor"); err != nil {
		return err
	}
	return nil
}

func (e *Ethash) SealFields() int { return 2 }

// SealRLP returns the default seal: a zero mix hash followed by a zero
// nonce, in that order.
func (e *Ethash) SealRLP() []byte {
	mix, _ := rlp.EncodeToBytes(common.Hash{})
	nonce, _ := rlp.EncodeToBytes(types.BlockNonce{})
	return append(mix, nonce...)
}

// VerifySeal checks the seal shape: exactly two items, a 32-byte mix hash
// and an 8-byte nonce.
func (e *Ethash) VerifySeal(sealRLP []byte) error {
	if n, err := rlp.CountValues(sealRLP); err != nil || n != 2 {
		return fmt.Errorf("ethash seal must be 2 items")
	}
	var mix common.Hash
	rest, err := decodeSealItem(sealRLP, &mix)
	if err != nil {
		return fmt.Errorf("ethash mix hash: %v", err)
	}
	var nonce types.BlockNonce
	if _, err := decodeSealItem(rest, &nonce); err != nil {
		return fmt.Errorf("ethash nonce: %v", err)
	}
	return nil
}

// decodeSealItem decodes the first raw item of a seal into val and returns
// the remaining bytes.
func decodeSealItem(sealRLP []byte, val interface{}) ([]byte, error) {
	_, _, rest, err := rlp.Split(sealRLP)
	if err != nil {
		return nil, err
	}
	if err := rlp.DecodeBytes(sealRLP[:len(sealRLP)-len(rest)], val); err != nil {
		return nil, err
	}
	return rest, nil
}

func optionalBig(src ParamSource, key string) (*big.Int, error) {
	s, ok := src.Param(key)
	if !ok {
		return nil, nil
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("seal engine param %s: malformed integer %q", key, s)
	}
	return v, nil
}
