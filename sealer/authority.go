package sealer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
)

// BasicAuthorityName is the registry name of the proof-of-authority engine.
const BasicAuthorityName = "BasicAuthority"

// BasicAuthority is a proof-of-authority engine: blocks are signed by a
// fixed set of authorities instead of carrying a proof-of-work seal, so the
// genesis header has no extra seal fields. The authority set is read from
// the "authorities" chain parameter, a comma-separated address list.
type BasicAuthority struct {
	Authorities []common.Address
}

func init() {
	Register(BasicAuthorityName, func() Engine { return new(BasicAuthority) })
}

func (a *BasicAuthority) Name() string { return BasicAuthorityName }

func (a *BasicAuthority) SetParams(src ParamSource) error {
	raw, ok := src.Param("authorities")
	if !ok || raw == "" {
		return nil
	}
	for _, entry := range strings.Split(raw, ",") {
		b := common.FromHex(strings.TrimSpace(entry))
		if len(b) != common.AddressLength {
			return fmt.Errorf("seal engine param authorities: %q is not a 20-byte address", entry)
		}
		a.Authorities = append(a.Authorities, common.BytesToAddress(b))
	}
	return nil
}

func (a *BasicAuthority) SealFields() int { return 0 }

func (a *BasicAuthority) SealRLP() []byte { return nil }

func (a *BasicAuthority) VerifySeal(sealRLP []byte) error {
	if n, err := rlp.CountValues(sealRLP); err != nil || n != 0 {
		return fmt.Errorf("authority genesis seal must be empty")
	}
	return nil
}
