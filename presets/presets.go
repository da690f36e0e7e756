// Package presets bundles built-in chain specification documents into named
// profiles so operators and tests can spin up a network without writing a
// spec file from scratch. Each preset is a complete JSON chain spec that
// chainspec.LoadConfig accepts as-is.
//
// Usage:
//
//	doc, err := presets.ByName("noproof-test")
//	params, err := chainspec.LoadConfig([]byte(doc), common.Hash{}, vm.PrecompiledContractsBerlin)
package presets

import "fmt"

// NoProofTest is the minimal sealless network: empty state, no seal fields.
// Handy for unit tests and throwaway private chains.
const NoProofTest = `{
	"sealEngine": "NoProof",
	"params": {
		"accountStartNonce": "0x00",
		"maximumExtraDataSize": "0x20",
		"blockReward": "0x00"
	},
	"genesis": {
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"author": "0x0000000000000000000000000000000000000000",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x"
	},
	"accounts": {}
}`

// EthashDev is a proof-of-work developer network: frontier-style genesis
// seal (zero mix hash, nonce 0x42), the four classic precompiles anchored
// with a one-wei balance, and a funded developer account.
const EthashDev = `{
	"sealEngine": "Ethash",
	"params": {
		"accountStartNonce": "0x00",
		"maximumExtraDataSize": "0x20",
		"blockReward": "0x4563918244f40000",
		"minimumDifficulty": "0x020000",
		"difficultyBoundDivisor": "0x0800"
	},
	"genesis": {
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"coinbase": "0x0000000000000000000000000000000000000000",
		"difficulty": "0x020000",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x",
		"mixhash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"nonce": "0x0000000000000042"
	},
	"accounts": {
		"0x0000000000000000000000000000000000000001": { "precompiled": { "name": "ecrecover" }, "balance": "1" },
		"0x0000000000000000000000000000000000000002": { "precompiled": { "name": "sha256" }, "balance": "1" },
		"0x0000000000000000000000000000000000000003": { "precompiled": { "name": "ripemd160" }, "balance": "1" },
		"0x0000000000000000000000000000000000000004": { "precompiled": { "name": "identity" }, "balance": "1" },
		"0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0": { "balance": "0x200000000000000000000" }
	}
}`

// AuthorityDev is a proof-of-authority developer network with a single
// authority and a funded account. The genesis carries no seal fields.
const AuthorityDev = `{
	"sealEngine": "BasicAuthority",
	"params": {
		"accountStartNonce": "0x00",
		"maximumExtraDataSize": "0x20",
		"blockReward": "0x00",
		"authorities": "0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0"
	},
	"genesis": {
		"parentHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
		"author": "0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0",
		"gasLimit": "0x2fefd8",
		"timestamp": "0x00",
		"extraData": "0x"
	},
	"accounts": {
		"0x5ad54c5d79e94e8e8bbcbf5d6a47dbcd7696a1f0": { "balance": "0x200000000000000000000" }
	}
}`

// ByName looks up a preset spec document by its string identifier. Returns
// an error if the name is unrecognized, so CLI flags like --preset can fail
// with the list of valid choices.
func ByName(name string) (string, error) {
	switch name {
	case "noproof-test":
		return NoProofTest, nil
	case "ethash-dev":
		return EthashDev, nil
	case "authority-dev":
		return AuthorityDev, nil
	default:
		return "", fmt.Errorf("unknown preset: %q (valid: %v)", name, Names())
	}
}

// Names returns the available preset identifiers.
func Names() []string {
	return []string{"authority-dev", "ethash-dev", "noproof-test"}
}
