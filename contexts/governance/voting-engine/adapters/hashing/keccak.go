package hashing

import (
	"github.com/ethereum/go-ethereum/crypto"

	"govledger/contexts/governance/voting-engine/ports"
)

// Keccak digests proposal payloads with Keccak-256, matching the hashing the
// surrounding ledger stack uses elsewhere.
type Keccak struct{}

func (Keccak) Digest(data []byte) string {
	return crypto.Keccak256Hash(data).Hex()
}

var _ ports.PayloadHasher = Keccak{}
