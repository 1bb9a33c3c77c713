package blockcache

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Fingerprinter digests a loader argument list into a string that is
// appended to static logical keys. Argument lists that serialize identically
// must produce the same fingerprint.
type Fingerprinter interface {
	Fingerprint(args []any) (string, error)
}

// FingerprintFunc adapts a function to the Fingerprinter interface.
type FingerprintFunc func(args []any) (string, error)

func (f FingerprintFunc) Fingerprint(args []any) (string, error) {
	return f(args)
}

// KeccakFingerprinter serializes the argument list as JSON and hashes it with
// Keccak-256. encoding/json writes map keys in sorted order and struct fields
// in declaration order, so equal argument values always serialize the same way.
type KeccakFingerprinter struct{}

var _ Fingerprinter = KeccakFingerprinter{}

func (KeccakFingerprinter) Fingerprint(args []any) (string, error) {
	serializedArgs, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("can't serialize loader arguments: %w", err)
	}

	return crypto.Keccak256Hash(serializedArgs).Hex(), nil
}
