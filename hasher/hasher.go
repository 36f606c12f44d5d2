// Package hasher provides the hashing primitive behind block mining and
// validation as an injected dependency. The factory fails fast when the
// requested algorithm is unknown, so a missing hash service can never be
// papered over with a sentinel digest.
package hasher

import (
	"fmt"

	"minichain/errors"
)

// DigestHexLen is the fixed hex length every conforming digest must have.
const DigestHexLen = 64

// Hasher maps an arbitrary string input to a fixed-length lowercase
// hexadecimal digest. Same input always yields same output.
type Hasher interface {
	Hash(input string) (string, error)
	Name() string
}

const (
	AlgoSHA256 = "sha256"
	AlgoSHA3   = "sha3"
)

// New returns the hasher for the given algorithm name. An empty name selects
// sha256. Unknown algorithms are surfaced immediately instead of at the first
// hash call inside a mining loop.
func New(algo string) (Hasher, error) {
	switch algo {
	case "", AlgoSHA256:
		return &sha256Hasher{}, nil
	case AlgoSHA3:
		return &sha3Hasher{}, nil
	}
	return nil, errors.NewHashServiceUnavailable(fmt.Sprintf("unknown algorithm %q", algo))
}
