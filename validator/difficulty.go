package validator

import (
	"encoding/hex"

	"github.com/holiman/uint256"

	"minichain/hasher"
)

// MeetsDifficulty reports whether a hex digest has at least `difficulty`
// leading zero characters. The check is numeric: the digest value must be
// below 2^(256 - 4*difficulty), which is exactly the leading-zeros condition
// for a 64-char digest. A digest that is not 64 hex chars (including any
// sentinel value from a broken hash service) never passes.
func MeetsDifficulty(hash string, difficulty int) bool {
	if len(hash) != hasher.DigestHexLen {
		return false
	}
	raw, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	if difficulty <= 0 {
		return true
	}
	if difficulty > hasher.DigestHexLen {
		return false
	}

	value := new(uint256.Int).SetBytes(raw)
	target := uint256.NewInt(1)
	target.Lsh(target, uint(256-4*difficulty))
	return value.Lt(target)
}
