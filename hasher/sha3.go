package hasher

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

type sha3Hasher struct{}

func (h *sha3Hasher) Hash(input string) (string, error) {
	sum := sha3.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

func (h *sha3Hasher) Name() string {
	return AlgoSHA3
}
