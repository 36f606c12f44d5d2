package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

type sha256Hasher struct{}

func (h *sha256Hasher) Hash(input string) (string, error) {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:]), nil
}

func (h *sha256Hasher) Name() string {
	return AlgoSHA256
}
