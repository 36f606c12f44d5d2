// Package validator provides pure, side-effect-free verification of blocks
// and whole chains. Verification never mutates anything and is safe to run
// concurrently with mining.
package validator

import (
	"fmt"

	"minichain/block"
	"minichain/chain"
	"minichain/errors"
	"minichain/hasher"
	"minichain/utils"
)

// VerifyBlock checks a single block against the hash of its expected
// predecessor and the difficulty in force when it was mined. Three checks,
// in order: linkage, hash recomputation (tamper detection), proof-of-work.
// A difficulty of 0 skips the proof-of-work check, which is how the genesis
// block is verified.
func VerifyBlock(b *block.Block, expectedPrevHash string, difficulty int, h hasher.Hasher) error {
	if b.PrevHash != expectedPrevHash {
		return errors.NewValidationError(b.Index, errors.CheckLinkage,
			fmt.Sprintf("prev hash %s does not match predecessor hash %s", utils.ShortenLog(b.PrevHash), utils.ShortenLog(expectedPrevHash)))
	}

	digest, err := h.Hash(b.Preimage())
	if err != nil {
		return errors.NewHashServiceUnavailable(err.Error())
	}
	if digest != b.Hash {
		return errors.NewValidationError(b.Index, errors.CheckHashMismatch,
			fmt.Sprintf("stored hash %s does not match recomputed %s", utils.ShortenLog(b.Hash), utils.ShortenLog(digest)))
	}

	if difficulty > 0 && !MeetsDifficulty(b.Hash, difficulty) {
		return errors.NewValidationError(b.Index, errors.CheckProofOfWork,
			fmt.Sprintf("hash %s does not meet difficulty %d", utils.ShortenLog(b.Hash), difficulty))
	}
	return nil
}

// VerifyChain walks the chain from genesis and fails fast at the first
// broken link, tampered block or unsatisfied proof. Each block is checked
// against its own recorded difficulty, not any current global setting.
func VerifyChain(c *chain.Chain, h hasher.Hasher) error {
	blocks := c.Blocks()

	genesis := blocks[0]
	if genesis.Index != 0 || genesis.PrevHash != block.GenesisPrevHash {
		return errors.NewValidationError(genesis.Index, errors.CheckLinkage, "malformed genesis block")
	}
	// Genesis is exempt from proof-of-work but not from hash recomputation
	if err := VerifyBlock(genesis, block.GenesisPrevHash, 0, h); err != nil {
		return err
	}

	for i := 1; i < len(blocks); i++ {
		b := blocks[i]
		if b.Index != uint64(i) {
			return errors.NewValidationError(b.Index, errors.CheckLinkage,
				fmt.Sprintf("index %d at chain position %d", b.Index, i))
		}
		if err := VerifyBlock(b, blocks[i-1].Hash, b.Difficulty, h); err != nil {
			return err
		}
	}
	return nil
}
