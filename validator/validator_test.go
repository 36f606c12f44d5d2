package validator_test

import (
	"context"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minichain/block"
	"minichain/chain"
	"minichain/errors"
	"minichain/hasher"
	"minichain/miner"
	"minichain/validator"
)

func newHasher(t *testing.T) hasher.Hasher {
	t.Helper()
	h, err := hasher.New(hasher.AlgoSHA256)
	require.NoError(t, err)
	return h
}

func mineOne(t *testing.T, c *chain.Chain, h hasher.Hasher, payload string, difficulty int) *block.Block {
	t.Helper()
	m := miner.New(c, h, miner.Options{})
	b, err := m.Mine(context.Background(), payload, difficulty)
	require.NoError(t, err)
	require.NoError(t, c.Append(b))
	return b
}

func TestVerifyChainGenesisOnly(t *testing.T) {
	h := newHasher(t)
	c := chain.New()

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "0", c.Tip().PrevHash)
	assert.NoError(t, validator.VerifyChain(c, h))
}

func TestVerifyChainAfterMining(t *testing.T) {
	h := newHasher(t)
	c := chain.New()

	mineOne(t, c, h, "first", 2)
	mineOne(t, c, h, "second", 1)

	require.NoError(t, validator.VerifyChain(c, h))
	// Validation is pure: a second run over the unchanged chain agrees
	require.NoError(t, validator.VerifyChain(c, h))
}

func TestVerifyChainMixedDifficulties(t *testing.T) {
	h := newHasher(t)
	c := chain.New()

	low := mineOne(t, c, h, "easy block", 1)
	high := mineOne(t, c, h, "harder block", 3)

	assert.Equal(t, 1, low.Difficulty)
	assert.Equal(t, 3, high.Difficulty)
	// Each block is checked against its own recorded difficulty, not the
	// one in force for the latest block
	assert.NoError(t, validator.VerifyChain(c, h))
}

func TestTamperingIsDetected(t *testing.T) {
	h := newHasher(t)

	f := fuzz.New()
	var suffix string
	f.Fuzz(&suffix)

	tampers := []struct {
		name   string
		mutate func(b *block.Block)
		check  errors.ValidationCheck
	}{
		{"payload", func(b *block.Block) { b.Payload = "altered " + suffix }, errors.CheckHashMismatch},
		{"nonce", func(b *block.Block) { b.Nonce++ }, errors.CheckHashMismatch},
		{"timestamp", func(b *block.Block) { b.Timestamp++ }, errors.CheckHashMismatch},
		{"prev hash", func(b *block.Block) { b.PrevHash = "00" + b.PrevHash[2:] }, errors.CheckLinkage},
		{"index", func(b *block.Block) { b.Index = 5 }, errors.CheckLinkage},
	}

	for _, tamper := range tampers {
		t.Run(tamper.name, func(t *testing.T) {
			c := chain.New()
			mined := mineOne(t, c, h, "honest payload", 2)
			tamper.mutate(mined)

			err := validator.VerifyChain(c, h)
			require.Error(t, err)

			verr, ok := err.(*errors.ValidationError)
			require.True(t, ok, "want *errors.ValidationError, got %T", err)
			assert.Equal(t, tamper.check, verr.Check)
		})
	}
}

func TestVerifyBlockWrongDifficulty(t *testing.T) {
	h := newHasher(t)
	c := chain.New()
	mined := mineOne(t, c, h, "payload", 1)

	// A block honestly mined at difficulty 1 is overwhelmingly unlikely to
	// satisfy difficulty 8; verification against the stricter target fails
	// with a proof-of-work error while the block itself is untampered
	if validator.MeetsDifficulty(mined.Hash, 8) {
		t.Skip("freak hash satisfied difficulty 8")
	}
	err := validator.VerifyBlock(mined, c.Block(0).Hash, 8, h)
	require.Error(t, err)
	verr, ok := err.(*errors.ValidationError)
	require.True(t, ok)
	assert.Equal(t, errors.CheckProofOfWork, verr.Check)
}

func TestGenesisExemptFromProofOfWork(t *testing.T) {
	h := newHasher(t)
	g := block.Genesis()

	// Genesis carries no leading-zero proof but still must pass the hash
	// recomputation check at difficulty 0
	require.NoError(t, validator.VerifyBlock(g, block.GenesisPrevHash, 0, h))

	g.Payload = "rewritten history"
	err := validator.VerifyBlock(g, block.GenesisPrevHash, 0, h)
	require.Error(t, err)
	verr, ok := err.(*errors.ValidationError)
	require.True(t, ok)
	assert.Equal(t, errors.CheckHashMismatch, verr.Check)
}
