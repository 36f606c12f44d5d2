package miner

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minichain/block"
	"minichain/chain"
	"minichain/errors"
	"minichain/events"
	"minichain/hasher"
	"minichain/validator"
)

// fixedHasher counts calls and always returns the same digest, so a search
// against a nonzero difficulty can never terminate on its own
type fixedHasher struct {
	calls  atomic.Uint64
	digest string
}

func (h *fixedHasher) Hash(input string) (string, error) {
	h.calls.Add(1)
	return h.digest, nil
}

func (h *fixedHasher) Name() string { return "fixed" }

// failingHasher simulates an unreachable out-of-process hash service
type failingHasher struct{}

func (h *failingHasher) Hash(input string) (string, error) {
	return "", errBackendDown
}

func (h *failingHasher) Name() string { return "failing" }

var errBackendDown = errors.NewError(errors.ErrCodeInternal, "hash backend down")

func neverMatching() *fixedHasher {
	return &fixedHasher{digest: strings.Repeat("f", hasher.DigestHexLen)}
}

func realHasher(t *testing.T) hasher.Hasher {
	t.Helper()
	h, err := hasher.New(hasher.AlgoSHA256)
	require.NoError(t, err)
	return h
}

func TestMineAndAppend(t *testing.T) {
	h := realHasher(t)
	c := chain.New()
	m := New(c, h, Options{})

	b, err := m.Mine(context.Background(), "hello", 3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b.Hash, "000"))
	assert.Equal(t, uint64(1), b.Index)
	assert.Equal(t, block.GenesisHash, b.PrevHash)
	assert.Equal(t, 3, b.Difficulty)

	// The digest stored on the block is the digest of its own fields
	recomputed, err := h.Hash(b.Preimage())
	require.NoError(t, err)
	assert.Equal(t, recomputed, b.Hash)

	require.NoError(t, c.Append(b))
	assert.Equal(t, 2, c.Len())
	assert.NoError(t, validator.VerifyChain(c, h))
	assert.Equal(t, StateIdle, m.State())
}

func TestEmptyPayloadNeverHashes(t *testing.T) {
	h := neverMatching()
	c := chain.New()
	m := New(c, h, Options{})

	_, err := m.Mine(context.Background(), "", 3)
	require.Error(t, err)
	assert.Equal(t, errors.LedgerErrorCode(errors.ErrCodeEmptyPayload), errors.CodeOf(err))
	assert.Equal(t, uint64(0), h.calls.Load(), "empty payload must be rejected before the search starts")
	assert.Equal(t, 1, c.Len())
}

func TestAttemptCeilingTimesOut(t *testing.T) {
	h := neverMatching()
	c := chain.New()
	m := New(c, h, Options{AttemptCeiling: 10, YieldInterval: 4})

	_, err := m.Mine(context.Background(), "adversarial", 5)
	require.Error(t, err)

	merr, ok := err.(*errors.MiningError)
	require.True(t, ok, "want *errors.MiningError, got %T", err)
	assert.Equal(t, errors.LedgerErrorCode(errors.ErrCodeMiningTimeout), merr.Code)
	assert.Equal(t, uint64(10), merr.Attempts)
	assert.GreaterOrEqual(t, merr.ElapsedSeconds, 0.0)
	assert.Equal(t, 1, c.Len(), "timed out session must leave the chain unmodified")
	assert.Equal(t, StateIdle, m.State())
}

func TestCancellationAtYieldPoint(t *testing.T) {
	h := neverMatching()
	c := chain.New()
	m := New(c, h, Options{AttemptCeiling: 1_000_000, YieldInterval: 25})

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // takes effect at the first yield boundary

	_, err := m.Mine(ctx, "payload", 5)
	require.Error(t, err)

	merr, ok := err.(*errors.MiningError)
	require.True(t, ok)
	assert.Equal(t, errors.LedgerErrorCode(errors.ErrCodeMiningCancelled), merr.Code)
	assert.Equal(t, uint64(25), merr.Attempts, "cancellation honored at the yield interval, not immediately")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, StateIdle, m.State())
}

func TestSingleSessionPerMiner(t *testing.T) {
	h := neverMatching()
	c := chain.New()
	m := New(c, h, Options{})

	m.searching.Store(true)
	defer m.searching.Store(false)

	_, err := m.Mine(context.Background(), "payload", 1)
	require.Error(t, err)
	assert.Equal(t, errors.LedgerErrorCode(errors.ErrCodeMinerBusy), errors.CodeOf(err))
	assert.Equal(t, StateSearching, m.State())
}

func TestHashServiceOutageAbortsSession(t *testing.T) {
	c := chain.New()
	m := New(c, &failingHasher{}, Options{})

	_, err := m.Mine(context.Background(), "payload", 3)
	require.Error(t, err)
	assert.Equal(t, errors.LedgerErrorCode(errors.ErrCodeHashServiceUnavailable), errors.CodeOf(err))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, StateIdle, m.State())
}

func TestSequentialSessionsAtDifferentDifficulties(t *testing.T) {
	h := realHasher(t)
	c := chain.New()
	m := New(c, h, Options{})

	first, err := m.Mine(context.Background(), "one", 1)
	require.NoError(t, err)
	require.NoError(t, c.Append(first))

	second, err := m.Mine(context.Background(), "two", 3)
	require.NoError(t, err)
	require.NoError(t, c.Append(second))

	assert.Equal(t, 1, first.Difficulty)
	assert.Equal(t, 3, second.Difficulty)
	assert.NoError(t, validator.VerifyChain(c, h))
}

func TestProgressEventsAtYieldPoints(t *testing.T) {
	h := neverMatching()
	c := chain.New()
	m := New(c, h, Options{AttemptCeiling: 100, YieldInterval: 20})

	bus := events.NewEventBus()
	m.SetEventBus(bus)
	_, ch := bus.Subscribe()

	_, err := m.Mine(context.Background(), "payload", 5)
	require.Error(t, err)

	var started, progress int
	for {
		select {
		case event := <-ch:
			switch event.Type() {
			case events.EventMiningStarted:
				started++
			case events.EventMiningProgress:
				progress++
			}
			continue
		default:
		}
		break
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, 4, progress, "one progress event per yield point before the ceiling")
}
