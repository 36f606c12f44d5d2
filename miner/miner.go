// Package miner runs the proof-of-work search: given the chain's tip and a
// payload, it looks for a nonce whose canonical-form hash meets the
// difficulty target.
//
// One miner admits one session at a time, enforced with an atomic
// compare-and-swap. The search yields at fixed attempt intervals: each yield
// point checks the caller's context and publishes a progress event, so a
// long search stays cancellable and observable without blocking anyone.
// The block timestamp is sampled once per session, not per attempt, so the
// winning preimage is reproducible from the finalized block alone.
package miner

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"minichain/block"
	"minichain/chain"
	"minichain/errors"
	"minichain/events"
	"minichain/hasher"
	"minichain/logx"
	"minichain/monitoring"
	"minichain/utils"
	"minichain/validator"
)

const (
	DefaultAttemptCeiling = 10_000_000
	DefaultYieldInterval  = 50_000
)

// State of the mining session machine
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
)

// Options tune a miner's search loop
type Options struct {
	// AttemptCeiling is the number of nonce attempts after which a session
	// fails with mining_timeout. Zero selects the default.
	AttemptCeiling uint64
	// YieldInterval is the attempt count between yield points. Zero selects
	// the default.
	YieldInterval uint64
}

func (o Options) withDefaults() Options {
	if o.AttemptCeiling == 0 {
		o.AttemptCeiling = DefaultAttemptCeiling
	}
	if o.YieldInterval == 0 {
		o.YieldInterval = DefaultYieldInterval
	}
	return o
}

type Miner struct {
	chain  *chain.Chain
	hasher hasher.Hasher
	opts   Options
	bus    *events.EventBus

	searching atomic.Bool
}

func New(c *chain.Chain, h hasher.Hasher, opts Options) *Miner {
	return &Miner{
		chain:  c,
		hasher: h,
		opts:   opts.withDefaults(),
	}
}

// SetEventBus attaches a bus for session lifecycle and progress events
func (m *Miner) SetEventBus(bus *events.EventBus) {
	m.bus = bus
}

// State reports whether a session is in flight
func (m *Miner) State() State {
	if m.searching.Load() {
		return StateSearching
	}
	return StateIdle
}

func (m *Miner) publish(event events.LedgerEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// Mine searches for a nonce satisfying the difficulty and returns the
// finalized block. The miner never appends: the caller owns the
// Chain.Append boundary, which is what keeps the chain single-writer.
//
// The chain is untouched on every error path. Cancellation is cooperative:
// a cancelled context takes effect at the next yield point.
func (m *Miner) Mine(ctx context.Context, payload string, difficulty int) (*block.Block, error) {
	if payload == "" {
		return nil, errors.NewEmptyPayload()
	}
	if !m.searching.CompareAndSwap(false, true) {
		return nil, errors.NewMinerBusy()
	}
	defer m.searching.Store(false)

	tip := m.chain.Tip()
	nextIndex := tip.Index + 1
	timestamp := time.Now().UnixMilli() // sampled once per session
	start := time.Now()

	logx.Info("MINER", fmt.Sprintf("Starting session | index=%d difficulty=%d prev=%s", nextIndex, difficulty, utils.ShortenLog(tip.Hash)))
	m.publish(events.NewMiningStarted(nextIndex, payload, difficulty))

	var attempts uint64
	for nonce := uint64(0); ; nonce++ {
		if attempts >= m.opts.AttemptCeiling {
			elapsed := time.Since(start)
			m.finish(monitoring.MiningTimedOut, attempts, elapsed)
			logx.Warn("MINER", fmt.Sprintf("Session timed out | index=%d attempts=%d elapsed=%.2fs", nextIndex, attempts, elapsed.Seconds()))
			return nil, errors.NewMiningTimeout(attempts, elapsed.Seconds())
		}

		if attempts > 0 && attempts%m.opts.YieldInterval == 0 {
			select {
			case <-ctx.Done():
				elapsed := time.Since(start)
				m.finish(monitoring.MiningCancelled, attempts, elapsed)
				logx.Info("MINER", fmt.Sprintf("Session cancelled | index=%d attempts=%d", nextIndex, attempts))
				return nil, errors.NewMiningCancelled(attempts, elapsed.Seconds())
			default:
			}
			elapsed := time.Since(start)
			m.publish(events.NewMiningProgress(nextIndex, attempts, elapsed))
			logx.Debug("MINER", fmt.Sprintf("Searching | index=%d attempts=%d rate=%s", nextIndex, attempts, utils.HashRate(attempts, elapsed)))
		}

		digest, err := m.hasher.Hash(block.CanonicalForm(nextIndex, timestamp, payload, nonce, tip.Hash))
		if err != nil {
			m.finish(monitoring.MiningFailed, attempts, time.Since(start))
			logx.Error("MINER", "Hash service failed mid-session: ", err)
			return nil, errors.NewHashServiceUnavailable(err.Error())
		}
		attempts++

		if validator.MeetsDifficulty(digest, difficulty) {
			elapsed := time.Since(start)
			b := &block.Block{
				Index:      nextIndex,
				Timestamp:  timestamp,
				Payload:    payload,
				Nonce:      nonce,
				PrevHash:   tip.Hash,
				Hash:       digest,
				Difficulty: difficulty,
			}
			m.finish(monitoring.MiningFound, attempts, elapsed)
			monitoring.IncreaseBlocksMined()
			logx.Info("MINER", fmt.Sprintf("Found nonce | index=%d nonce=%d attempts=%d hash=%s rate=%s",
				nextIndex, nonce, attempts, utils.ShortenLog(digest), utils.HashRate(attempts, elapsed)))
			m.publish(events.NewBlockMined(b, attempts))
			return b, nil
		}
	}
}

func (m *Miner) finish(outcome monitoring.MiningOutcome, attempts uint64, elapsed time.Duration) {
	monitoring.AddMiningAttempts(attempts)
	monitoring.RecordMiningDuration(elapsed)
	monitoring.RecordMiningSession(outcome)
}
