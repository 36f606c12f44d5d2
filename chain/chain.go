// Package chain owns the ordered block sequence and the append contract.
// A chain is never empty: construction seeds the genesis block, and the only
// mutation is appending a candidate that extends the current tip.
package chain

import (
	"fmt"
	"sync"

	"minichain/block"
	"minichain/blockstore"
	"minichain/errors"
	"minichain/events"
	"minichain/logx"
	"minichain/monitoring"
	"minichain/utils"
)

type Chain struct {
	mu     sync.RWMutex
	blocks []*block.Block

	store *blockstore.BlockStore // optional persistence
	bus   *events.EventBus       // optional event publishing
}

// New creates an in-memory chain containing only the genesis block
func New() *Chain {
	return &Chain{blocks: []*block.Block{block.Genesis()}}
}

// NewWithStore creates a chain persisted through the given store. An empty
// store is seeded with the genesis block; a non-empty store is reloaded from
// index 0 up to its latest marker.
func NewWithStore(store *blockstore.BlockStore) (*Chain, error) {
	c := &Chain{store: store}

	latest, ok, err := store.LatestIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to read latest index: %w", err)
	}
	if !ok {
		genesis := block.Genesis()
		if err := store.PutBlock(genesis); err != nil {
			return nil, fmt.Errorf("failed to seed genesis: %w", err)
		}
		c.blocks = []*block.Block{genesis}
		logx.Info("CHAIN", "Initialized new chain with genesis block")
		return c, nil
	}

	blocks := make([]*block.Block, 0, latest+1)
	for i := uint64(0); i <= latest; i++ {
		b, err := store.GetBlock(i)
		if err != nil {
			return nil, fmt.Errorf("failed to load block %d: %w", i, err)
		}
		if b == nil {
			return nil, fmt.Errorf("block %d missing from store, chain truncated", i)
		}
		blocks = append(blocks, b)
	}
	c.blocks = blocks
	logx.Info("CHAIN", fmt.Sprintf("Reloaded chain from store | height=%d tip=%s", latest, utils.ShortenLog(blocks[latest].Hash)))
	return c, nil
}

// SetEventBus attaches a bus for BlockAppended events
func (c *Chain) SetEventBus(bus *events.EventBus) {
	c.bus = bus
}

// Tip returns the last block. It never fails: the chain always holds at
// least genesis.
func (c *Chain) Tip() *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.blocks[len(c.blocks)-1]
}

// Len returns the number of blocks, genesis included
func (c *Chain) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.blocks)
}

// Block returns the block at the given index, or nil when out of range
func (c *Chain) Block(index uint64) *block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[index]
}

// Blocks returns a snapshot of the whole sequence
func (c *Chain) Blocks() []*block.Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*block.Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Append admits a candidate as the new tip. It succeeds only when the
// candidate's index and previous hash match the current tip; on failure the
// chain is unchanged and a chain_disconnected error is returned.
func (c *Chain) Append(candidate *block.Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tip := c.blocks[len(c.blocks)-1]
	if candidate.Index != tip.Index+1 {
		return errors.NewChainDisconnected(fmt.Sprintf("expected index %d, got %d", tip.Index+1, candidate.Index))
	}
	if candidate.PrevHash != tip.Hash {
		return errors.NewChainDisconnected(fmt.Sprintf("expected prev hash %s, got %s", utils.ShortenLog(tip.Hash), utils.ShortenLog(candidate.PrevHash)))
	}

	if c.store != nil {
		if err := c.store.PutBlock(candidate); err != nil {
			return err
		}
	}

	c.blocks = append(c.blocks, candidate)
	monitoring.SetChainHeight(candidate.Index)

	logx.Info("CHAIN", fmt.Sprintf("Appended block index=%d hash=%s", candidate.Index, utils.ShortenLog(candidate.Hash)))

	if c.bus != nil {
		c.bus.Publish(events.NewBlockAppended(candidate))
	}
	return nil
}
