package events

import (
	"time"

	"minichain/block"
)

// EventType is an enum-like string type for ledger events
type EventType string

const (
	EventMiningStarted  EventType = "MiningStarted"
	EventMiningProgress EventType = "MiningProgress"
	EventBlockMined     EventType = "BlockMined"
	EventBlockAppended  EventType = "BlockAppended"
)

// LedgerEvent represents any event that occurs in the ledger
type LedgerEvent interface {
	Type() EventType
	Timestamp() time.Time
	BlockIndex() uint64
}

// MiningStarted event when a mining session begins its search
type MiningStarted struct {
	blockIndex uint64
	payload    string
	difficulty int
	timestamp  time.Time
}

func NewMiningStarted(blockIndex uint64, payload string, difficulty int) *MiningStarted {
	return &MiningStarted{
		blockIndex: blockIndex,
		payload:    payload,
		difficulty: difficulty,
		timestamp:  time.Now(),
	}
}

func (e *MiningStarted) Type() EventType      { return EventMiningStarted }
func (e *MiningStarted) Timestamp() time.Time { return e.timestamp }
func (e *MiningStarted) BlockIndex() uint64   { return e.blockIndex }
func (e *MiningStarted) Payload() string      { return e.payload }
func (e *MiningStarted) Difficulty() int      { return e.difficulty }

// MiningProgress event emitted at each yield point of the search loop
type MiningProgress struct {
	blockIndex uint64
	attempts   uint64
	elapsed    time.Duration
	timestamp  time.Time
}

func NewMiningProgress(blockIndex uint64, attempts uint64, elapsed time.Duration) *MiningProgress {
	return &MiningProgress{
		blockIndex: blockIndex,
		attempts:   attempts,
		elapsed:    elapsed,
		timestamp:  time.Now(),
	}
}

func (e *MiningProgress) Type() EventType        { return EventMiningProgress }
func (e *MiningProgress) Timestamp() time.Time   { return e.timestamp }
func (e *MiningProgress) BlockIndex() uint64     { return e.blockIndex }
func (e *MiningProgress) Attempts() uint64       { return e.attempts }
func (e *MiningProgress) Elapsed() time.Duration { return e.elapsed }

// BlockMined event when a session finds a satisfying nonce
type BlockMined struct {
	blk       *block.Block
	attempts  uint64
	timestamp time.Time
}

func NewBlockMined(blk *block.Block, attempts uint64) *BlockMined {
	return &BlockMined{
		blk:       blk,
		attempts:  attempts,
		timestamp: time.Now(),
	}
}

func (e *BlockMined) Type() EventType      { return EventBlockMined }
func (e *BlockMined) Timestamp() time.Time { return e.timestamp }
func (e *BlockMined) BlockIndex() uint64   { return e.blk.Index }
func (e *BlockMined) Block() *block.Block  { return e.blk }
func (e *BlockMined) Attempts() uint64     { return e.attempts }

// BlockAppended event when the chain accepts a candidate as the new tip
type BlockAppended struct {
	blk       *block.Block
	timestamp time.Time
}

func NewBlockAppended(blk *block.Block) *BlockAppended {
	return &BlockAppended{
		blk:       blk,
		timestamp: time.Now(),
	}
}

func (e *BlockAppended) Type() EventType      { return EventBlockAppended }
func (e *BlockAppended) Timestamp() time.Time { return e.timestamp }
func (e *BlockAppended) BlockIndex() uint64   { return e.blk.Index }
func (e *BlockAppended) Block() *block.Block  { return e.blk }
