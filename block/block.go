package block

import "fmt"

// Block is one ledger entry. It is immutable once finalized: the genesis
// block is a compile-time constant and every other block comes out of a
// completed mining session.
type Block struct {
	Index      uint64 `json:"index"`      // Position in the chain, genesis = 0
	Timestamp  int64  `json:"timestamp"`  // Creation instant, epoch milliseconds
	Payload    string `json:"payload"`    // Committed content
	Nonce      uint64 `json:"nonce"`      // Proof-of-work witness
	PrevHash   string `json:"prev_hash"`  // Hash of the preceding block, "0" for genesis
	Hash       string `json:"hash"`       // Digest of the canonical form
	Difficulty int    `json:"difficulty"` // Difficulty in force when this block was mined
}

// Genesis block constants. Every deployment ships the same values so chains
// started by different builds produce byte-identical genesis blocks.
const (
	GenesisTimestamp int64  = 1704067200000
	GenesisPayload   string = "Genesis Block"
	GenesisPrevHash  string = "0"
	GenesisHash      string = "438f7035d33b75e170ea1c15cc1683ecd63f607b730757cf29f7360b23596882"
)

// Genesis returns the fixed first block of every chain. It is a constant,
// never mined at runtime, and exempt from the proof-of-work check.
func Genesis() *Block {
	return &Block{
		Index:      0,
		Timestamp:  GenesisTimestamp,
		Payload:    GenesisPayload,
		Nonce:      0,
		PrevHash:   GenesisPrevHash,
		Hash:       GenesisHash,
		Difficulty: 0,
	}
}

// CanonicalForm builds the exact preimage committed by a block's hash:
// index, timestamp, payload, nonce, previous hash, concatenated in that
// order with no separators. Mining and validation must agree on these bytes.
func CanonicalForm(index uint64, timestamp int64, payload string, nonce uint64, prevHash string) string {
	return fmt.Sprintf("%d%d%s%d%s", index, timestamp, payload, nonce, prevHash)
}

// Preimage returns the block's own canonical form.
func (b *Block) Preimage() string {
	return CanonicalForm(b.Index, b.Timestamp, b.Payload, b.Nonce, b.PrevHash)
}
