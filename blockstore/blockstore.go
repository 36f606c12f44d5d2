package blockstore

import (
	"encoding/binary"
	"fmt"

	"minichain/block"
	"minichain/jsonx"
	"minichain/logx"
	"minichain/utils"
)

// Database key prefixes
const (
	PrefixBlock        = "blk:"
	BlockMetaKeyLatest = "blk_meta:latest"
)

// BlockStore persists the chain's blocks by index on top of a
// DatabaseProvider. The chain is the single writer; the store does not
// re-check linkage.
type BlockStore struct {
	provider DatabaseProvider
}

func NewBlockStore(provider DatabaseProvider) *BlockStore {
	return &BlockStore{provider: provider}
}

func blockKey(index uint64) []byte {
	key := make([]byte, len(PrefixBlock)+8)
	copy(key, PrefixBlock)
	binary.BigEndian.PutUint64(key[len(PrefixBlock):], index)
	return key
}

// PutBlock stores a block and advances the latest-index marker atomically
func (bs *BlockStore) PutBlock(b *block.Block) error {
	data, err := jsonx.Marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal block %d: %w", b.Index, err)
	}

	latest := make([]byte, 8)
	binary.BigEndian.PutUint64(latest, b.Index)

	batch := bs.provider.Batch()
	batch.Put(blockKey(b.Index), data)
	batch.Put([]byte(BlockMetaKeyLatest), latest)
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to persist block %d: %w", b.Index, err)
	}

	logx.Debug("BLOCKSTORE", fmt.Sprintf("Stored block index=%d hash=%s", b.Index, utils.ShortenLog(b.Hash)))
	return nil
}

// GetBlock loads the block at the given index, or nil when absent
func (bs *BlockStore) GetBlock(index uint64) (*block.Block, error) {
	data, err := bs.provider.Get(blockKey(index))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var b block.Block
	if err := jsonx.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block %d: %w", index, err)
	}
	return &b, nil
}

// LatestIndex returns the highest stored block index. ok is false for an
// empty store.
func (bs *BlockStore) LatestIndex() (index uint64, ok bool, err error) {
	data, err := bs.provider.Get([]byte(BlockMetaKeyLatest))
	if err != nil {
		return 0, false, err
	}
	if len(data) != 8 {
		return 0, false, nil
	}
	return binary.BigEndian.Uint64(data), true, nil
}

func (bs *BlockStore) Close() error {
	return bs.provider.Close()
}
