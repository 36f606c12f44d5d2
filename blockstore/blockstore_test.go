package blockstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minichain/block"
)

func testProviders(t *testing.T) map[string]DatabaseProvider {
	t.Helper()

	leveldb, err := NewLevelDBProvider(filepath.Join(t.TempDir(), "leveldb"))
	require.NoError(t, err)

	boltdb, err := NewBoltProvider(filepath.Join(t.TempDir(), "bolt.db"))
	require.NoError(t, err)

	return map[string]DatabaseProvider{
		"memory":  NewMemoryProvider(),
		"leveldb": leveldb,
		"bolt":    boltdb,
	}
}

func TestProviderContract(t *testing.T) {
	for name, provider := range testProviders(t) {
		t.Run(name, func(t *testing.T) {
			defer provider.Close()

			// Missing key reads as (nil, nil)
			value, err := provider.Get([]byte("missing"))
			require.NoError(t, err)
			assert.Nil(t, value)

			require.NoError(t, provider.Put([]byte("k"), []byte("v")))
			value, err = provider.Get([]byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), value)

			has, err := provider.Has([]byte("k"))
			require.NoError(t, err)
			assert.True(t, has)

			require.NoError(t, provider.Delete([]byte("k")))
			has, err = provider.Has([]byte("k"))
			require.NoError(t, err)
			assert.False(t, has)

			batch := provider.Batch()
			batch.Put([]byte("a"), []byte("1"))
			batch.Put([]byte("b"), []byte("2"))
			require.NoError(t, batch.Write())
			value, err = provider.Get([]byte("b"))
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), value)
		})
	}
}

func TestBlockStoreRoundTrip(t *testing.T) {
	bs := NewBlockStore(NewMemoryProvider())
	defer bs.Close()

	_, ok, err := bs.LatestIndex()
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no latest index")

	genesis := block.Genesis()
	require.NoError(t, bs.PutBlock(genesis))

	b := &block.Block{
		Index:      1,
		Timestamp:  1704067201000,
		Payload:    "stored payload",
		Nonce:      42,
		PrevHash:   genesis.Hash,
		Hash:       "000abc0000000000000000000000000000000000000000000000000000000000",
		Difficulty: 3,
	}
	require.NoError(t, bs.PutBlock(b))

	latest, ok, err := bs.LatestIndex()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), latest)

	loaded, err := bs.GetBlock(1)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, *b, *loaded)

	missing, err := bs.GetBlock(9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateDBProvider(t *testing.T) {
	provider, err := CreateDBProvider(Memory, DBOptions{})
	require.NoError(t, err)
	provider.Close()

	provider, err = CreateDBProvider(LevelDB, DBOptions{Directory: t.TempDir()})
	require.NoError(t, err)
	provider.Close()

	provider, err = CreateDBProvider(Bolt, DBOptions{Directory: t.TempDir()})
	require.NoError(t, err)
	provider.Close()

	_, err = CreateDBProvider("redis", DBOptions{})
	require.Error(t, err)
}
