package blockstore

import (
	"fmt"
	"path/filepath"
)

type DBVendor string

const (
	LevelDB DBVendor = "leveldb"
	Bolt    DBVendor = "bolt"
	Memory  DBVendor = "memory" // For tests
)

type DBOptions struct {
	Directory string
}

// CreateDBProvider opens the configured key-value backend
func CreateDBProvider(vendor DBVendor, options DBOptions) (DatabaseProvider, error) {
	switch vendor {
	case LevelDB:
		return NewLevelDBProvider(options.Directory)

	case Bolt:
		return NewBoltProvider(filepath.Join(options.Directory, "minichain.db"))

	case Memory:
		return NewMemoryProvider(), nil

	default:
		return nil, fmt.Errorf("unsupported db provider: %s", vendor)
	}
}
