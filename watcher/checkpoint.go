package watcher

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var heightKey = []byte("height")

// Checkpoint persists the index of the last processed block.
type Checkpoint struct {
	db *leveldb.DB
}

// OpenCheckpoint opens (or creates) LevelDB checkpoint database at path.
func OpenCheckpoint(path string) (*Checkpoint, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint database: %w", err)
	}
	return &Checkpoint{db: db}, nil
}

// NewCheckpoint creates Checkpoint over the given LevelDB storage.
func NewCheckpoint(stor storage.Storage) (*Checkpoint, error) {
	db, err := leveldb.Open(stor, nil)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint database: %w", err)
	}
	return &Checkpoint{db: db}, nil
}

// Height returns the last processed block index. The flag is false if no
// block was processed yet.
func (c *Checkpoint) Height() (uint32, bool, error) {
	data, err := c.db.Get(heightKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if len(data) != 4 {
		return 0, false, fmt.Errorf("invalid checkpoint length %d", len(data))
	}
	return binary.LittleEndian.Uint32(data), true, nil
}

// Store saves the last processed block index.
func (c *Checkpoint) Store(height uint32) error {
	var data [4]byte
	binary.LittleEndian.PutUint32(data[:], height)
	return c.db.Put(heightKey, data[:], nil)
}

// Close closes the database.
func (c *Checkpoint) Close() error {
	return c.db.Close()
}
