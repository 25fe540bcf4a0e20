package helixmind

import (
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v3"
)

// cacheTTL is how long remote API responses are reused before
// being fetched again
const cacheTTL = 24 * time.Hour

// Cache is an on-disk response cache in front of the KEGG and Entrez
// clients so repeated lookups don't re-hit the public APIs.
type Cache struct {
	db *badger.DB
}

// OpenCache opens (or creates) the cache at dir
func OpenCache(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Get returns the cached value for key and whether it was present
func (c *Cache) Get(key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores val under key with the cache TTL. Failures are ignored:
// the cache is an optimization, never a source of errors.
func (c *Cache) Set(key string, val []byte) {
	if c == nil {
		return
	}

	c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), val).WithTTL(cacheTTL)
		return txn.SetEntry(e)
	})
}

// Close releases the cache's lock on its directory
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}
