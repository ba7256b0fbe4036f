package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
)

// KV is a generic key-value store. The replay-nonce cache below can run
// against either backend: MemDB for tests, LevelDB for a durable
// feesimd deployment.
type KV interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Close() error
}

// MemDB is an in-process KV store, used by tests and single-process
// deployments that accept losing replay-protection state on restart.
type MemDB struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemDB() *MemDB {
	return &MemDB{data: make(map[string][]byte)}
}

func (db *MemDB) Put(key []byte, value []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data[string(key)] = value
	return nil
}

func (db *MemDB) Get(key []byte) ([]byte, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	value, ok := db.data[string(key)]
	if !ok {
		return nil, fmt.Errorf("storage: key not found")
	}
	return value, nil
}

func (db *MemDB) Close() error { return nil }

// LevelDB is a durable KV store backing the replay-nonce cache across
// feesimd restarts.
type LevelDB struct {
	db *leveldb.DB
}

func NewLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open leveldb at %s: %w", path, err)
	}
	return &LevelDB{db: db}, nil
}

func (ldb *LevelDB) Put(key []byte, value []byte) error {
	return ldb.db.Put(key, value, nil)
}

func (ldb *LevelDB) Get(key []byte) ([]byte, error) {
	return ldb.db.Get(key, nil)
}

func (ldb *LevelDB) Close() error { return ldb.db.Close() }

// NonceCache rejects a bearer token's jti claim if it has already been
// seen, bounding the window an intercepted token can be replayed in.
// services/feeapi consults it from the auth middleware chain.
type NonceCache struct {
	kv KV
}

func NewNonceCache(kv KV) *NonceCache {
	return &NonceCache{kv: kv}
}

// SeenBefore records jti as used and reports whether it had already been
// recorded prior to this call.
func (c *NonceCache) SeenBefore(jti string, observedAt time.Time) (bool, error) {
	if jti == "" {
		return false, fmt.Errorf("storage: empty jti")
	}
	key := []byte("nonce:" + jti)
	if _, err := c.kv.Get(key); err == nil {
		return true, nil
	}
	return false, c.kv.Put(key, []byte(observedAt.UTC().Format(time.RFC3339)))
}
