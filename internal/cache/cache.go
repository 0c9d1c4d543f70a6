// Package cache memoizes md.Convert results on disk, keyed by everything
// that can change the output: the renderer kind, the sorted set of
// extension names in effect, and the input bytes themselves. Grounded on
// the teacher's pkg/store (src.elv.sh/pkg/store), which opens a
// go.etcd.io/bbolt database, creates its buckets up front, and wraps every
// access in a db.Update/db.View closure; this package keeps that shape
// with a single bucket instead of one per concern.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("conversions")

// Cache is a bbolt-backed store of previously rendered conversions.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: initialize bucket: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database file.
func (c *Cache) Close() error { return c.db.Close() }

// Key identifies one (parser config, renderer, input) combination.
type Key struct {
	Renderer   string
	Extensions []string
	Input      []byte
}

func (k Key) digest() []byte {
	h := sha256.New()
	h.Write([]byte(k.Renderer))
	h.Write([]byte{0})
	exts := append([]string(nil), k.Extensions...)
	sort.Strings(exts)
	h.Write([]byte(strings.Join(exts, ",")))
	h.Write([]byte{0})
	h.Write(k.Input)
	return h.Sum(nil)
}

// Get returns a previously stored result for key, if any.
func (c *Cache) Get(key Key) (result string, ok bool, err error) {
	digest := key.digest()
	err = c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(digest)
		if v == nil {
			return nil
		}
		ok = true
		result = string(v)
		return nil
	})
	return result, ok, err
}

// Put stores result under key, overwriting any previous entry.
func (c *Cache) Put(key Key, result string) error {
	digest := key.digest()
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(digest, []byte(result))
	})
}

// Stats reports how many entries are currently stored, for -v diagnostics.
func (c *Cache) Stats() (entries int, err error) {
	err = c.db.View(func(tx *bolt.Tx) error {
		entries = tx.Bucket(bucketName).Stats().KeyN
		return nil
	})
	return entries, err
}
