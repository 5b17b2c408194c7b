// Copyright 2025 Bloop16
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/bloop16/homestate/storage"
)

// Key prefix separating cache entries from any future data in the same DB.
const writeCachePrefix = "wstamp:"

// WriteCache implements storage.WriteCache on a Badger backend. Entries
// are written with Badger's native TTL, so expired stamps disappear from
// reads immediately and from disk at the next value-log GC.
type WriteCache struct {
	backend *Backend
}

var _ storage.WriteCache = (*WriteCache)(nil)

// NewWriteCache creates a write cache on the given backend.
func NewWriteCache(backend *Backend) (*WriteCache, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &WriteCache{backend: backend}, nil
}

func makeStampKey(key string) []byte {
	return []byte(writeCachePrefix + key)
}

// LastWrite returns the stamp stored under key.
func (c *WriteCache) LastWrite(key string) (time.Time, bool, error) {
	if key == "" {
		return time.Time{}, false, storage.ErrKeyRequired
	}
	if c.backend.IsClosed() {
		return time.Time{}, false, storage.ErrStorageClosed
	}

	var at time.Time
	err := c.backend.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeStampKey(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			at, err = storage.UnmarshalStamp(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return at, true, nil
}

// Stamp records the given time under key with the given TTL.
func (c *WriteCache) Stamp(key string, at time.Time, ttl time.Duration) error {
	if key == "" {
		return storage.ErrKeyRequired
	}
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return c.backend.db.Update(func(tx *badger.Txn) error {
		entry := badger.NewEntry(makeStampKey(key), storage.MarshalStamp(at))
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return tx.SetEntry(entry)
	})
}

// Close is a no-op; the backend owns the database lifecycle.
func (c *WriteCache) Close() error {
	return nil
}
