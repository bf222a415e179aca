package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSession = []byte("session")

// BoltKV implements KV on a bbolt database file.
type BoltKV struct {
	db *bolt.DB
}

// OpenBoltKV opens (or creates) the session database under dataDir.
func OpenBoltKV(dataDir string) (*BoltKV, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "session.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSession)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltKV{db: db}, nil
}

func (s *BoltKV) Get(key string) ([]byte, bool) {
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data, data != nil
}

func (s *BoltKV) Set(key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		return b.Put([]byte(key), value)
	})
}

func (s *BoltKV) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSession)
		if b != nil {
			return b.Delete([]byte(key))
		}
		return nil
	})
}

func (s *BoltKV) Close() error {
	return s.db.Close()
}
