package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/streampick/internal/domain"
)

var bucketHistory = []byte("history")

var _ domain.HistoryStore = (*HistoryStore)(nil)

// HistoryStore implements domain.HistoryStore using BoltDB.
// Entries are keyed by a monotonically increasing sequence so a cursor
// walk yields them in insertion order.
type HistoryStore struct {
	db  *bolt.DB
	max int

	mu sync.RWMutex
	// In-memory copy, oldest first. Authoritative in memory-only mode.
	entries []domain.HistoryEntry
	keys    [][]byte
}

// NewHistoryStore opens the history database for a server.
// An empty baseCacheDir keeps history in memory only.
func NewHistoryStore(baseCacheDir, serverURL string, maxEntries int) (*HistoryStore, error) {
	if maxEntries <= 0 {
		maxEntries = 100
	}
	if baseCacheDir == "" {
		return &HistoryStore{max: maxEntries}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	s := &HistoryStore{db: db, max: maxEntries}
	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketHistory)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var entry domain.HistoryEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				// Skip corrupt records rather than refusing to start
				return nil
			}
			s.entries = append(s.entries, entry)
			s.keys = append(s.keys, append([]byte(nil), k...))
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append records an entry, evicting the oldest beyond the size bound
func (s *HistoryStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		s.entries = append(s.entries, entry)
		s.keys = append(s.keys, nil)
		s.trimLocked(len(s.entries) - s.max)
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	var key []byte
	overflow := len(s.entries) + 1 - s.max
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key = itob(seq)
		if err := b.Put(key, data); err != nil {
			return err
		}
		for i := 0; i < overflow && i < len(s.keys); i++ {
			if err := b.Delete(s.keys[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	s.entries = append(s.entries, entry)
	s.keys = append(s.keys, key)
	s.trimLocked(overflow)
	return nil
}

// trimLocked drops the n oldest in-memory entries
func (s *HistoryStore) trimLocked(n int) {
	if n <= 0 {
		return
	}
	if n > len(s.entries) {
		n = len(s.entries)
	}
	s.entries = append([]domain.HistoryEntry(nil), s.entries[n:]...)
	s.keys = append([][]byte(nil), s.keys[n:]...)
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all.
func (s *HistoryStore) Recent(limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.HistoryEntry, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

// Clear removes all history
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			if err := tx.DeleteBucket(bucketHistory); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			_, err := tx.CreateBucket(bucketHistory)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}

	s.entries = nil
	s.keys = nil
	return nil
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
