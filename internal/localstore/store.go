// Package localstore is a file-backed key-value store holding JSON-encoded
// record collections. It is the fallback persistence tier used when the
// service runs without a database, with a configurable byte quota standing in
// for the storage limits of a constrained host.
package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Collection keys. Each key maps to one JSON file under the data directory.
const (
	KeyProducts   = "products"
	KeyCategories = "categories"
)

// ErrQuotaExceeded is returned when a write does not fit within the
// configured quota even after space reclaim.
var ErrQuotaExceeded = errors.New("local store quota exceeded")

// Store persists record collections as JSON array files.
type Store struct {
	mu    sync.Mutex
	dir   string
	quota int64 // total bytes across all collections, 0 disables the limit
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, quota int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir, quota: quota}, nil
}

// Load returns the records stored under key. A missing file or malformed
// stored JSON yields an empty slice, never an error.
func (s *Store) Load(key string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(key)
}

// Save persists the full collection under key, overwriting prior contents.
// If the write exceeds the quota, the sibling collection is truncated to
// half its length (oldest-first retained) and the write retried once; a
// second failure abandons the write and returns ErrQuotaExceeded.
func (s *Store) Save(key string, records []json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}

	if !s.fits(key, int64(len(payload))) {
		s.reclaim(key)
		if !s.fits(key, int64(len(payload))) {
			log.Error().Str("key", key).Int("bytes", len(payload)).
				Msg("Local store write abandoned: quota exceeded after reclaim")
			return ErrQuotaExceeded
		}
	}

	return s.write(key, payload)
}

// load reads and decodes a collection. Callers must hold the mutex.
func (s *Store) load(key string) []json.RawMessage {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return []json.RawMessage{}
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("Malformed local store data, treating as empty")
		return []json.RawMessage{}
	}
	return records
}

// write persists payload atomically via a temp file rename.
func (s *Store) write(key string, payload []byte) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// fits reports whether writing size bytes under key stays within the quota,
// accounting for the current size of every other collection file.
func (s *Store) fits(key string, size int64) bool {
	if s.quota <= 0 {
		return true
	}
	total := size
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return true
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == key+".json" {
			continue
		}
		if info, err := e.Info(); err == nil {
			total += info.Size()
		}
	}
	return total <= s.quota
}

// reclaim frees space by halving the sibling collection. Lossy on purpose:
// the local tier is a cache, not a system of record.
func (s *Store) reclaim(key string) {
	sibling := siblingKey(key)
	if sibling == "" {
		return
	}
	records := s.load(sibling)
	if len(records) == 0 {
		return
	}
	kept := records[:len(records)/2]
	payload, err := json.Marshal(kept)
	if err != nil {
		return
	}
	if err := s.write(sibling, payload); err != nil {
		log.Warn().Str("key", sibling).Err(err).Msg("Local store reclaim write failed")
		return
	}
	log.Warn().Str("key", sibling).Int("dropped", len(records)-len(kept)).
		Msg("Local store quota pressure: truncated sibling collection")
}

func siblingKey(key string) string {
	switch key {
	case KeyProducts:
		return KeyCategories
	case KeyCategories:
		return KeyProducts
	default:
		return ""
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
