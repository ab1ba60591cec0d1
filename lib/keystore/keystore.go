package keystore

import (
	"encoding/json"
	"os"

	"github.com/puzpuzpuz/xsync/v3"
)

// Store is the per-database api key cache. Entries are seeded at client
// construction, inserted when the server issues a key on database creation,
// and replaced when a key renewal succeeds.
//
// The store is safe for concurrent use; concurrent writes to the same
// database follow last-writer-wins, which is acceptable since tokens are
// never composed.
type Store struct {
	keys *xsync.MapOf[string, string]
}

// New creates a store seeded with the given mapping. The seed map is copied,
// the caller keeps ownership of it.
func New(seed map[string]string) *Store {
	s := &Store{keys: xsync.NewMapOf[string, string]()}
	for db, key := range seed {
		s.keys.Store(db, key)
	}
	return s
}

// Get returns the api key for a database. Lookup never fails: an absent
// entry yields the empty string, which transports send as "no
// authentication".
func (s *Store) Get(db string) string {
	key, _ := s.keys.Load(db)
	return key
}

// Set unconditionally stores the api key for a database.
func (s *Store) Set(db, key string) {
	s.keys.Store(db, key)
}

// Delete removes the entry for a database, if any.
func (s *Store) Delete(db string) {
	s.keys.Delete(db)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return s.keys.Size()
}

// Snapshot returns a copy of the current mapping.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, s.keys.Size())
	s.keys.Range(func(db, key string) bool {
		out[db] = key
		return true
	})
	return out
}

// ExportFile writes the current mapping as JSON to the given path. The file
// is created with owner-only permissions since it contains credentials.
func (s *Store) ExportFile(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadFile reads a JSON mapping of database names to api keys, as written by
// ExportFile.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	keys := map[string]string{}
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}
