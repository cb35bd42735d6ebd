package storage

import (
	"encoding/json"

	"github.com/dgraph-io/badger/v4"
)

// recordPrefix namespaces position records within the database, leaving
// room for other key families (metadata, counters) without collision.
const recordPrefix = "pos:"

// Record is one solved position: the column history that reaches it and
// the value the solver assigned, from the perspective of the side to move
// at that position.
type Record struct {
	History     string `json:"history"`
	MovesPlayed int    `json:"moves_played"`
	Value       int    `json:"value"`
	Nodes       uint64 `json:"nodes"`
}

// Store wraps a badger database of Record values keyed by history string.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the database in the platform data
// directory.
func Open() (*Store, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens (creating if necessary) the database at dir, primarily for
// tests that want an isolated temporary directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func recordKey(history string) []byte {
	return []byte(recordPrefix + history)
}

// Put stores, or overwrites, the record for history.
func (s *Store) Put(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.History), data)
	})
}

// Get returns the record stored for history, and false if none exists.
func (s *Store) Get(history string) (Record, bool, error) {
	var rec Record
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(history))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	return rec, found, err
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Each calls fn with every stored record, in key order, stopping and
// returning fn's error if it returns one.
func (s *Store) Each(fn func(Record) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recordPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			if err := fn(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
