// Package store keeps learned codon usage tables in a bolt database.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/Davydov/espresso/codon"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// Bucket names.
var (
	USAGE = []byte("usage")
	PAIRS = []byte("pairs")
)

// ErrNotFound is returned when there is no table with the given name.
var ErrNotFound = errors.New("not found in the store")

// Store provides access to the learned tables.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a database file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveUsage stores codon counts under the name.
func (s *Store) SaveUsage(name string, u codon.Usage) error {
	if err := u.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	log.Debugf("Saving usage %s (%d codons)", name, len(u))
	return saveData(s.db, USAGE, []byte(name), data)
}

// LoadUsage loads codon counts stored under the name.
func (s *Store) LoadUsage(name string) (codon.Usage, error) {
	data, err := loadData(s.db, USAGE, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("usage %q: %w", name, ErrNotFound)
	}
	var u codon.Usage
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("usage %q: %w", name, err)
	}
	return u, u.Validate()
}

// SavePairs stores adjacent codon pair counts under the name.
func (s *Store) SavePairs(name string, p *codon.PairUsage) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	log.Debugf("Saving codon pairs %s", name)
	return saveData(s.db, PAIRS, []byte(name), data)
}

// LoadPairs loads adjacent codon pair counts stored under the name.
func (s *Store) LoadPairs(name string) (*codon.PairUsage, error) {
	data, err := loadData(s.db, PAIRS, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("pairs %q: %w", name, ErrNotFound)
	}
	p := &codon.PairUsage{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("pairs %q: %w", name, err)
	}
	return p, nil
}

// Names returns names of all the stored usage tables in the key
// order.
func (s *Store) Names() (names []string, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(USAGE)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return
}

// saveData saves values in bolt database.
func saveData(db *bolt.DB, bucket, key, data []byte) error {
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// loadData loads data from bolt database. It returns nil if there is
// no such key.
func loadData(db *bolt.DB, bucket, key []byte) ([]byte, error) {
	var data []byte
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		// v is only valid during the transaction
		if v := b.Get(key); v != nil {
			data = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
