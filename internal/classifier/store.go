package classifier

import (
	"bytes"
	"encoding/gob"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/wolfpld/usenetarchive-sub002/internal/archiveerrors"
)

var (
	bucketNodes   = []byte("nodes")
	bucketTotals  = []byte("totals")
	bucketWeights = []byte("owv_weights")
)

// Store persists per-word classifier Nodes, the corpus-wide Totals and
// the OWV combination weights across build runs, using bbolt the way the
// reference implementation persists its weight files to disk (no full
// in-pack source for bbolt itself — see DESIGN.md).
type Store struct {
	db *bolt.DB
}

// OpenStore opens (creating if necessary) a bbolt database at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, archiveerrors.NewBuildError("classifier store open", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketNodes, bucketTotals, bucketWeights} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, archiveerrors.NewBuildError("classifier store init", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// LoadNode fetches the persisted Node for word, or a fresh one if absent.
func (s *Store) LoadNode(word string) (*Node, error) {
	var n *Node
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketNodes).Get([]byte(word))
		if raw == nil {
			return nil
		}
		var decoded Node
		if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&decoded); err != nil {
			return err
		}
		n = &decoded
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("classifier: load node %q: %w", word, err)
	}
	if n == nil {
		n = NewNode()
	}
	return n, nil
}

// SaveNodes persists the given word->Node map in one transaction.
func (s *Store) SaveNodes(nodes map[string]*Node) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNodes)
		for word, n := range nodes {
			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(n); err != nil {
				return err
			}
			if err := b.Put([]byte(word), buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadTotals fetches the persisted corpus-wide spam/ham counters.
func (s *Store) LoadTotals() (*Totals, error) {
	t := &Totals{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTotals)
		if raw := b.Get([]byte("spam")); raw != nil {
			t.Spam = decodeUint64(raw)
		}
		if raw := b.Get([]byte("ham")); raw != nil {
			t.Ham = decodeUint64(raw)
		}
		return nil
	})
	return t, err
}

// SaveTotals persists t.
func (s *Store) SaveTotals(t *Totals) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTotals)
		if err := b.Put([]byte("spam"), encodeUint64(t.Spam)); err != nil {
			return err
		}
		return b.Put([]byte("ham"), encodeUint64(t.Ham))
	})
}

// LoadWeights fetches the persisted OWV combination weights, or nil if
// none have been saved yet.
func (s *Store) LoadWeights() ([]float64, error) {
	var weights []float64
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketWeights).Get([]byte("weights"))
		if raw == nil {
			return nil
		}
		return gob.NewDecoder(bytes.NewReader(raw)).Decode(&weights)
	})
	return weights, err
}

// SaveWeights persists the OWV combination weights.
func (s *Store) SaveWeights(weights []float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(weights); err != nil {
			return err
		}
		return tx.Bucket(bucketWeights).Put([]byte("weights"), buf.Bytes())
	})
}

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func decodeUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8 && i < len(b); i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
