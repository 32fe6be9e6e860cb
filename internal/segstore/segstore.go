// Package segstore persists delimited segments in a bolt database, keyed by
// their index so a cursor walks them back in emission order.
package segstore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/oleg578/swiftchar"
)

var (
	bucketName = []byte("segments")
	log        = commonlog.GetLogger("swiftchar.segstore")

	// ErrNotFound is returned by Get for an index that was never stored.
	ErrNotFound = errors.New("segstore: segment not found")
)

// Store is a bolt-backed segment table.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open segment store %s", path)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create segments bucket")
	}
	log.Debugf("opened %s", path)
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func key(index int) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(index))
	return k[:]
}

// PutAll stores segs in a single transaction, replacing earlier values under
// the same indexes.
func (s *Store) PutAll(segs []swiftchar.Segment) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for _, seg := range segs {
			if seg.Index < 0 {
				return errors.Errorf("segstore: negative index %d", seg.Index)
			}
			var val bytes.Buffer
			if err := gob.NewEncoder(&val).Encode(seg); err != nil {
				return errors.Wrapf(err, "encode segment %d", seg.Index)
			}
			if err := b.Put(key(seg.Index), val.Bytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get loads the segment stored under index.
func (s *Store) Get(index int) (swiftchar.Segment, error) {
	var seg swiftchar.Segment
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key(index))
		if v == nil {
			return errors.WithStack(ErrNotFound)
		}
		return decode(v, &seg)
	})
	return seg, err
}

// Count returns the number of stored segments.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketName).Stats().KeyN
		return nil
	})
	return n, err
}

// ForEach visits stored segments in index order until fn returns false.
func (s *Store) ForEach(fn func(swiftchar.Segment) bool) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketName).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var seg swiftchar.Segment
			if err := decode(v, &seg); err != nil {
				return err
			}
			if !fn(seg) {
				return nil
			}
		}
		return nil
	})
}

// Reset drops every stored segment.
func (s *Store) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketName); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketName)
		return err
	})
}

func decode(v []byte, seg *swiftchar.Segment) error {
	if err := gob.NewDecoder(bytes.NewReader(v)).Decode(seg); err != nil {
		return errors.Wrapf(err, "decode segment value of length %d", len(v))
	}
	return nil
}
