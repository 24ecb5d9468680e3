package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/clno/core"
)

var buckets = struct {
	schools, settings, passwords, announcements, dailyHomework, personalHomework []byte
}{
	schools:          []byte("Schools"),
	settings:         []byte("Settings"),
	passwords:        []byte("ClassPasswords"),
	announcements:    []byte("Announcements"),
	dailyHomework:    []byte("DailyHomework"),
	personalHomework: []byte("PersonalHomework"),
}

var teacherPasswordKey = []byte("teacherPassword")

type DB struct {
	bolt *bbolt.DB
}

// Open opens (or creates) the bolt file at path and its buckets.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating bolt dir")
	}
	bdb, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt db")
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{
			buckets.schools, buckets.settings, buckets.passwords,
			buckets.announcements, buckets.dailyHomework, buckets.personalHomework,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, errors.Wrap(err, "creating buckets")
	}
	return &DB{bolt: bdb}, nil
}

func (db *DB) Close() error {
	return db.bolt.Close()
}

// view and update run fn in a bolt transaction; a closed database asks the app to shut down.
func (db *DB) view(fn func(*bbolt.Tx) error) error {
	return closedAsShutdown(db.bolt.View(fn))
}

func (db *DB) update(fn func(*bbolt.Tx) error) error {
	return closedAsShutdown(db.bolt.Update(fn))
}

func closedAsShutdown(err error) error {
	if errors.Is(err, bbolt.ErrDatabaseNotOpen) {
		return errors.WithStack(core.NewShutdownError("bolt database is closed"))
	}
	return err
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func bucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, core.NewDataError(nil, "bucket "+string(name)+" not found")
	}
	return b, nil
}

// list decodes every value of the bucket in key order.
func list[T any](db *DB, name []byte) ([]T, error) {
	var out []T
	err := db.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, name)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var item T
			if err := json.Unmarshal(v, &item); err != nil {
				return core.NewDataError(err, "decoding "+string(name)+" entry")
			}
			out = append(out, item)
			return nil
		})
	})
	return out, err
}

// insert stores item under ID = last key + 1; setID receives the new ID before encoding.
func insert[T any](db *DB, name []byte, item *T, setID func(*T, int)) error {
	return db.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, name)
		if err != nil {
			return err
		}
		var last uint64
		if k, _ := b.Cursor().Last(); len(k) == 8 {
			last = binary.BigEndian.Uint64(k)
		}
		id := last + 1
		setID(item, int(id))

		data, err := json.Marshal(item)
		if err != nil {
			return errors.Wrap(err, "encoding "+string(name)+" entry")
		}
		return b.Put(itob(id), data)
	})
}
