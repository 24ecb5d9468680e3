// Package jsonfile stores every collection as a whole JSON document in a data directory.
// Each write replaces the file atomically; read-modify-write cycles are serialized per DB.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
)

// data files
const (
	SchoolsFile          = "schools.json"
	ConfigFile           = "config.json"
	PasswordsFile        = "passwords.json"
	AnnouncementsFile    = "announcements.json"
	DailyHomeworkFile    = "daily_homework.json"
	PersonalHomeworkFile = "personal_homework.json"
)

// emptyValues is the content of each data file when it holds nothing.
var emptyValues = map[string][]byte{
	SchoolsFile:          []byte("[]\n"),
	ConfigFile:           []byte("{\n    \"teacherPassword\": \"\"\n}\n"),
	PasswordsFile:        []byte("{}\n"),
	AnnouncementsFile:    []byte("[]\n"),
	DailyHomeworkFile:    []byte("[]\n"),
	PersonalHomeworkFile: []byte("[]\n"),
}

type DB struct {
	dir string
	mu  sync.Mutex
}

// Open returns a DB backed by dir, which must be an existing directory.
func Open(dir string) (*DB, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(err, "opening data dir")
	}
	if !fi.IsDir() {
		return nil, errors.Errorf("opening data dir: %s is not a directory", dir)
	}
	return &DB{dir: dir}, nil
}

// Init creates dir and every missing data file with its empty value.
// It returns the names of the files it created.
func Init(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	var created []string
	for _, name := range []string{SchoolsFile, ConfigFile, PasswordsFile, AnnouncementsFile, DailyHomeworkFile, PersonalHomeworkFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return created, errors.Wrapf(err, "checking %s", name)
		}
		if err := os.WriteFile(path, emptyValues[name], 0644); err != nil {
			return created, errors.Wrapf(err, "creating %s", name)
		}
		created = append(created, name)
	}
	return created, nil
}

func (db *DB) Dir() string { return db.dir }

// Close is a noop; files are never held open.
func (db *DB) Close() error { return nil }

// dirGone reports whether the data dir was removed after Open.
func (db *DB) dirGone() bool {
	_, err := os.Stat(db.dir)
	return os.IsNotExist(err)
}

func (db *DB) errDirGone() error {
	return errors.WithStack(core.NewShutdownError("data dir " + db.dir + " no longer exists"))
}

func (db *DB) path(name string) string {
	return filepath.Join(db.dir, name)
}

// read decodes the named file into v. A whitespace-only file leaves v untouched.
func (db *DB) read(name string, v interface{}) error {
	data, err := os.ReadFile(db.path(name))
	if err != nil {
		if db.dirGone() {
			return db.errDirGone()
		}
		return core.NewDataError(err, "reading "+name)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, v); err != nil {
		return core.NewDataError(err, "decoding "+name)
	}
	return nil
}

// write replaces the named file with v encoded as indented JSON.
func (db *DB) write(name string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}

	tmp, err := os.CreateTemp(db.dir, name+".*.tmp")
	if err != nil {
		if db.dirGone() {
			return db.errDirGone()
		}
		return errors.Wrapf(err, "writing %s", name)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // noop once renamed

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "writing %s", name)
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", name)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), db.path(name)), "replacing %s", name)
}

// update loads the named file into a T, lets fn modify it, then writes it back.
// Nothing is written when fn fails.
func update[T any](db *DB, name string, fn func(*T) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var v T
	if err := db.read(name, &v); err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	return db.write(name, v)
}

// load decodes the named file into a new T.
func load[T any](db *DB, name string) (T, error) {
	var v T
	err := db.read(name, &v)
	return v, err
}

// nextID returns max(ids)+1, or 1 when ids is empty.
func nextID(ids ...int) int {
	var max int
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
