// Package sqlxrepos implements the repositories on PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql/driver"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/homework"
)

// withTx runs fn in a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}

// insertWithNextID locks table, then runs query whose first argument is max(id)+1.
// query must end with RETURNING id.
func insertWithNextID(ctx context.Context, db *sqlx.DB, table, query string, args ...interface{}) (int, error) {
	var id int
	err := withTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "LOCK TABLE "+table+" IN EXCLUSIVE MODE"); err != nil {
			return errors.Wrapf(err, "locking %s", table)
		}
		var next int
		if err := tx.GetContext(ctx, &next, "SELECT COALESCE(MAX(id), 0) + 1 FROM "+table); err != nil {
			return errors.Wrapf(err, "computing %s id", table)
		}
		return tx.GetContext(ctx, &id, query, append([]interface{}{next}, args...)...)
	})
	return id, err
}

// taskList stores homework tasks as a JSONB array.
type taskList []homework.Task

func (tl taskList) Value() (driver.Value, error) {
	if tl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(tl)
}

func (tl *taskList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	case nil:
		*tl = nil
		return nil
	default:
		return errors.Errorf("cannot scan %T into tasks", src)
	}
	return json.Unmarshal(data, (*[]homework.Task)(tl))
}
