// Package storage opens the configured storage engine and returns its repositories.
package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/announcement"
	"github.com/trezcool/clno/core/homework"
	"github.com/trezcool/clno/core/school"
	"github.com/trezcool/clno/storage/boltdb"
	"github.com/trezcool/clno/storage/database"
	"github.com/trezcool/clno/storage/database/sqlx"
	"github.com/trezcool/clno/storage/jsonfile"
)

type Repositories struct {
	School       school.Repository
	Announcement announcement.Repository
	Homework     homework.Repository

	closeFunc func() error
}

func (r *Repositories) Close() error {
	if r.closeFunc == nil {
		return nil
	}
	return r.closeFunc()
}

// Open opens conf.Storage.Engine: json (default), bolt or postgres.
// The postgres schema is migrated up before use.
func Open(ctx context.Context, conf *core.Config) (*Repositories, error) {
	switch conf.Storage.Engine {
	case core.EngineJSON, "":
		db, err := jsonfile.Open(conf.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			School:       jsonfile.NewSchoolRepository(db),
			Announcement: jsonfile.NewAnnouncementRepository(db),
			Homework:     jsonfile.NewHomeworkRepository(db),
			closeFunc:    db.Close,
		}, nil

	case core.EngineBolt:
		db, err := boltdb.Open(conf.Storage.BoltPath)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			School:       boltdb.NewSchoolRepository(db),
			Announcement: boltdb.NewAnnouncementRepository(db),
			Homework:     boltdb.NewHomeworkRepository(db),
			closeFunc:    db.Close,
		}, nil

	case core.EnginePostgres:
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db.DB, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Repositories{
			School:       sqlxrepos.NewSchoolRepository(db),
			Announcement: sqlxrepos.NewAnnouncementRepository(db),
			Homework:     sqlxrepos.NewHomeworkRepository(db),
			closeFunc:    db.Close,
		}, nil

	default:
		return nil, errors.Errorf("unknown storage engine %q", conf.Storage.Engine)
	}
}
