package boltdb

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/trezcool/clno/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func classKey(ref school.ClassRef) []byte {
	return []byte(strings.Join([]string{ref.SchoolID.String(), ref.Grade.String(), ref.ClassNum.String()}, "\x00"))
}

func (repo *schoolRepository) QuerySchools(_ context.Context) ([]school.School, error) {
	return list[school.School](repo.db, buckets.schools)
}

func (repo *schoolRepository) CreateSchool(_ context.Context, sch school.School) (school.School, error) {
	err := repo.db.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, buckets.schools)
		if err != nil {
			return err
		}
		err = b.ForEach(func(_, v []byte) error {
			var s school.School
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			if s.ID.Clean() == sch.ID.Clean() {
				return school.ErrSchoolExists
			}
			return nil
		})
		if err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(sch)
		if err != nil {
			return err
		}
		return b.Put(itob(seq), data)
	})
	if err != nil {
		return school.School{}, err
	}
	return sch, nil
}

func (repo *schoolRepository) GetTeacherPassword(_ context.Context) (string, error) {
	var pwd string
	err := repo.db.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, buckets.settings)
		if err != nil {
			return err
		}
		pwd = string(b.Get(teacherPasswordKey))
		return nil
	})
	return pwd, err
}

func (repo *schoolRepository) SetTeacherPassword(_ context.Context, pwd string) error {
	return repo.db.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, buckets.settings)
		if err != nil {
			return err
		}
		return b.Put(teacherPasswordKey, []byte(pwd))
	})
}

func (repo *schoolRepository) GetClassPassword(_ context.Context, ref school.ClassRef) (string, error) {
	var pwd []byte
	err := repo.db.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, buckets.passwords)
		if err != nil {
			return err
		}
		if v := b.Get(classKey(ref)); v != nil {
			pwd = append([]byte{}, v...) // v is only valid during the tx
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if pwd == nil {
		return "", errors.WithStack(school.ErrClassNotFound)
	}
	return string(pwd), nil
}

func (repo *schoolRepository) SetClassPassword(_ context.Context, ref school.ClassRef, pwd string) error {
	return repo.db.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, buckets.passwords)
		if err != nil {
			return err
		}
		return b.Put(classKey(ref), []byte(pwd))
	})
}
