package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/school"
)

const (
	teacherPasswordKey = "teacherPassword"
	uniqueViolation    = "23505"
)

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) QuerySchools(ctx context.Context) ([]school.School, error) {
	var schools []school.School
	err := repo.db.SelectContext(ctx, &schools, `SELECT id, name FROM school ORDER BY seq`)
	return schools, errors.Wrap(err, "selecting schools")
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	_, err := repo.db.ExecContext(ctx, `INSERT INTO school (id, name) VALUES ($1, $2)`, sch.ID, sch.Name)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return school.School{}, errors.WithStack(school.ErrSchoolExists)
		}
		return school.School{}, errors.Wrap(err, "inserting school")
	}
	return sch, nil
}

func (repo *schoolRepository) GetTeacherPassword(ctx context.Context) (string, error) {
	var pwd string
	err := repo.db.GetContext(ctx, &pwd, `SELECT value FROM setting WHERE key = $1`, teacherPasswordKey)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return pwd, errors.Wrap(err, "selecting teacher password")
}

func (repo *schoolRepository) SetTeacherPassword(ctx context.Context, pwd string) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO setting (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		teacherPasswordKey, pwd,
	)
	return errors.Wrap(err, "upserting teacher password")
}

func (repo *schoolRepository) GetClassPassword(ctx context.Context, ref school.ClassRef) (string, error) {
	var pwd string
	err := repo.db.GetContext(ctx, &pwd, `
		SELECT password FROM class_password
		WHERE school_id = $1 AND grade = $2 AND class_num = $3`,
		ref.SchoolID, ref.Grade, ref.ClassNum,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.WithStack(school.ErrClassNotFound)
	}
	return pwd, errors.Wrap(err, "selecting class password")
}

func (repo *schoolRepository) SetClassPassword(ctx context.Context, ref school.ClassRef, pwd string) error {
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO class_password (school_id, grade, class_num, password) VALUES ($1, $2, $3, $4)
		ON CONFLICT (school_id, grade, class_num) DO UPDATE SET password = EXCLUDED.password`,
		ref.SchoolID, ref.Grade, ref.ClassNum, pwd,
	)
	return errors.Wrap(err, "upserting class password")
}
