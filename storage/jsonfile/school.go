package jsonfile

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/school"
)

type schoolRepository struct {
	db *DB
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db}
}

func (repo *schoolRepository) QuerySchools(_ context.Context) ([]school.School, error) {
	return load[[]school.School](repo.db, SchoolsFile)
}

func (repo *schoolRepository) CreateSchool(_ context.Context, sch school.School) (school.School, error) {
	err := update(repo.db, SchoolsFile, func(schools *[]school.School) error {
		for _, s := range *schools {
			if s.ID.Clean() == sch.ID.Clean() {
				return school.ErrSchoolExists
			}
		}
		*schools = append(*schools, sch)
		return nil
	})
	if err != nil {
		return school.School{}, err
	}
	return sch, nil
}

func (repo *schoolRepository) GetTeacherPassword(_ context.Context) (string, error) {
	conf, err := load[school.Config](repo.db, ConfigFile)
	if err != nil {
		return "", err
	}
	return conf.TeacherPassword.String(), nil
}

// SetTeacherPassword keeps any other key of config.json.
func (repo *schoolRepository) SetTeacherPassword(_ context.Context, pwd string) error {
	return update(repo.db, ConfigFile, func(conf *map[string]interface{}) error {
		if *conf == nil {
			*conf = make(map[string]interface{})
		}
		(*conf)["teacherPassword"] = pwd
		return nil
	})
}

func (repo *schoolRepository) GetClassPassword(_ context.Context, ref school.ClassRef) (string, error) {
	pwds, err := load[school.ClassPasswords](repo.db, PasswordsFile)
	if err != nil {
		return "", err
	}
	pwd, ok := pwds.Get(ref)
	if !ok {
		return "", errors.WithStack(school.ErrClassNotFound)
	}
	return pwd, nil
}

func (repo *schoolRepository) SetClassPassword(_ context.Context, ref school.ClassRef, pwd string) error {
	return update(repo.db, PasswordsFile, func(pwds *school.ClassPasswords) error {
		if *pwds == nil {
			*pwds = make(school.ClassPasswords)
		}
		pwds.Set(ref, pwd)
		return nil
	})
}
