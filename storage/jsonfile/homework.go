package jsonfile

import (
	"context"

	"github.com/trezcool/clno/core/homework"
)

type homeworkRepository struct {
	db *DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *DB) homework.Repository {
	return &homeworkRepository{db: db}
}

func (repo *homeworkRepository) QueryDailyHomework(_ context.Context) ([]homework.DailyHomework, error) {
	return load[[]homework.DailyHomework](repo.db, DailyHomeworkFile)
}

func (repo *homeworkRepository) CreateDailyHomework(_ context.Context, hw homework.DailyHomework) (homework.DailyHomework, error) {
	err := update(repo.db, DailyHomeworkFile, func(hws *[]homework.DailyHomework) error {
		ids := make([]int, 0, len(*hws))
		for _, h := range *hws {
			ids = append(ids, h.ID)
		}
		hw.ID = nextID(ids...)
		*hws = append(*hws, hw)
		return nil
	})
	if err != nil {
		return homework.DailyHomework{}, err
	}
	return hw, nil
}

func (repo *homeworkRepository) QueryPersonalHomework(_ context.Context) ([]homework.PersonalHomework, error) {
	return load[[]homework.PersonalHomework](repo.db, PersonalHomeworkFile)
}

func (repo *homeworkRepository) CreatePersonalHomework(_ context.Context, hw homework.PersonalHomework) (homework.PersonalHomework, error) {
	err := update(repo.db, PersonalHomeworkFile, func(hws *[]homework.PersonalHomework) error {
		ids := make([]int, 0, len(*hws))
		for _, h := range *hws {
			ids = append(ids, h.ID)
		}
		hw.ID = nextID(ids...)
		*hws = append(*hws, hw)
		return nil
	})
	if err != nil {
		return homework.PersonalHomework{}, err
	}
	return hw, nil
}
