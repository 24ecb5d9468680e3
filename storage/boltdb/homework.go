package boltdb

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
	return list[homework.DailyHomework](repo.db, buckets.dailyHomework)
}

func (repo *homeworkRepository) CreateDailyHomework(_ context.Context, hw homework.DailyHomework) (homework.DailyHomework, error) {
	err := insert(repo.db, buckets.dailyHomework, &hw, func(h *homework.DailyHomework, id int) { h.ID = id })
	if err != nil {
		return homework.DailyHomework{}, err
	}
	return hw, nil
}

func (repo *homeworkRepository) QueryPersonalHomework(_ context.Context) ([]homework.PersonalHomework, error) {
	return list[homework.PersonalHomework](repo.db, buckets.personalHomework)
}

func (repo *homeworkRepository) CreatePersonalHomework(_ context.Context, hw homework.PersonalHomework) (homework.PersonalHomework, error) {
	err := insert(repo.db, buckets.personalHomework, &hw, func(h *homework.PersonalHomework, id int) { h.ID = id })
	if err != nil {
		return homework.PersonalHomework{}, err
	}
	return hw, nil
}
