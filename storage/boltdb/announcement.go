package boltdb

import (
	"context"

	"github.com/trezcool/clno/core/announcement"
)

type announcementRepository struct {
	db *DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *DB) announcement.Repository {
	return &announcementRepository{db: db}
}

func (repo *announcementRepository) QueryAnnouncements(_ context.Context) ([]announcement.Announcement, error) {
	return list[announcement.Announcement](repo.db, buckets.announcements)
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	err := insert(repo.db, buckets.announcements, &ann, func(a *announcement.Announcement, id int) { a.ID = id })
	if err != nil {
		return announcement.Announcement{}, err
	}
	return ann, nil
}
