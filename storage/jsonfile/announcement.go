package jsonfile

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
	return load[[]announcement.Announcement](repo.db, AnnouncementsFile)
}

func (repo *announcementRepository) CreateAnnouncement(_ context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	err := update(repo.db, AnnouncementsFile, func(anns *[]announcement.Announcement) error {
		ids := make([]int, 0, len(*anns))
		for _, a := range *anns {
			ids = append(ids, a.ID)
		}
		ann.ID = nextID(ids...)
		*anns = append(*anns, ann)
		return nil
	})
	if err != nil {
		return announcement.Announcement{}, err
	}
	return ann, nil
}
