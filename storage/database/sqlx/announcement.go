package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/announcement"
)

type announcementRepository struct {
	db *sqlx.DB
}

var _ announcement.Repository = (*announcementRepository)(nil) // interface compliance check

func NewAnnouncementRepository(db *sqlx.DB) announcement.Repository {
	return &announcementRepository{db: db}
}

type announcementRow struct {
	ID         int    `db:"id"`
	SchoolID   string `db:"school_id"`
	Grade      string `db:"grade"`
	Class      string `db:"class"`
	UploadDate string `db:"upload_date"`
	Title      string `db:"title"`
	Content    string `db:"content"`
}

func (r announcementRow) announcement() announcement.Announcement {
	return announcement.Announcement{
		ID:         r.ID,
		SchoolID:   core.FlexString(r.SchoolID),
		Grade:      core.FlexString(r.Grade),
		Class:      core.FlexString(r.Class),
		UploadDate: r.UploadDate,
		Title:      r.Title,
		Content:    r.Content,
	}
}

func (repo *announcementRepository) QueryAnnouncements(ctx context.Context) ([]announcement.Announcement, error) {
	var rows []announcementRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM announcement ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting announcements")
	}
	anns := make([]announcement.Announcement, 0, len(rows))
	for _, r := range rows {
		anns = append(anns, r.announcement())
	}
	return anns, nil
}

func (repo *announcementRepository) CreateAnnouncement(ctx context.Context, ann announcement.Announcement) (announcement.Announcement, error) {
	id, err := insertWithNextID(ctx, repo.db, "announcement", `
		INSERT INTO announcement (id, school_id, grade, class, upload_date, title, content)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		ann.SchoolID.String(), ann.Grade.String(), ann.Class.String(), ann.UploadDate, ann.Title, ann.Content,
	)
	if err != nil {
		return announcement.Announcement{}, errors.Wrap(err, "inserting announcement")
	}
	ann.ID = id
	return ann, nil
}
