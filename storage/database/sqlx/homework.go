package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/homework"
)

type homeworkRepository struct {
	db *sqlx.DB
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *sqlx.DB) homework.Repository {
	return &homeworkRepository{db: db}
}

type dailyRow struct {
	ID         int      `db:"id"`
	SchoolID   string   `db:"school_id"`
	Grade      string   `db:"grade"`
	Class      string   `db:"class"`
	UploadDate string   `db:"upload_date"`
	Title      string   `db:"title"`
	DueDate    string   `db:"due_date"`
	Tasks      taskList `db:"tasks"`
}

func (r dailyRow) homework() homework.DailyHomework {
	return homework.DailyHomework{
		ID:         r.ID,
		SchoolID:   core.FlexString(r.SchoolID),
		Grade:      core.FlexString(r.Grade),
		Class:      core.FlexString(r.Class),
		UploadDate: r.UploadDate,
		Title:      r.Title,
		DueDate:    r.DueDate,
		Tasks:      r.Tasks,
	}
}

type personalRow struct {
	dailyRow
	AttendanceNumber string `db:"attendance_number"`
}

func (repo *homeworkRepository) QueryDailyHomework(ctx context.Context) ([]homework.DailyHomework, error) {
	var rows []dailyRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM daily_homework ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting daily homework")
	}
	hws := make([]homework.DailyHomework, 0, len(rows))
	for _, r := range rows {
		hws = append(hws, r.homework())
	}
	return hws, nil
}

func (repo *homeworkRepository) CreateDailyHomework(ctx context.Context, hw homework.DailyHomework) (homework.DailyHomework, error) {
	id, err := insertWithNextID(ctx, repo.db, "daily_homework", `
		INSERT INTO daily_homework (id, school_id, grade, class, upload_date, title, due_date, tasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		hw.SchoolID.String(), hw.Grade.String(), hw.Class.String(), hw.UploadDate, hw.Title, hw.DueDate, taskList(hw.Tasks),
	)
	if err != nil {
		return homework.DailyHomework{}, errors.Wrap(err, "inserting daily homework")
	}
	hw.ID = id
	return hw, nil
}

func (repo *homeworkRepository) QueryPersonalHomework(ctx context.Context) ([]homework.PersonalHomework, error) {
	var rows []personalRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM personal_homework ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "selecting personal homework")
	}
	hws := make([]homework.PersonalHomework, 0, len(rows))
	for _, r := range rows {
		hws = append(hws, homework.PersonalHomework{
			DailyHomework:    r.homework(),
			AttendanceNumber: core.FlexString(r.AttendanceNumber),
		})
	}
	return hws, nil
}

func (repo *homeworkRepository) CreatePersonalHomework(ctx context.Context, hw homework.PersonalHomework) (homework.PersonalHomework, error) {
	id, err := insertWithNextID(ctx, repo.db, "personal_homework", `
		INSERT INTO personal_homework (id, school_id, grade, class, attendance_number, upload_date, title, due_date, tasks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		hw.SchoolID.String(), hw.Grade.String(), hw.Class.String(), hw.AttendanceNumber.String(),
		hw.UploadDate, hw.Title, hw.DueDate, taskList(hw.Tasks),
	)
	if err != nil {
		return homework.PersonalHomework{}, errors.Wrap(err, "inserting personal homework")
	}
	hw.ID = id
	return hw, nil
}
