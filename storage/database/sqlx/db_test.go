package sqlxrepos

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clno/core/announcement"
	"github.com/trezcool/clno/core/homework"
	"github.com/trezcool/clno/core/school"
	"github.com/trezcool/clno/storage/database"
)

const testDatabaseURLEnv = "CLNO_TEST_DATABASE_URL"

// prepareDB returns a freshly migrated test database, or skips when none is configured.
func prepareDB(t *testing.T) *sqlx.DB {
	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseURLEnv)
	}
	db, err := database.OpenURL(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db.DB, "reset"))
	require.NoError(t, database.Migrate(db.DB, "up"))
	return db
}

func TestTaskList(t *testing.T) {
	tasks := taskList(homework.NewTasks([]string{"a", "b"}))
	v, err := tasks.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"content":"a"},{"id":2,"content":"b"}]`, string(v.([]byte)))

	v, err = taskList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var scanned taskList
	require.NoError(t, scanned.Scan(`[{"id":1,"content":"a"}]`))
	assert.Equal(t, taskList{{ID: 1, Content: "a"}}, scanned)
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
	assert.Error(t, scanned.Scan(42))
}

func TestSchoolRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSchoolRepository(prepareDB(t))

	for _, s := range []school.School{{ID: "2", Name: "Beta"}, {ID: "1", Name: "Alpha"}} {
		_, err := repo.CreateSchool(ctx, s)
		require.NoError(t, err)
	}
	_, err := repo.CreateSchool(ctx, school.School{ID: "1", Name: "Dup"})
	assert.Equal(t, school.ErrSchoolExists, errors.Cause(err))

	schools, err := repo.QuerySchools(ctx)
	require.NoError(t, err)
	assert.Equal(t, []school.School{{ID: "2", Name: "Beta"}, {ID: "1", Name: "Alpha"}}, schools)

	pwd, err := repo.GetTeacherPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", pwd)
	require.NoError(t, repo.SetTeacherPassword(ctx, "first"))
	require.NoError(t, repo.SetTeacherPassword(ctx, "second"))
	pwd, err = repo.GetTeacherPassword(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", pwd)

	ref := school.ClassRef{SchoolID: "1", Grade: "3", ClassNum: "2"}
	_, err = repo.GetClassPassword(ctx, ref)
	assert.Equal(t, school.ErrClassNotFound, errors.Cause(err))
	require.NoError(t, repo.SetClassPassword(ctx, ref, "class32"))
	pwd, err = repo.GetClassPassword(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "class32", pwd)
}

func TestAnnouncementRepository(t *testing.T) {
	ctx := context.Background()
	db := prepareDB(t)
	repo := NewAnnouncementRepository(db)

	_, err := db.ExecContext(ctx, `
		INSERT INTO announcement (id, school_id, grade, class, upload_date, title, content)
		VALUES (5, '1', '2', '3', '2024-01-01', 'A', 'a')`)
	require.NoError(t, err)

	ann, err := repo.CreateAnnouncement(ctx, announcement.Announcement{
		SchoolID: "1", Grade: "2", Class: "3", UploadDate: "2024-01-02", Title: "B", Content: "b",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, ann.ID)

	anns, err := repo.QueryAnnouncements(ctx)
	require.NoError(t, err)
	require.Len(t, anns, 2)
	assert.Equal(t, 5, anns[0].ID)
	assert.Equal(t, ann, anns[1])
}

func TestHomeworkRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewHomeworkRepository(prepareDB(t))

	daily := homework.DailyHomework{
		SchoolID: "1", Grade: "2", Class: "3", UploadDate: "2024-01-01", Title: "Math", DueDate: "2024-01-05",
		Tasks: homework.NewTasks([]string{"p. 12", "p. 13"}),
	}
	hw, err := repo.CreateDailyHomework(ctx, daily)
	require.NoError(t, err)
	assert.Equal(t, 1, hw.ID)

	hws, err := repo.QueryDailyHomework(ctx)
	require.NoError(t, err)
	assert.Equal(t, []homework.DailyHomework{hw}, hws)

	phw, err := repo.CreatePersonalHomework(ctx, homework.PersonalHomework{DailyHomework: daily, AttendanceNumber: "15"})
	require.NoError(t, err)
	assert.Equal(t, 1, phw.ID)

	phws, err := repo.QueryPersonalHomework(ctx)
	require.NoError(t, err)
	assert.Equal(t, []homework.PersonalHomework{phw}, phws)
}
