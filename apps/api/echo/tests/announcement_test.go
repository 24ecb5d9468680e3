package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clno/core/announcement"
	"github.com/trezcool/clno/storage/jsonfile"
	"github.com/trezcool/clno/testutil"
)

func Test_announcementApi_query(t *testing.T) {
	app := setup(t)

	a1 := announcement.Announcement{ID: 1, SchoolID: "1", Grade: "3", Class: "2", UploadDate: "2024-03-01", Title: "Trip", Content: "Zoo on Friday"}
	a2 := announcement.Announcement{ID: 2, SchoolID: "1", Grade: "4", Class: "1", UploadDate: "2024-03-02", Title: "Exam", Content: "Math exam"}
	a3 := announcement.Announcement{ID: 3, SchoolID: "2", Grade: "3", Class: "2", UploadDate: "2024-03-03", Title: "Holiday", Content: "No school"}
	testutil.WriteJSON(t, app.dir, jsonfile.AnnouncementsFile, []announcement.Announcement{a1, a2, a3})

	runTests(t, app, []httpTest{
		{name: "all", method: http.MethodGet, path: "/api/announcements", wantData: marchallList(t, a1, a2, a3)},
		{name: "by school", method: http.MethodGet, path: "/api/announcements?school_id=1", wantData: marchallList(t, a1, a2)},
		{name: "by class", method: http.MethodGet, path: "/api/announcements?school_id=1&grade=3&class=2", wantData: marchallList(t, a1)},
		{name: "by grade and class", method: http.MethodGet, path: "/api/announcements?grade=3&class=2", wantData: marchallList(t, a1, a3)},
		{name: "no match", method: http.MethodGet, path: "/api/announcements?school_id=9", wantData: marchallList(t)},
	})

	// ids written as numbers by hand still match
	testutil.WriteFile(t, app.dir, jsonfile.AnnouncementsFile,
		`[{"id": 1, "schoolId": 1, "grade": 3, "class": 2, "uploadDate": "2024-03-01", "title": "Trip", "content": "Zoo on Friday"}]`)
	runTests(t, app, []httpTest{
		{name: "numeric ids", method: http.MethodGet, path: "/api/announcements?school_id=1&grade=3&class=2", wantData: marchallList(t, a1)},
	})

	testutil.WriteFile(t, app.dir, jsonfile.AnnouncementsFile, "  \n")
	runTests(t, app, []httpTest{
		{name: "whitespace-only file", method: http.MethodGet, path: "/api/announcements", wantData: marchallList(t)},
	})

	testutil.WriteFile(t, app.dir, jsonfile.AnnouncementsFile, `{"id": 1}`)
	runTests(t, app, []httpTest{
		{name: "malformed file", method: http.MethodGet, path: "/api/announcements", wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer)},
	})
}

func Test_announcementApi_create(t *testing.T) {
	app := setup(t, "teacher@clno.test")
	path := "/api/upload/announcement"

	t.Run("validation", func(t *testing.T) {
		tests := []httpTest{
			{
				name: "missing title", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "content": "c"}`),
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpResp{
					Message: "title: this field is required",
					Errors:  map[string]string{"title": "this field is required"},
				}),
			},
			{
				name: "blank content", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "title": "t", "content": "   "}`),
				wantCode: http.StatusBadRequest,
				wantData: marchallObj(t, httpResp{
					Message: "content: this field is required",
					Errors:  map[string]string{"content": "this field is required"},
				}),
			},
			{name: "malformed body", body: []byte(`[`), wantCode: http.StatusBadRequest},
		}
		for i := range tests {
			tests[i].method = http.MethodPost
			tests[i].path = path
		}
		assertUnchanged(t, app.dir, jsonfile.AnnouncementsFile, func() {
			runTests(t, app, tests)
		})
		assert.Empty(t, app.mailSvc.SentMessages())
	})

	testutil.WriteFile(t, app.dir, jsonfile.AnnouncementsFile,
		`[{"id": 4, "schoolId": "1", "grade": "3", "class": "2", "uploadDate": "2024-03-01", "title": "Old", "content": "old"}]`)

	runTests(t, app, []httpTest{
		{
			name: "created with classNum", method: http.MethodPost, path: path,
			body:     []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "title": " Trip ", "content": "Zoo on Friday", "uploadDate": "2024-03-05"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Announcement uploaded successfully", ID: 5}),
		},
		{
			name: "created with class", method: http.MethodPost, path: path,
			body:     []byte(`{"schoolId": 1, "grade": 3, "class": 2, "title": "Exam", "content": "Math", "uploadDate": "2024-03-06"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Announcement uploaded successfully", ID: 6}),
		},
	})

	runTests(t, app, []httpTest{
		{
			name: "stored in order", method: http.MethodGet, path: "/api/announcements",
			wantData: marchallList(t,
				announcement.Announcement{ID: 4, SchoolID: "1", Grade: "3", Class: "2", UploadDate: "2024-03-01", Title: "Old", Content: "old"},
				announcement.Announcement{ID: 5, SchoolID: "1", Grade: "3", Class: "2", UploadDate: "2024-03-05", Title: "Trip", Content: "Zoo on Friday"},
				announcement.Announcement{ID: 6, SchoolID: "1", Grade: "3", Class: "2", UploadDate: "2024-03-06", Title: "Exam", Content: "Math"},
			),
		},
	})

	sent := app.mailSvc.SentMessages()
	require.Len(t, sent, 2)
	assert.Equal(t, "teacher@clno.test", sent[0].To[0].Address)
	assert.Equal(t, "New announcement for class 1-3-2", sent[0].Subject)
	assert.True(t, strings.HasPrefix(sent[0].TextContent, "Trip\n\nZoo on Friday"))

	testutil.RemoveFile(t, app.dir, jsonfile.AnnouncementsFile)
	runTests(t, app, []httpTest{
		{
			name: "missing file", method: http.MethodPost, path: path,
			body:     []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "title": "t", "content": "c"}`),
			wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer),
		},
	})
}
