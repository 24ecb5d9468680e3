package tests

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/trezcool/clno/storage/jsonfile"
	"github.com/trezcool/clno/testutil"
)

func Test_schoolApi_query(t *testing.T) {
	app := setup(t)

	t.Run("empty", func(t *testing.T) {
		runTests(t, app, []httpTest{
			{name: "no schools", method: http.MethodGet, path: "/api/schools", wantData: marchallList(t)},
		})
	})

	testutil.WriteFile(t, app.dir, jsonfile.SchoolsFile, `[{"id": 1, "name": "Alpha"}, {"id": "2", "name": "Beta"}]`)
	runTests(t, app, []httpTest{
		{
			name: "raw list", method: http.MethodGet, path: "/api/schools",
			wantData: []byte(`[{"id": "1", "name": "Alpha"}, {"id": "2", "name": "Beta"}]`),
		},
		{
			name: "trailing slash", method: http.MethodGet, path: "/api/schools/",
			wantData: []byte(`[{"id": "1", "name": "Alpha"}, {"id": "2", "name": "Beta"}]`),
		},
	})

	testutil.WriteFile(t, app.dir, jsonfile.SchoolsFile, `[{"id": 1,`)
	runTests(t, app, []httpTest{
		{name: "corrupt file", method: http.MethodGet, path: "/api/schools", wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer)},
	})

	testutil.RemoveFile(t, app.dir, jsonfile.SchoolsFile)
	runTests(t, app, []httpTest{
		{name: "missing file", method: http.MethodGet, path: "/api/schools", wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer)},
	})
}

func Test_schoolApi_lostDataDir(t *testing.T) {
	app := setup(t)

	if err := os.RemoveAll(app.dir); err != nil {
		t.Fatalf("os.RemoveAll() failed: %v", err)
	}
	runTests(t, app, []httpTest{
		{
			name: "data dir removed", method: http.MethodGet, path: "/api/schools",
			wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer),
		},
	})

	select {
	case <-app.ShutdownSignal():
	case <-time.After(time.Second):
		t.Error("no shutdown signal after losing the data dir")
	}
}

func Test_schoolApi_verifyClass(t *testing.T) {
	app := setup(t)
	testutil.WriteFile(t, app.dir, jsonfile.PasswordsFile, `{"1": {"3": {"2": "blue-42"}}, "7": {"1": {"1": 4242}}}`)

	path := "/api/verify/class"
	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{"schoolId": "1"}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpResp{
				Message: "grade: this field is required",
				Errors: map[string]string{
					"grade":    "this field is required",
					"class":    "this field is required",
					"password": "this field is required",
				},
			}),
		},
		{
			name: "malformed body", body: []byte(`{"schoolId": `), wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown class", body: []byte(`{"schoolId": "1", "grade": "3", "class": "9", "password": "blue-42"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpResp{Message: "class not found"}),
		},
		{
			name: "wrong password", body: []byte(`{"schoolId": "1", "grade": "3", "class": "2", "password": "red-42"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpResp{Message: "invalid password"}),
		},
		{
			name: "verified", body: []byte(`{"schoolId": 1, "grade": " 3 ", "class": 2, "password": "blue-42"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Class verified"}),
		},
		{
			name: "numeric password", body: []byte(`{"schoolId": "7", "grade": "1", "class": "1", "password": "4242"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Class verified"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = path
	}
	runTests(t, app, tests)
}

func Test_schoolApi_loginTeacher(t *testing.T) {
	app := setup(t)

	path := "/api/login/teacher"
	runTests(t, app, []httpTest{
		{
			name: "empty stored password never matches", method: http.MethodPost, path: path, body: []byte(`{"password": "x"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpResp{Message: "invalid password"}),
		},
	})

	testutil.WriteFile(t, app.dir, jsonfile.ConfigFile, `{"teacherPassword": "chalk&board"}`)
	tests := []httpTest{
		{
			name: "missing password", body: []byte(`{}`), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpResp{
				Message: "password: this field is required",
				Errors:  map[string]string{"password": "this field is required"},
			}),
		},
		{
			name: "wrong password", body: []byte(`{"password": "chalk"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpResp{Message: "invalid password"}),
		},
		{
			name: "logged in", body: []byte(`{"password": "chalk&board"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = path
	}
	runTests(t, app, tests)

	testutil.WriteFile(t, app.dir, jsonfile.ConfigFile, `{"teacherPassword": 1234}`)
	runTests(t, app, []httpTest{
		{
			name: "numeric stored password", method: http.MethodPost, path: path, body: []byte(`{"password": "1234"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
	})

	testutil.WriteFile(t, app.dir, jsonfile.ConfigFile, `not json`)
	runTests(t, app, []httpTest{
		{
			name: "corrupt config", method: http.MethodPost, path: path, body: []byte(`{"password": "chalk&board"}`),
			wantCode: http.StatusInternalServerError, wantData: marchallObj(t, errServer),
		},
	})
}

func Test_schoolApi_loginStudent(t *testing.T) {
	app := setup(t)

	path := "/api/login/student"
	tests := []httpTest{
		{
			name: "missing pin", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "attendanceNum": "15"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpResp{
				Message: "pin: this field is required",
				Errors:  map[string]string{"pin": "this field is required"},
			}),
		},
		{
			name: "blank attendance number", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "attendanceNum": "  ", "pin": "132"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpResp{
				Message: "attendanceNum: this field is required",
				Errors:  map[string]string{"attendanceNum": "this field is required"},
			}),
		},
		{
			name: "pin with whitespace", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "attendanceNum": "15", "pin": " 13215 "}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
		{
			name: "reordered pin", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "attendanceNum": "15", "pin": "15321"}`),
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, httpResp{Message: "invalid PIN"}),
		},
		{
			name: "logged in", body: []byte(`{"schoolId": "1", "grade": "3", "classNum": "2", "attendanceNum": "15", "pin": "13215"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
		{
			name: "numeric ids", body: []byte(`{"schoolId": 1, "grade": 3, "classNum": 2, "attendanceNum": 15, "pin": "13215"}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
		{
			name: "numeric pin", body: []byte(`{"schoolId": 1, "grade": 3, "classNum": 2, "attendanceNum": 15, "pin": 13215}`),
			wantData: marchallObj(t, httpResp{Success: true, Message: "Login successful"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = path
	}
	runTests(t, app, tests)
}

func Test_misc(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "Welcome to the Clno API!" {
		t.Errorf("home: code = %v, body = %q", rec.Code, rec.Body.String())
	}

	runTests(t, app, []httpTest{
		{name: "health", method: http.MethodGet, path: "/health", wantData: []byte(`{"status": "ok"}`)},
		{name: "not found", method: http.MethodGet, path: "/api/nope", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpResp{Message: "Not Found"})},
	})

	req, rec = newRequest(http.MethodGet, "/metrics")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("metrics: code = %v", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "clno_http_requests_total") {
		t.Errorf("metrics: missing request counter in %q", body)
	}
}
