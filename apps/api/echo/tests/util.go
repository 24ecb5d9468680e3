package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/clno/apps/api/echo"
	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/announcement"
	"github.com/trezcool/clno/core/homework"
	"github.com/trezcool/clno/core/school"
	"github.com/trezcool/clno/services/email"
	"github.com/trezcool/clno/storage/jsonfile"
	"github.com/trezcool/clno/testutil"
)

type testApp struct {
	Server
	dir     string
	mailSvc *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T, notify ...string) testApp {
	// set up data dir & repos
	dir := testutil.PrepareDataDir(t)
	db, err := jsonfile.Open(dir)
	if err != nil {
		t.Fatalf("jsonfile.Open() failed: %v", err)
	}

	conf := testutil.NewConfig(dir)
	conf.Notify.Recipients = notify
	logger := testutil.NewLogger(conf)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(logger, conf)
	translator := core.NewTranslator()

	// set up server
	return testApp{
		Server: NewServer(Deps{
			Conf:            conf,
			Logger:          logger,
			Validate:        core.NewValidator(translator),
			Translator:      translator,
			SchoolSvc:       school.NewService(jsonfile.NewSchoolRepository(db), conf),
			AnnouncementSvc: announcement.NewService(jsonfile.NewAnnouncementRepository(db), mailSvc, conf),
			HomeworkSvc:     homework.NewService(jsonfile.NewHomeworkRepository(db), mailSvc, conf),
		}),
		dir:     dir,
		mailSvc: mailSvc,
	}
}

type httpResp struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	ID      int               `json:"id,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

var errServer = httpResp{Message: "Internal Server Error"}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

// assertUnchanged fails when fn modifies the named data file.
func assertUnchanged(t *testing.T, dir, name string, fn func()) {
	before := testutil.ReadFile(t, dir, name)
	fn()
	assert.Equal(t, before, testutil.ReadFile(t, dir, name), "%s was modified", name)
}
