package school

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clno/core"
)

type repoMock struct {
	schools         []School
	teacherPassword string
	passwords       ClassPasswords
	err             error
}

var _ Repository = (*repoMock)(nil)

func (r *repoMock) QuerySchools(context.Context) ([]School, error) { return r.schools, r.err }

func (r *repoMock) CreateSchool(_ context.Context, sch School) (School, error) {
	for _, s := range r.schools {
		if s.ID == sch.ID {
			return School{}, ErrSchoolExists
		}
	}
	r.schools = append(r.schools, sch)
	return sch, r.err
}

func (r *repoMock) GetTeacherPassword(context.Context) (string, error) { return r.teacherPassword, r.err }

func (r *repoMock) SetTeacherPassword(_ context.Context, pwd string) error {
	r.teacherPassword = pwd
	return r.err
}

func (r *repoMock) GetClassPassword(_ context.Context, ref ClassRef) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	pwd, ok := r.passwords.Get(ref)
	if !ok {
		return "", errors.WithStack(ErrClassNotFound)
	}
	return pwd, nil
}

func (r *repoMock) SetClassPassword(_ context.Context, ref ClassRef, pwd string) error {
	r.passwords.Set(ref, pwd)
	return r.err
}

func newService(repo Repository) Service {
	return NewService(repo, &core.Config{AppName: "Clno"})
}

func TestService_LoginStudent(t *testing.T) {
	svc := newService(&repoMock{})
	base := StudentLogin{SchoolID: "1", Grade: "3", ClassNum: "2", AttendanceNum: "15"}

	tests := []struct {
		name    string
		pin     string
		wantErr error
	}{
		{name: "concatenation", pin: "13215"},
		{name: "reversed", pin: "15213", wantErr: ErrInvalidPIN},
		{name: "partial", pin: "132", wantErr: ErrInvalidPIN},
		{name: "empty", pin: "", wantErr: ErrInvalidPIN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl := base
			sl.PIN = core.FlexString(tt.pin)
			if err := svc.LoginStudent(context.Background(), sl); err != tt.wantErr {
				t.Errorf("LoginStudent() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestService_LoginTeacher(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	svc := newService(repo)

	assert.Equal(t, ErrInvalidPassword, svc.LoginTeacher(ctx, TeacherLogin{Password: ""}))

	repo.teacherPassword = "chalk&board"
	assert.NoError(t, svc.LoginTeacher(ctx, TeacherLogin{Password: "chalk&board"}))
	assert.Equal(t, ErrInvalidPassword, svc.LoginTeacher(ctx, TeacherLogin{Password: "chalk"}))

	repo.err = core.NewDataError(nil, "reading config.json")
	err := svc.LoginTeacher(ctx, TeacherLogin{Password: "chalk&board"})
	assert.True(t, core.IsDataUnavailable(err))
}

func TestService_VerifyClass(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{passwords: ClassPasswords{}}
	repo.passwords.Set(ClassRef{SchoolID: "1", Grade: "3", ClassNum: "2"}, "blue-42")
	svc := newService(repo)

	cv := ClassVerification{SchoolID: "1", Grade: "3", ClassNum: "2", Password: "blue-42"}
	assert.NoError(t, svc.VerifyClass(ctx, cv))

	cv.Password = "blue"
	assert.Equal(t, ErrInvalidPassword, svc.VerifyClass(ctx, cv))

	cv.ClassNum = "9"
	assert.Equal(t, ErrClassNotFound, svc.VerifyClass(ctx, cv))
}

func TestService_SetClassPassword(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{passwords: ClassPasswords{}}
	svc := newService(repo)
	ref := ClassRef{SchoolID: " 1 ", Grade: "3", ClassNum: "2"}

	err := svc.SetClassPassword(ctx, ClassRef{SchoolID: "1"}, "blue-42")
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Fields, 2)

	assert.Error(t, svc.SetClassPassword(ctx, ref, "132"), "too short")
	assert.Error(t, svc.SetClassPassword(ctx, ref, "1-3-2"), "class identifier")

	require.NoError(t, svc.SetClassPassword(ctx, ref, "blue-42"))
	pwd, ok := repo.passwords.Get(ClassRef{SchoolID: "1", Grade: "3", ClassNum: "2"})
	assert.True(t, ok)
	assert.Equal(t, "blue-42", pwd)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newService(&repoMock{})

	_, err := svc.Create(ctx, NewSchool{ID: "1", Name: "Alpha"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, NewSchool{ID: "1", Name: "Beta"})
	var vErr *core.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "id", vErr.Fields[0].Field)

	schools, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []School{{ID: "1", Name: "Alpha"}}, schools)
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pwd     string
		attrs   []string
		wantErr bool
	}{
		{name: "too short", pwd: "abc", wantErr: true},
		{name: "whitespace", pwd: "blue 42", wantErr: true},
		{name: "similar to app name", pwd: "clno1", attrs: []string{"Clno"}, wantErr: true},
		{name: "ok", pwd: "blue-42", attrs: []string{"Clno", "1-3-2", "132"}},
		{name: "empty attr ignored", pwd: "blue-42", attrs: []string{"  "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.pwd, tt.attrs...); (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
