package school

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
)

var (
	// errors
	ErrClassNotFound   = errors.New("class not found")
	ErrSchoolExists    = errors.New("a school with this id already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidPIN      = errors.New("invalid PIN")
)

type (
	Repository interface {
		QuerySchools(ctx context.Context) ([]School, error)
		// CreateSchool appends the school; it returns ErrSchoolExists when the id is taken.
		CreateSchool(ctx context.Context, sch School) (School, error)
		GetTeacherPassword(ctx context.Context) (string, error)
		SetTeacherPassword(ctx context.Context, pwd string) error
		// GetClassPassword returns ErrClassNotFound when the class has no password.
		GetClassPassword(ctx context.Context, ref ClassRef) (string, error)
		SetClassPassword(ctx context.Context, ref ClassRef, pwd string) error
	}

	Service interface {
		QueryAll(ctx context.Context) ([]School, error)
		Create(ctx context.Context, ns NewSchool) (School, error)
		VerifyClass(ctx context.Context, cv ClassVerification) error
		LoginTeacher(ctx context.Context, tl TeacherLogin) error
		LoginStudent(ctx context.Context, sl StudentLogin) error
		SetTeacherPassword(ctx context.Context, pwd string) error
		SetClassPassword(ctx context.Context, ref ClassRef, pwd string) error
	}

	service struct {
		repo    Repository
		appName string
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{repo: repo, appName: conf.AppName}
}

func (svc *service) QueryAll(ctx context.Context) ([]School, error) {
	schools, err := svc.repo.QuerySchools(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}
	if schools == nil {
		schools = []School{}
	}
	return schools, nil
}

func (svc *service) Create(ctx context.Context, ns NewSchool) (School, error) {
	sch, err := svc.repo.CreateSchool(ctx, School{ID: ns.ID, Name: ns.Name})
	if err != nil {
		if errors.Cause(err) == ErrSchoolExists {
			return School{}, core.NewValidationError(err, core.FieldError{Field: "id", Error: err.Error()})
		}
		return School{}, errors.Wrap(err, "creating school")
	}
	return sch, nil
}

// VerifyClass returns ErrClassNotFound or ErrInvalidPassword on mismatch.
func (svc *service) VerifyClass(ctx context.Context, cv ClassVerification) error {
	pwd, err := svc.repo.GetClassPassword(ctx, cv.Class())
	if err != nil {
		if errors.Cause(err) == ErrClassNotFound {
			return ErrClassNotFound
		}
		return errors.Wrap(err, "getting class password")
	}
	if !secretsEqual(cv.Password, pwd) {
		return ErrInvalidPassword
	}
	return nil
}

// LoginTeacher returns ErrInvalidPassword on mismatch. An unset teacher password never matches.
func (svc *service) LoginTeacher(ctx context.Context, tl TeacherLogin) error {
	pwd, err := svc.repo.GetTeacherPassword(ctx)
	if err != nil {
		return errors.Wrap(err, "getting teacher password")
	}
	if pwd == "" || !secretsEqual(tl.Password, pwd) {
		return ErrInvalidPassword
	}
	return nil
}

// LoginStudent returns ErrInvalidPIN when the PIN is not schoolId+grade+classNum+attendanceNum.
func (svc *service) LoginStudent(_ context.Context, sl StudentLogin) error {
	if !secretsEqual(sl.PIN.String(), sl.ExpectedPIN()) {
		return ErrInvalidPIN
	}
	return nil
}

func (svc *service) SetTeacherPassword(ctx context.Context, pwd string) error {
	if err := ValidatePassword(pwd, svc.appName); err != nil {
		return err
	}
	return errors.Wrap(svc.repo.SetTeacherPassword(ctx, pwd), "setting teacher password")
}

func (svc *service) SetClassPassword(ctx context.Context, ref ClassRef, pwd string) error {
	ref = ClassRef{SchoolID: ref.SchoolID.Clean(), Grade: ref.Grade.Clean(), ClassNum: ref.ClassNum.Clean()}
	var flds []core.FieldError
	for _, f := range []struct {
		name string
		val  core.FlexString
	}{{"school", ref.SchoolID}, {"grade", ref.Grade}, {"class", ref.ClassNum}} {
		if f.val == "" {
			flds = append(flds, core.FieldError{Field: f.name, Error: "this field is required"})
		}
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	if err := ValidatePassword(pwd, svc.appName, ref.String(), ref.SchoolID.String()+ref.Grade.String()+ref.ClassNum.String()); err != nil {
		return err
	}
	return errors.Wrap(svc.repo.SetClassPassword(ctx, ref, pwd), "setting class password")
}
