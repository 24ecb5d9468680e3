package school

import (
	"crypto/subtle"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/clno/core"
)

type School struct {
	ID   core.FlexString `json:"id"`
	Name string          `json:"name"`
}

// NewSchool contains information needed to add a School.
type NewSchool struct {
	ID   core.FlexString `json:"id" validate:"required"`
	Name string          `json:"name" validate:"required"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.ID = ns.ID.Clean()
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// ClassRef identifies a class: schoolId → grade → classNum.
type ClassRef struct {
	SchoolID core.FlexString
	Grade    core.FlexString
	ClassNum core.FlexString
}

func (ref ClassRef) String() string {
	return strings.Join([]string{ref.SchoolID.String(), ref.Grade.String(), ref.ClassNum.String()}, "-")
}

// ClassPasswords is the nested schoolId → grade → classNum → password mapping.
// Numeric passwords in hand-edited files are read as their decimal text.
type ClassPasswords map[string]map[string]map[string]core.FlexString

// Get returns the password of the referenced class.
func (cp ClassPasswords) Get(ref ClassRef) (string, bool) {
	grades, ok := cp[ref.SchoolID.String()]
	if !ok {
		return "", false
	}
	classes, ok := grades[ref.Grade.String()]
	if !ok {
		return "", false
	}
	pwd, ok := classes[ref.ClassNum.String()]
	return pwd.String(), ok
}

// Set creates or replaces the password of the referenced class.
func (cp ClassPasswords) Set(ref ClassRef, pwd string) {
	grades, ok := cp[ref.SchoolID.String()]
	if !ok {
		grades = make(map[string]map[string]core.FlexString)
		cp[ref.SchoolID.String()] = grades
	}
	classes, ok := grades[ref.Grade.String()]
	if !ok {
		classes = make(map[string]core.FlexString)
		grades[ref.Grade.String()] = classes
	}
	classes[ref.ClassNum.String()] = core.FlexString(pwd)
}

// Config is the singleton settings document.
type Config struct {
	TeacherPassword core.FlexString `json:"teacherPassword"`
}

// ClassVerification is the payload of a class password check.
type ClassVerification struct {
	SchoolID core.FlexString `json:"schoolId" validate:"required"`
	Grade    core.FlexString `json:"grade" validate:"required"`
	ClassNum core.FlexString `json:"class" validate:"required"`
	Password string          `json:"password" validate:"required"`
}

func (cv *ClassVerification) Validate(validate *validator.Validate) error {
	cv.SchoolID = cv.SchoolID.Clean()
	cv.Grade = cv.Grade.Clean()
	cv.ClassNum = cv.ClassNum.Clean()
	return validate.Struct(cv)
}

func (cv ClassVerification) Class() ClassRef {
	return ClassRef{SchoolID: cv.SchoolID, Grade: cv.Grade, ClassNum: cv.ClassNum}
}

// TeacherLogin is the payload of a teacher login.
type TeacherLogin struct {
	Password string `json:"password" validate:"required"`
}

func (tl *TeacherLogin) Validate(validate *validator.Validate) error {
	return validate.Struct(tl)
}

// StudentLogin is the payload of a student login.
type StudentLogin struct {
	SchoolID      core.FlexString `json:"schoolId" validate:"required"`
	Grade         core.FlexString `json:"grade" validate:"required"`
	ClassNum      core.FlexString `json:"classNum" validate:"required"`
	AttendanceNum core.FlexString `json:"attendanceNum" validate:"required"`
	PIN           core.FlexString `json:"pin" validate:"required"`
}

func (sl *StudentLogin) Validate(validate *validator.Validate) error {
	sl.SchoolID = sl.SchoolID.Clean()
	sl.Grade = sl.Grade.Clean()
	sl.ClassNum = sl.ClassNum.Clean()
	sl.AttendanceNum = sl.AttendanceNum.Clean()
	sl.PIN = sl.PIN.Clean()
	return validate.Struct(sl)
}

// ExpectedPIN is the concatenation schoolId+grade+classNum+attendanceNum.
func (sl StudentLogin) ExpectedPIN() string {
	return sl.SchoolID.String() + sl.Grade.String() + sl.ClassNum.String() + sl.AttendanceNum.String()
}

func (sl StudentLogin) Person() core.Person {
	ref := ClassRef{SchoolID: sl.SchoolID, Grade: sl.Grade, ClassNum: sl.ClassNum}
	return core.Person{ID: ref.String() + "-" + sl.AttendanceNum.String(), Username: ref.String()}
}

// secretsEqual compares plaintext secrets in constant time.
func secretsEqual(given, want string) bool {
	return subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
}
