package homework

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/clno/core"
)

type Task struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
}

type DailyHomework struct {
	ID         int             `json:"id"`
	SchoolID   core.FlexString `json:"schoolId"`
	Grade      core.FlexString `json:"grade"`
	Class      core.FlexString `json:"class"`
	UploadDate string          `json:"uploadDate"`
	Title      string          `json:"title"`
	DueDate    string          `json:"dueDate"`
	Tasks      []Task          `json:"tasks"`
}

type PersonalHomework struct {
	DailyHomework
	AttendanceNumber core.FlexString `json:"attendanceNumber"`
}

// NewTasks numbers the contents 1..n in order.
func NewTasks(contents []string) []Task {
	tasks := make([]Task, 0, len(contents))
	for i, c := range contents {
		tasks = append(tasks, Task{ID: i + 1, Content: c})
	}
	return tasks
}

// NewDailyHomework contains information needed to assign homework to a whole class.
// The front end sends the class number as `classNum`; `class` is accepted too.
type NewDailyHomework struct {
	SchoolID   core.FlexString `json:"schoolId" validate:"required"`
	Grade      core.FlexString `json:"grade" validate:"required"`
	ClassNum   core.FlexString `json:"classNum" validate:"required"`
	Class      core.FlexString `json:"class" validate:"-"`
	Title      string          `json:"title" validate:"required"`
	DueDate    string          `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Tasks      []string        `json:"tasks" validate:"required,min=1,dive,notblank"`
	UploadDate string          `json:"uploadDate"`
}

func (nh *NewDailyHomework) clean() {
	nh.SchoolID = nh.SchoolID.Clean()
	nh.Grade = nh.Grade.Clean()
	if nh.ClassNum = nh.ClassNum.Clean(); nh.ClassNum == "" {
		nh.ClassNum = nh.Class.Clean()
	}
	nh.Title = core.CleanString(nh.Title)
	nh.DueDate = core.CleanString(nh.DueDate)
	nh.UploadDate = core.CleanString(nh.UploadDate)

	// blank tasks are dropped
	var tasks []string
	for _, t := range nh.Tasks {
		if t = core.CleanString(t); t != "" {
			tasks = append(tasks, t)
		}
	}
	nh.Tasks = tasks
}

func (nh *NewDailyHomework) Validate(validate *validator.Validate) error {
	nh.clean()
	return validate.Struct(nh)
}

// NewPersonalHomework contains information needed to assign homework to one student.
type NewPersonalHomework struct {
	NewDailyHomework
	AttendanceNum core.FlexString `json:"attendanceNum" validate:"required"`
}

func (nh *NewPersonalHomework) Validate(validate *validator.Validate) error {
	nh.NewDailyHomework.clean()
	nh.AttendanceNum = nh.AttendanceNum.Clean()
	return validate.Struct(nh)
}

// DailyFilter selects the homework of a class. All fields are required.
type DailyFilter struct {
	SchoolID core.FlexString `query:"school_id" json:"school_id" validate:"required"`
	Grade    core.FlexString `query:"grade" json:"grade" validate:"required"`
	Class    core.FlexString `query:"class" json:"class" validate:"required"`
}

func (f *DailyFilter) clean() {
	f.SchoolID = f.SchoolID.Clean()
	f.Grade = f.Grade.Clean()
	f.Class = f.Class.Clean()
}

func (f *DailyFilter) Validate(validate *validator.Validate) error {
	f.clean()
	return validate.Struct(f)
}

func (f DailyFilter) Match(hw DailyHomework) bool {
	return f.SchoolID == hw.SchoolID.Clean() && f.Grade == hw.Grade.Clean() && f.Class == hw.Class.Clean()
}

// PersonalFilter selects the homework of one student. All fields are required.
type PersonalFilter struct {
	DailyFilter
	AttendanceNum core.FlexString `query:"attendance_num" json:"attendance_num" validate:"required"`
}

func (f *PersonalFilter) Validate(validate *validator.Validate) error {
	f.DailyFilter.clean()
	f.AttendanceNum = f.AttendanceNum.Clean()
	return validate.Struct(f)
}

func (f PersonalFilter) Match(hw PersonalHomework) bool {
	return f.DailyFilter.Match(hw.DailyHomework) && f.AttendanceNum == hw.AttendanceNumber.Clean()
}
