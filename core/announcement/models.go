package announcement

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/clno/core"
)

type Announcement struct {
	ID         int             `json:"id"`
	SchoolID   core.FlexString `json:"schoolId"`
	Grade      core.FlexString `json:"grade"`
	Class      core.FlexString `json:"class"`
	UploadDate string          `json:"uploadDate"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
}

// NewAnnouncement contains information needed to publish an Announcement.
// The front end sends the class number as `classNum`; `class` is accepted too.
type NewAnnouncement struct {
	SchoolID   core.FlexString `json:"schoolId" validate:"required"`
	Grade      core.FlexString `json:"grade" validate:"required"`
	ClassNum   core.FlexString `json:"classNum" validate:"required"`
	Class      core.FlexString `json:"class" validate:"-"`
	Title      string          `json:"title" validate:"required"`
	Content    string          `json:"content" validate:"required"`
	UploadDate string          `json:"uploadDate"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.SchoolID = na.SchoolID.Clean()
	na.Grade = na.Grade.Clean()
	if na.ClassNum = na.ClassNum.Clean(); na.ClassNum == "" {
		na.ClassNum = na.Class.Clean()
	}
	na.Title = core.CleanString(na.Title)
	na.Content = core.CleanString(na.Content)
	na.UploadDate = core.CleanString(na.UploadDate)
	return validate.Struct(na)
}

// QueryFilter keeps the Announcements matching every non-empty field.
type QueryFilter struct {
	SchoolID core.FlexString `query:"school_id"`
	Grade    core.FlexString `query:"grade"`
	Class    core.FlexString `query:"class"`
}

func (qf *QueryFilter) Clean() {
	qf.SchoolID = qf.SchoolID.Clean()
	qf.Grade = qf.Grade.Clean()
	qf.Class = qf.Class.Clean()
}

func (qf QueryFilter) IsEmpty() bool {
	return qf.SchoolID == "" && qf.Grade == "" && qf.Class == ""
}

func (qf QueryFilter) Match(a Announcement) bool {
	return (qf.SchoolID == "" || qf.SchoolID == a.SchoolID.Clean()) &&
		(qf.Grade == "" || qf.Grade == a.Grade.Clean()) &&
		(qf.Class == "" || qf.Class == a.Class.Clean())
}
