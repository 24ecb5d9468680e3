package homework

import (
	"context"
	"fmt"
	"net/mail"
	texttmpl "text/template"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/clno/core"
)

var nowFunc = time.Now // mockable

const dateLayout = "2006-01-02"

var notifyTmpl = texttmpl.Must(texttmpl.New("homework").Parse(
	"{{.Title}} (due {{.DueDate}})\n\n{{range .Tasks}}{{.ID}}. {{.Content}}\n{{end}}",
))

type (
	// Repository creates homework with ID = max(existing IDs)+1 per collection, and queries preserve stored order.
	Repository interface {
		QueryDailyHomework(ctx context.Context) ([]DailyHomework, error)
		CreateDailyHomework(ctx context.Context, hw DailyHomework) (DailyHomework, error)
		QueryPersonalHomework(ctx context.Context) ([]PersonalHomework, error)
		CreatePersonalHomework(ctx context.Context, hw PersonalHomework) (PersonalHomework, error)
	}

	Service interface {
		QueryDaily(ctx context.Context, filter DailyFilter) ([]DailyHomework, error)
		CreateDaily(ctx context.Context, nh NewDailyHomework) (DailyHomework, error)
		QueryPersonal(ctx context.Context, filter PersonalFilter) ([]PersonalHomework, error)
		CreatePersonal(ctx context.Context, nh NewPersonalHomework) (PersonalHomework, error)
	}

	service struct {
		repo       Repository
		mailSvc    core.EmailService
		recipients []mail.Address
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	return &service{
		repo:       repo,
		mailSvc:    mailSvc,
		recipients: conf.NotifyRecipients(),
	}
}

func (svc *service) QueryDaily(ctx context.Context, filter DailyFilter) ([]DailyHomework, error) {
	all, err := svc.repo.QueryDailyHomework(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying daily homework")
	}
	hws := make([]DailyHomework, 0, len(all))
	for _, hw := range all {
		if filter.Match(hw) {
			hws = append(hws, hw)
		}
	}
	return hws, nil
}

func (svc *service) CreateDaily(ctx context.Context, nh NewDailyHomework) (DailyHomework, error) {
	hw, err := svc.repo.CreateDailyHomework(ctx, nh.homework())
	if err != nil {
		return DailyHomework{}, errors.Wrap(err, "creating daily homework")
	}
	svc.notify("daily homework", hw, "")
	return hw, nil
}

func (svc *service) QueryPersonal(ctx context.Context, filter PersonalFilter) ([]PersonalHomework, error) {
	all, err := svc.repo.QueryPersonalHomework(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying personal homework")
	}
	hws := make([]PersonalHomework, 0, len(all))
	for _, hw := range all {
		if filter.Match(hw) {
			hws = append(hws, hw)
		}
	}
	return hws, nil
}

func (svc *service) CreatePersonal(ctx context.Context, nh NewPersonalHomework) (PersonalHomework, error) {
	hw, err := svc.repo.CreatePersonalHomework(ctx, PersonalHomework{
		DailyHomework:    nh.homework(),
		AttendanceNumber: nh.AttendanceNum,
	})
	if err != nil {
		return PersonalHomework{}, errors.Wrap(err, "creating personal homework")
	}
	svc.notify("personal homework", hw.DailyHomework, hw.AttendanceNumber)
	return hw, nil
}

func (nh NewDailyHomework) homework() DailyHomework {
	uploadDate := nh.UploadDate
	if uploadDate == "" {
		uploadDate = nowFunc().Format(dateLayout)
	}
	return DailyHomework{
		SchoolID:   nh.SchoolID,
		Grade:      nh.Grade,
		Class:      nh.ClassNum,
		UploadDate: uploadDate,
		Title:      nh.Title,
		DueDate:    nh.DueDate,
		Tasks:      NewTasks(nh.Tasks),
	}
}

func (svc *service) notify(kind string, hw DailyHomework, attendanceNum core.FlexString) {
	if svc.mailSvc == nil || len(svc.recipients) == 0 {
		return
	}
	target := fmt.Sprintf("class %s-%s-%s", hw.SchoolID, hw.Grade, hw.Class)
	if attendanceNum != "" {
		target += fmt.Sprintf(" (student #%s)", attendanceNum)
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.recipients,
		Subject:      fmt.Sprintf("New %s for %s", kind, target),
		Template:     notifyTmpl,
		TemplateData: hw,
	})
}
