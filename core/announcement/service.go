package announcement

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

var notifyTmpl = texttmpl.Must(texttmpl.New("announcement").Parse(
	"{{.Title}}\n\n{{.Content}}\n\nPublished on {{.UploadDate}}.",
))

type (
	Repository interface {
		QueryAnnouncements(ctx context.Context) ([]Announcement, error)
		// CreateAnnouncement appends the Announcement with ID = max(existing IDs)+1 and returns it.
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
	}

	Service interface {
		Query(ctx context.Context, filter QueryFilter) ([]Announcement, error)
		Create(ctx context.Context, na NewAnnouncement) (Announcement, error)
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

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Announcement, error) {
	all, err := svc.repo.QueryAnnouncements(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying announcements")
	}
	filter.Clean()
	if filter.IsEmpty() {
		if all == nil {
			all = []Announcement{}
		}
		return all, nil
	}

	anns := make([]Announcement, 0, len(all))
	for _, a := range all {
		if filter.Match(a) {
			anns = append(anns, a)
		}
	}
	return anns, nil
}

func (svc *service) Create(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	uploadDate := na.UploadDate
	if uploadDate == "" {
		uploadDate = nowFunc().Format(dateLayout)
	}
	ann, err := svc.repo.CreateAnnouncement(ctx, Announcement{
		SchoolID:   na.SchoolID,
		Grade:      na.Grade,
		Class:      na.ClassNum,
		UploadDate: uploadDate,
		Title:      na.Title,
		Content:    na.Content,
	})
	if err != nil {
		return Announcement{}, errors.Wrap(err, "creating announcement")
	}
	svc.notify(ann)
	return ann, nil
}

func (svc *service) notify(ann Announcement) {
	if svc.mailSvc == nil || len(svc.recipients) == 0 {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           svc.recipients,
		Subject:      fmt.Sprintf("New announcement for class %s-%s-%s", ann.SchoolID, ann.Grade, ann.Class),
		Template:     notifyTmpl,
		TemplateData: ann,
	})
}
