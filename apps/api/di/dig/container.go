package digcontainer

import (
	"context"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/clno/apps/api/echo"
	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/announcement"
	"github.com/trezcool/clno/core/homework"
	"github.com/trezcool/clno/core/school"
	emailsvc "github.com/trezcool/clno/services/email"
	logsvc "github.com/trezcool/clno/services/logger"
	"github.com/trezcool/clno/storage"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

type serverParams struct {
	dig.In

	Conf            *core.Config
	Logger          core.Logger
	Validate        *validator.Validate
	Translator      ut.Translator
	SchoolSvc       school.Service
	AnnouncementSvc announcement.Service
	HomeworkSvc     homework.Service
}

func newLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
}

func newRepositories(conf *core.Config, loggerParam StoreLoggerParam) *storage.Repositories {
	repos, err := storage.Open(context.Background(), conf)
	if err != nil {
		loggerParam.Logger.Fatal("opening storage: "+err.Error(), err)
	}
	loggerParam.Logger.Info("storage ready: engine " + conf.Storage.Engine)
	return repos
}

func newSchoolRepository(repos *storage.Repositories) school.Repository {
	return repos.School
}

func newAnnouncementRepository(repos *storage.Repositories) announcement.Repository {
	return repos.Announcement
}

func newHomeworkRepository(repos *storage.Repositories) homework.Repository {
	return repos.Homework
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	return emailsvc.NewEmailService(log.New(os.Stdout, "EMAIL : ", log.LstdFlags), logger, conf)
}

func newServer(p serverParams) echoapi.Server {
	return echoapi.NewServer(echoapi.Deps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		SchoolSvc:       p.SchoolSvc,
		AnnouncementSvc: p.AnnouncementSvc,
		HomeworkSvc:     p.HomeworkSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newSchoolRepository))
	must(c.Provide(newAnnouncementRepository))
	must(c.Provide(newHomeworkRepository))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))
	must(c.Provide(school.NewService))
	must(c.Provide(announcement.NewService))
	must(c.Provide(homework.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
