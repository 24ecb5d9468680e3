package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/homework"
)

type homeworkApi struct {
	svc      homework.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerHomeworkAPI(g *echo.Group, svc homework.Service, validate *validator.Validate, m *metrics) {
	api := homeworkApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	g.GET("/daily_homework", api.queryDaily)
	g.GET("/personal_homework", api.queryPersonal)
	g.POST("/upload/daily_homework", api.createDaily)
	g.POST("/upload/personal_homework", api.createPersonal)
}

// Handlers

func (api *homeworkApi) queryDaily(ctx echo.Context) error {
	var filter homework.DailyFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to DailyFilter")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}

	hws, err := api.svc.QueryDaily(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying daily homework")
	}
	return ctx.JSON(http.StatusOK, hws)
}

func (api *homeworkApi) queryPersonal(ctx echo.Context) error {
	var filter homework.PersonalFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to PersonalFilter")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}

	hws, err := api.svc.QueryPersonal(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying personal homework")
	}
	return ctx.JSON(http.StatusOK, hws)
}

func (api *homeworkApi) createDaily(ctx echo.Context) error {
	var data homework.NewDailyHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewDailyHomework")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hw, err := api.svc.CreateDaily(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating daily homework")
	}
	api.metrics.upload("daily_homework")

	return ctx.JSON(http.StatusOK, success("Daily homework uploaded successfully", hw.ID))
}

func (api *homeworkApi) createPersonal(ctx echo.Context) error {
	var data homework.NewPersonalHomework
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPersonalHomework")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	hw, err := api.svc.CreatePersonal(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating personal homework")
	}
	api.metrics.upload("personal_homework")

	return ctx.JSON(http.StatusOK, success("Personal homework uploaded successfully", hw.ID))
}
