package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/announcement"
)

type announcementApi struct {
	svc      announcement.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerAnnouncementAPI(g *echo.Group, svc announcement.Service, validate *validator.Validate, m *metrics) {
	api := announcementApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	g.GET("/announcements", api.query)
	g.POST("/upload/announcement", api.create)
}

// Handlers

func (api *announcementApi) query(ctx echo.Context) error {
	var filter announcement.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	anns, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) create(ctx echo.Context) error {
	var data announcement.NewAnnouncement
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAnnouncement")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ann, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	api.metrics.upload("announcement")

	return ctx.JSON(http.StatusOK, success("Announcement uploaded successfully", ann.ID))
}
