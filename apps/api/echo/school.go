package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/clno/core/school"
)

type schoolApi struct {
	svc      school.Service
	validate *validator.Validate
	metrics  *metrics
}

func registerSchoolAPI(g *echo.Group, svc school.Service, validate *validator.Validate, m *metrics) {
	api := schoolApi{
		svc:      svc,
		validate: validate,
		metrics:  m,
	}

	g.GET("/schools", api.query)
	g.POST("/verify/class", api.verifyClass)
	g.POST("/login/teacher", api.loginTeacher)
	g.POST("/login/student", api.loginStudent)
}

// isRejection reports whether err is an authentication mismatch rather than a failure.
func isRejection(err error) bool {
	switch errors.Cause(err) {
	case school.ErrClassNotFound, school.ErrInvalidPassword, school.ErrInvalidPIN:
		return true
	}
	return false
}

// Handlers

func (api *schoolApi) query(ctx echo.Context) error {
	schools, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	return ctx.JSON(http.StatusOK, schools)
}

func (api *schoolApi) verifyClass(ctx echo.Context) error {
	var data school.ClassVerification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ClassVerification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	err := api.svc.VerifyClass(ctx.Request().Context(), data)
	api.metrics.login("class", err, isRejection(err))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, success("Class verified"))
}

func (api *schoolApi) loginTeacher(ctx echo.Context) error {
	var data school.TeacherLogin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TeacherLogin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	err := api.svc.LoginTeacher(ctx.Request().Context(), data)
	api.metrics.login("teacher", err, isRejection(err))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, success("Login successful"))
}

func (api *schoolApi) loginStudent(ctx echo.Context) error {
	var data school.StudentLogin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentLogin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	ctx.Set(personKey, data.Person())

	err := api.svc.LoginStudent(ctx.Request().Context(), data)
	api.metrics.login("student", err, isRejection(err))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, success("Login successful"))
}
