package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/member"
)

type reportsApi struct {
	svc *member.Service
}

func registerReportsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *member.Service) {
	api := reportsApi{svc: svc}

	rg := g.Group("/reports", jwt)
	rg.GET("/overview", api.overview, requireFunction(access.FnViewLatestPayments))
	rg.GET("/payment-matrix", api.paymentMatrix, requireFunction(access.FnViewAllPaymentRecords))
}

// overview returns every member with their latest payment and recent
// standings (system function 16).
func (api *reportsApi) overview(ctx echo.Context) error {
	rows, err := api.svc.Overview(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building overview")
	}
	if rows == nil {
		rows = []member.OverviewRow{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

// paymentMatrix returns the full payment history over a year range
// (system function 17).
func (api *reportsApi) paymentMatrix(ctx echo.Context) error {
	currentYear := member.NowFunc().UTC().Year()

	startYear, err := strconv.Atoi(ctx.QueryParam("start_year"))
	if err != nil {
		startYear = currentYear - 4
	}
	endYear, err := strconv.Atoi(ctx.QueryParam("end_year"))
	if err != nil {
		endYear = currentYear
	}
	if startYear > endYear {
		return core.NewValidationError(nil,
			core.FieldError{Field: "start_year", Error: "must not be after end_year"})
	}

	matrix, err := api.svc.PaymentMatrix(ctx.Request().Context(), startYear, endYear)
	if err != nil {
		return errors.Wrap(err, "building payment matrix")
	}
	return ctx.JSON(http.StatusOK, matrix)
}
