package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/officer"
)

type officerApi struct {
	svc         *officer.Service
	activitySvc *activity.Service
}

func registerOfficerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *officer.Service, activitySvc *activity.Service) {
	api := officerApi{svc: svc, activitySvc: activitySvc}

	og := g.Group("/officers", jwt)

	// the roster is public to signed-in users; management follows the officers tab
	og.GET("", api.query)
	og.POST("", api.create, requireTab(access.TabOfficers))

	dg := og.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, requireTab(access.TabOfficers))
	dg.DELETE("", api.destroy, requireTab(access.TabOfficers))
}

func (api *officerApi) logActivity(ctx echo.Context, description string) {
	if api.activitySvc == nil {
		return
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return
	}
	_, _ = api.activitySvc.Log(ctx.Request().Context(), activity.TypeOfficerAdded, claims.Name, description)
}

func (api *officerApi) create(ctx echo.Context) error {
	var data officer.NewOfficer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewOfficer")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	o, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating officer")
	}
	api.logActivity(ctx, fmt.Sprintf("added officer %s (%s)", o.Name, o.Position))

	return ctx.JSON(http.StatusCreated, o)
}

func (api *officerApi) query(ctx echo.Context) error {
	officers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying officers")
	}
	if officers == nil {
		officers = []officer.Officer{}
	}
	return ctx.JSON(http.StatusOK, officers)
}

func (api *officerApi) retrieve(ctx echo.Context) error {
	o, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == officer.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding officer by ID")
	}
	return ctx.JSON(http.StatusOK, o)
}

func (api *officerApi) update(ctx echo.Context) error {
	var data officer.UpdateOfficer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateOfficer")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	o, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == officer.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating officer")
	}
	return ctx.JSON(http.StatusOK, o)
}

func (api *officerApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting officer")
	}
	return ctx.NoContent(http.StatusNoContent)
}
