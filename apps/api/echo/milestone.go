package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/milestone"
)

type milestoneApi struct {
	svc         *milestone.Service
	activitySvc *activity.Service
}

func registerMilestoneAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *milestone.Service, activitySvc *activity.Service) {
	api := milestoneApi{svc: svc, activitySvc: activitySvc}

	mg := g.Group("/milestones", jwt)

	mg.GET("", api.query)
	mg.POST("", api.create, requireFunction(access.FnManageMilestones))

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, requireFunction(access.FnManageMilestones))
	dg.DELETE("", api.destroy, requireFunction(access.FnManageMilestones))
}

func (api *milestoneApi) logActivity(ctx echo.Context, description string) {
	if api.activitySvc == nil {
		return
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return
	}
	_, _ = api.activitySvc.Log(ctx.Request().Context(), activity.TypeMilestoneAdded, claims.Name, description)
}

func (api *milestoneApi) create(ctx echo.Context) error {
	var data milestone.NewMilestone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMilestone")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ms, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating milestone")
	}
	api.logActivity(ctx, fmt.Sprintf("added milestone for age %d (%d)", ms.Age, ms.Amount))

	return ctx.JSON(http.StatusCreated, ms)
}

func (api *milestoneApi) query(ctx echo.Context) error {
	milestones, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying milestones")
	}
	if milestones == nil {
		milestones = []milestone.Milestone{}
	}
	return ctx.JSON(http.StatusOK, milestones)
}

func (api *milestoneApi) retrieve(ctx echo.Context) error {
	ms, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == milestone.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding milestone by ID")
	}
	return ctx.JSON(http.StatusOK, ms)
}

func (api *milestoneApi) update(ctx echo.Context) error {
	var data milestone.UpdateMilestone
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMilestone")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ms, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == milestone.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating milestone")
	}
	return ctx.JSON(http.StatusOK, ms)
}

func (api *milestoneApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting milestone")
	}
	return ctx.NoContent(http.StatusNoContent)
}
