package echoapi

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/member"
)

type memberApi struct {
	svc         *member.Service
	activitySvc *activity.Service
}

func registerMemberAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *member.Service, activitySvc *activity.Service) {
	api := memberApi{svc: svc, activitySvc: activitySvc}

	mg := g.Group("/members", jwt)

	mg.GET("", api.query, requireFunction(access.FnViewLatestPayments))
	mg.POST("", api.create, requireFunction(access.FnAddMembers))
	mg.DELETE("", api.destroyMultiple, requireFunction(access.FnDeleteMembers))

	mg.GET("/number/:number", api.retrieveByNumber, requireFunction(access.FnViewLatestPayments))

	dg := mg.Group("/:id")
	dg.GET("", api.retrieve, requireFunction(access.FnViewLatestPayments))
	dg.PUT("", api.update, requireFunction(access.FnAssignStatus))
	dg.DELETE("", api.destroy, requireFunction(access.FnDeleteMembers))

	dg.POST("/payments", api.addPayment, requireFunction(access.FnAddPayment))
	dg.PUT("/payments/:year", api.updatePayment, requireFunction(access.FnUpdatePayment))
}

func (api *memberApi) logActivity(ctx echo.Context, typ activity.Type, description string) {
	if api.activitySvc == nil {
		return
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return
	}
	_, _ = api.activitySvc.Log(ctx.Request().Context(), typ, claims.Name, description)
}

// Handlers

func (api *memberApi) create(ctx echo.Context) error {
	var data member.NewMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMember")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering member")
	}
	api.logActivity(ctx, activity.TypeMemberAdded, fmt.Sprintf("registered member %s (%s)", m.Name, m.MemberNumber))

	return ctx.JSON(http.StatusCreated, m)
}

func (api *memberApi) query(ctx echo.Context) error {
	filter := new(member.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []member.Member{})
	}
	filter.Clean()

	members, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying members")
	}
	if members == nil {
		members = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}

func (api *memberApi) retrieve(ctx echo.Context) error {
	m, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding member by ID")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *memberApi) retrieveByNumber(ctx echo.Context) error {
	m, err := api.svc.GetByNumber(ctx.Request().Context(), ctx.Param("number"))
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding member by number")
	}
	return ctx.JSON(http.StatusOK, m)
}

func (api *memberApi) update(ctx echo.Context) error {
	orig, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding member by ID")
	}

	var data member.UpdateMember
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMember")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.Update(ctx.Request().Context(), orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating member")
	}

	if m.Status != orig.Status {
		api.logActivity(ctx, activity.TypeStatusChanged,
			fmt.Sprintf("changed status of %s (%s) from %s to %s", m.Name, m.MemberNumber, orig.Status, m.Status))
	} else {
		api.logActivity(ctx, activity.TypeProfileUpdated, fmt.Sprintf("updated profile of %s (%s)", m.Name, m.MemberNumber))
	}
	return ctx.JSON(http.StatusOK, m)
}

// destroy permanently removes a member. The `confirm` query parameter must be
// set; deletion is non-recoverable.
func (api *memberApi) destroy(ctx echo.Context) error {
	if confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm")); !confirmed {
		return core.NewValidationError(nil, core.FieldError{Field: "confirm", Error: "deletion must be confirmed"})
	}

	m, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding member by ID")
	}

	if err := api.svc.Delete(ctx.Request().Context(), m.ID); err != nil {
		return errors.Wrap(err, "deleting member")
	}
	api.logActivity(ctx, activity.TypeMemberDeleted, fmt.Sprintf("deleted member %s (%s)", m.Name, m.MemberNumber))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) destroyMultiple(ctx echo.Context) error {
	if confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm")); !confirmed {
		return core.NewValidationError(nil, core.FieldError{Field: "confirm", Error: "deletion must be confirmed"})
	}

	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}
	sort.Strings(query.IDs)

	if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
		return errors.Wrap(err, "deleting members")
	}
	api.logActivity(ctx, activity.TypeMemberDeleted, fmt.Sprintf("deleted %d members", len(query.IDs)))
	return ctx.NoContent(http.StatusNoContent)
}

func (api *memberApi) addPayment(ctx echo.Context) error {
	var data member.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.AddPayment(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "adding payment")
	}
	api.logActivity(ctx, activity.TypePaymentAdded,
		fmt.Sprintf("recorded %d payment of %d for %s (%s)", data.Year, data.Amount, m.Name, m.MemberNumber))

	return ctx.JSON(http.StatusOK, m)
}

func (api *memberApi) updatePayment(ctx echo.Context) error {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "year", Error: "must be a valid year"})
	}

	var data member.UpdatePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePayment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.svc.UpdatePayment(ctx.Request().Context(), ctx.Param("id"), year, data)
	if err != nil {
		if errors.Cause(err) == member.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating payment")
	}
	api.logActivity(ctx, activity.TypePaymentUpdated,
		fmt.Sprintf("updated %d payment for %s (%s)", year, m.Name, m.MemberNumber))

	return ctx.JSON(http.StatusOK, m)
}
