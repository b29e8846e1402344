package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/access"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/bulletin"
)

type bulletinApi struct {
	svc         *bulletin.Service
	activitySvc *activity.Service
}

func registerBulletinAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *bulletin.Service, activitySvc *activity.Service) {
	api := bulletinApi{svc: svc, activitySvc: activitySvc}

	bg := g.Group("/bulletin", jwt)

	bg.GET("", api.queryActive)
	bg.GET("/all", api.queryAll, requireFunction(access.FnPostBulletinUpdates))
	bg.POST("", api.create, requireFunction(access.FnPostBulletinUpdates))

	dg := bg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, requireFunction(access.FnPostBulletinUpdates))
	dg.DELETE("", api.destroy, requireFunction(access.FnPostBulletinUpdates))
}

func (api *bulletinApi) logActivity(ctx echo.Context, description string) {
	if api.activitySvc == nil {
		return
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return
	}
	_, _ = api.activitySvc.Log(ctx.Request().Context(), activity.TypeBulletinPosted, claims.Name, description)
}

func (api *bulletinApi) create(ctx echo.Context) error {
	var data bulletin.NewPost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPost")
	}

	// posts are published under the signed-in user's name unless stated
	if data.Author == "" {
		if claims, err := getContextClaims(ctx); err == nil {
			data.Author = claims.Name
		}
	}
	if err := data.Validate(); err != nil {
		return err
	}

	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating post")
	}
	api.logActivity(ctx, fmt.Sprintf("posted bulletin %q", p.Title))

	return ctx.JSON(http.StatusCreated, p)
}

func (api *bulletinApi) queryActive(ctx echo.Context) error {
	posts, err := api.svc.QueryActive(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	if posts == nil {
		posts = []bulletin.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *bulletinApi) queryAll(ctx echo.Context) error {
	posts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	if posts == nil {
		posts = []bulletin.Post{}
	}
	return ctx.JSON(http.StatusOK, posts)
}

func (api *bulletinApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == bulletin.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding post by ID")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *bulletinApi) update(ctx echo.Context) error {
	var data bulletin.UpdatePost
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePost")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == bulletin.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating post")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *bulletinApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting post")
	}
	return ctx.NoContent(http.StatusNoContent)
}
