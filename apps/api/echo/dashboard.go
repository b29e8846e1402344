package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/bulletin"
	"github.com/scngmai/damayan/core/member"
)

type dashboardApi struct {
	memberSvc   *member.Service
	bulletinSvc *bulletin.Service
	activitySvc *activity.Service
}

// DashboardResponse is everything the landing page shows in one payload.
type DashboardResponse struct {
	Summary    member.Summary   `json:"summary"`
	Celebrants []member.Member  `json:"celebrants"`
	Bulletin   []bulletin.Post  `json:"bulletin"`
	Activity   []activity.Entry `json:"activity"`
}

func registerDashboardAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	memberSvc *member.Service,
	bulletinSvc *bulletin.Service,
	activitySvc *activity.Service,
) {
	api := dashboardApi{memberSvc: memberSvc, bulletinSvc: bulletinSvc, activitySvc: activitySvc}

	dg := g.Group("/dashboard", jwt)
	dg.GET("", api.retrieve)
	dg.GET("/summary", api.summary)
	dg.GET("/celebrants", api.celebrants)
	dg.GET("/activity", api.recentActivity)
}

func (api *dashboardApi) retrieve(ctx echo.Context) error {
	rctx := ctx.Request().Context()

	summary, err := api.memberSvc.Summary(rctx)
	if err != nil {
		return errors.Wrap(err, "aggregating summary")
	}
	celebrants, err := api.memberSvc.Celebrants(rctx)
	if err != nil {
		return errors.Wrap(err, "finding celebrants")
	}
	posts, err := api.bulletinSvc.QueryActive(rctx)
	if err != nil {
		return errors.Wrap(err, "querying posts")
	}
	entries, err := api.activitySvc.Recent(rctx, 0)
	if err != nil {
		return errors.Wrap(err, "querying activity")
	}

	if celebrants == nil {
		celebrants = []member.Member{}
	}
	if posts == nil {
		posts = []bulletin.Post{}
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return ctx.JSON(http.StatusOK, DashboardResponse{
		Summary:    summary,
		Celebrants: celebrants,
		Bulletin:   posts,
		Activity:   entries,
	})
}

func (api *dashboardApi) summary(ctx echo.Context) error {
	summary, err := api.memberSvc.Summary(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "aggregating summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *dashboardApi) celebrants(ctx echo.Context) error {
	celebrants, err := api.memberSvc.Celebrants(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "finding celebrants")
	}
	if celebrants == nil {
		celebrants = []member.Member{}
	}
	return ctx.JSON(http.StatusOK, celebrants)
}

func (api *dashboardApi) recentActivity(ctx echo.Context) error {
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))
	entries, err := api.activitySvc.Recent(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying activity")
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}
