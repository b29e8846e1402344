package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/scngmai/damayan/core/access"
)

type accessApi struct{}

func registerAccessAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	api := accessApi{}

	ag := g.Group("/access", jwt)
	ag.GET("/tabs", api.tabs)
	ag.GET("/functions", api.functions)
}

// tabs returns the navigation tabs the signed-in user may see.
func (api *accessApi) tabs(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, access.VisibleTabs(claims.Role))
}

// functions returns the catalog entries the signed-in user may perform.
func (api *accessApi) functions(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	return ctx.JSON(http.StatusOK, access.AccessibleFunctions(claims.Role))
}
