package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/bulletin"
	"github.com/scngmai/damayan/core/member"
	"github.com/scngmai/damayan/core/milestone"
	"github.com/scngmai/damayan/core/officer"
	"github.com/scngmai/damayan/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger

		// Shutdown receives a signal when an unrecoverable error is caught
		// so main can stop the server gracefully.
		Shutdown chan os.Signal

		UserSvc      user.Service
		MemberSvc    *member.Service
		OfficerSvc   *officer.Service
		MilestoneSvc *milestone.Service
		BulletinSvc  *bulletin.Service
		ActivitySvc  *activity.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) signalShutdown() {
	if s.opts.Shutdown != nil {
		s.opts.Shutdown <- syscall.SIGTERM
	}
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(jwtConfig())

	registerUserAPI(v1, jwt, s.opts.UserSvc, s.opts.ActivitySvc)
	registerMemberAPI(v1, jwt, s.opts.MemberSvc, s.opts.ActivitySvc)
	registerOfficerAPI(v1, jwt, s.opts.OfficerSvc, s.opts.ActivitySvc)
	registerMilestoneAPI(v1, jwt, s.opts.MilestoneSvc, s.opts.ActivitySvc)
	registerBulletinAPI(v1, jwt, s.opts.BulletinSvc, s.opts.ActivitySvc)
	registerDashboardAPI(v1, jwt, s.opts.MemberSvc, s.opts.BulletinSvc, s.opts.ActivitySvc)
	registerReportsAPI(v1, jwt, s.opts.MemberSvc)
	registerAccessAPI(v1, jwt)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the "+core.Conf.AppName+" API!")
}
