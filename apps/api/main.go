package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	echoapi "github.com/scngmai/damayan/apps/api/echo"
	"github.com/scngmai/damayan/core"
	"github.com/scngmai/damayan/core/activity"
	"github.com/scngmai/damayan/core/bulletin"
	"github.com/scngmai/damayan/core/member"
	"github.com/scngmai/damayan/core/milestone"
	"github.com/scngmai/damayan/core/officer"
	"github.com/scngmai/damayan/core/user"
	emailsvc "github.com/scngmai/damayan/services/email"
	logsvc "github.com/scngmai/damayan/services/logger"
	"github.com/scngmai/damayan/storage/database"
	sqlxrepos "github.com/scngmai/damayan/storage/database/sqlx"
)

func main() {
	conf := core.LoadConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	if err := run(conf, logger); err != nil {
		logger.Fatal("running server", err)
	}
}

func run(conf *core.Config, logger core.Logger) error {
	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()
	if err = db.Ping(); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	memberSvc := member.NewService(sqlxrepos.NewMemberRepository(db), mailSvc)
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db), mailSvc)
	officerSvc := officer.NewService(sqlxrepos.NewOfficerRepository(db))
	milestoneSvc := milestone.NewService(sqlxrepos.NewMilestoneRepository(db))
	bulletinSvc := bulletin.NewService(sqlxrepos.NewBulletinRepository(db))
	activitySvc := activity.NewService(sqlxrepos.NewActivityRepository(db))

	// bring derived delinquency fields up to date (year may have rolled over
	// since the last run)
	if n, err := memberSvc.RefreshAll(context.Background()); err != nil {
		return errors.Wrap(err, "refreshing members")
	} else if n > 0 {
		logger.Info("refreshed delinquency status", map[string]interface{}{"members": n})
	}

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Address:      conf.Server.Address(),
		Logger:       logger,
		Shutdown:     shutdown,
		UserSvc:      usrSvc,
		MemberSvc:    memberSvc,
		OfficerSvc:   officerSvc,
		MilestoneSvc: milestoneSvc,
		BulletinSvc:  bulletinSvc,
		ActivitySvc:  activitySvc,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening on " + conf.Server.Address())
		serverErrors <- app.Start()
	}()

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")
	case sig := <-shutdown:
		logger.Info("shutdown started", map[string]interface{}{"signal": sig.String()})
		defer logger.Info("shutdown complete")

		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Stop(ctx); err != nil {
			return errors.Wrap(err, "stopping server gracefully")
		}
	}
	return nil
}
