// Package main Litera API.
//
// @title           Litera API
// @version         1.0
// @description     Personal reading tracker: books, reading timer, progress log and notes.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"litera/app/echoServer"
	authctrl "litera/app/echoServer/controller/auth"
	bookctrl "litera/app/echoServer/controller/book"
	notectrl "litera/app/echoServer/controller/note"
	readingctrl "litera/app/echoServer/controller/reading"
	"litera/app/echoServer/validation"
	"litera/config"
	bookrepo "litera/repository/book"
	mailerrepo "litera/repository/mailer"
	noterepo "litera/repository/note"
	readingrepo "litera/repository/reading"
	userrepo "litera/repository/user"
	authsvc "litera/service/auth"
	booksvc "litera/service/book"
	notesvc "litera/service/note"
	readingsvc "litera/service/reading"
	"litera/util/database"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: pgxpool
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool); err != nil {
			log.Error("migrate failed", "err", err)
			os.Exit(1)
		}
		log.Info("schema migrated")
	}

	// repos
	ur := userrepo.New(db)
	br := bookrepo.New(db)
	rr := readingrepo.New(db)
	nr := noterepo.New(db)

	var mail mailerrepo.Repo
	if cfg.SendGridAPIKey != "" {
		mail = mailerrepo.NewSendGrid(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	} else {
		log.Warn("SENDGRID_API_KEY not set, reset emails are only logged")
		mail = mailerrepo.NewLog(log)
	}

	// services
	as := authsvc.New(ur, mail, authsvc.Config{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  time.Duration(cfg.JWTTTLHours) * time.Hour,
		ResetURL:  cfg.ResetURL,
		Log:       log,
	})
	bs := booksvc.New(br)
	rs := readingsvc.New(rr, readingsvc.Config{})
	ns := notesvc.New(nr)

	// controllers
	val := validation.New()
	v := val.Engine()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	readingC := &readingctrl.Controller{Svc: rs, V: v, Log: log}
	noteC := &notectrl.Controller{Svc: ns, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = val
	echoServer.RegisterMiddlewares(e, echoServer.MiddlewareConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: time.Duration(cfg.RequestTimeoutSec) * time.Second,
	})

	e.GET("/health", func(c echo.Context) error {
		pctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(pctx); err != nil {
			log.Warn("health ping failed", "err", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{
				"status":  "degraded",
				"message": "database unreachable",
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		Book:    bookC,
		Reading: readingC,
		Note:    noteC,

		JWTSecret:      cfg.JWTSecret,
		AuthRatePerSec: cfg.AuthRatePerSec,
		AuthRateBurst:  cfg.AuthRateBurst,
	})

	go func() {
		log.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
}
