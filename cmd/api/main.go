package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	httpadp "munify-backend/internal/adapter/http"
	"munify-backend/internal/adapter/middleware"
	"munify-backend/internal/adapter/repository/mysql"
	"munify-backend/internal/config"
	"munify-backend/internal/infrastructure/cache"
	"munify-backend/internal/infrastructure/db"
	commitmentuc "munify-backend/internal/usecase/commitment"
	projectuc "munify-backend/internal/usecase/project"
	summaryuc "munify-backend/internal/usecase/summary"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "munify-api").Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connect failed")
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}

	tx := mysql.NewGormUoW(gdb)
	commitments := commitmentuc.NewUsecase(tx, log)
	projects := projectuc.NewUsecase(tx, log)
	summaries := summaryuc.NewUsecase(tx, log)

	h := httpadp.NewHandler()
	ph := httpadp.NewProjectHandler(projects)
	ch := httpadp.NewCommitmentHandler(commitments)
	sh := httpadp.NewSummaryHandler(summaries)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.ActorClaims(cfg.JWTSecret))
	e.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log))

	// routes
	e.GET("/health", h.Health)

	e.POST("/projects", ph.Create)
	e.GET("/projects", ph.List)
	e.GET("/projects/fully-funded", sh.FullyFunded)
	e.GET("/projects/commitments-summary", sh.ProjectCommitments)
	e.GET("/projects/ref/:reference_id", ph.GetByReference)
	e.GET("/projects/:project_id", ph.Get)
	e.PATCH("/projects/:project_id", ph.Update)
	e.POST("/projects/:project_id/submit", ph.Submit)
	e.POST("/projects/:project_id/approve", ph.Approve)
	e.POST("/projects/:project_id/reject", ph.Reject)
	e.POST("/projects/:project_id/resubmit", ph.Resubmit)
	e.POST("/projects/:project_id/notes", ph.AddNote)
	e.GET("/projects/:project_id/notes", ph.ListNotes)

	e.POST("/commitments", ch.Create)
	e.GET("/commitments", ch.List)
	e.GET("/commitments/:commitment_id", ch.Get)
	e.PATCH("/commitments/:commitment_id", ch.Update)
	e.POST("/commitments/:commitment_id/withdraw", ch.Withdraw)
	e.POST("/commitments/:commitment_id/approve", ch.Approve)
	e.POST("/commitments/:commitment_id/reject", ch.Reject)
	e.POST("/commitments/:commitment_id/fund", ch.MarkFunded)
	e.POST("/commitments/:commitment_id/complete", ch.MarkCompleted)
	e.GET("/commitments/:commitment_id/history", ch.History)

	e.GET("/statistics/landing", sh.Landing)

	addr := ":" + cfg.AppPort
	log.Info().Str("addr", addr).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
