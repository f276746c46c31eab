package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/peoplehub/recognition-system/internal/api"
	"github.com/peoplehub/recognition-system/internal/api/handler"
	"github.com/peoplehub/recognition-system/internal/api/metrics"
	"github.com/peoplehub/recognition-system/internal/core/service"
	"github.com/peoplehub/recognition-system/internal/infrastructure/ai"
	mongodb "github.com/peoplehub/recognition-system/internal/infrastructure/db/mongo"
	redisdb "github.com/peoplehub/recognition-system/internal/infrastructure/db/redis"
	"github.com/peoplehub/recognition-system/internal/infrastructure/email"
	"github.com/peoplehub/recognition-system/internal/infrastructure/excel"
	"github.com/peoplehub/recognition-system/internal/infrastructure/queue"
	"github.com/peoplehub/recognition-system/internal/pkg/config"
	"github.com/peoplehub/recognition-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// Repositories.
	users := mongodb.NewUserRepository(db)
	noms := mongodb.NewNominationRepository(db)
	votes := mongodb.NewVoteRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	timelines := mongodb.NewTimelineRepository(db)
	tx := mongodb.NewSessionTx(client)

	for name, ensure := range map[string]func(context.Context) error{
		"users":         users.EnsureIndexes,
		"nominations":   noms.EnsureIndexes,
		"votes":         votes.EnsureIndexes,
		"notifications": notifications.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// Outbound email pipeline.
	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	emailQueue := queue.NewDispatcher(cfg.EmailWorkers, mailer, metrics.EmailFailuresTotal, log)
	emailQueue.Start(ctx)
	notifier := service.NewDispatcher(notifications, emailQueue, log)

	// AI insight pipeline degrades to placeholders without a key.
	var insightService = service.NewInsightService(noms, nil, log)
	if cfg.Gemini.APIKey != "" {
		analyzer, err := ai.NewGeminiAnalyzer(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini client failed")
		}
		defer analyzer.Close()
		insightService = service.NewInsightService(noms, analyzer, log)
	} else {
		log.Warn().Msg("GEMINI_API_KEY unset, insight summaries degraded")
	}

	// Services.
	tokenStore := redisdb.NewTokenStore(rdb, 0)
	authService := service.NewAuthService(users, tokenStore, cfg.JWTSecret, time.Hour)
	nominationService := service.NewNominationService(noms, users, timelines, notifier, tx, log)
	reviewService := service.NewReviewService(noms, users, notifier, tx, log)
	votingService := service.NewVotingService(noms, votes, log)
	adminService := service.NewAdminService(noms, users, votes, timelines, excel.NewRosterParser(), log)
	notificationService := service.NewNotificationService(notifications)

	e := api.NewRouter(api.Deps{
		JWTSecret: cfg.JWTSecret,
		Log:       log,
		Mongo:     db,
		Redis:     rdb,

		Auth:          handler.NewAuthHandler(authService),
		Nominations:   handler.NewNominationHandler(nominationService),
		Review:        handler.NewReviewHandler(reviewService),
		Voting:        handler.NewVotingHandler(votingService),
		Notifications: handler.NewNotificationHandler(notificationService),
		Admin:         handler.NewAdminHandler(adminService, insightService, excel.NewExporter()),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
