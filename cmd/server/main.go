// Command server runs the organization portal API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/usss-rp/portal/internal/api"
	"github.com/usss-rp/portal/internal/auth"
	"github.com/usss-rp/portal/internal/config"
	"github.com/usss-rp/portal/internal/discord"
	"github.com/usss-rp/portal/internal/repository"
	"github.com/usss-rp/portal/internal/service/leaderboard"
	"github.com/usss-rp/portal/internal/service/reports"
	"github.com/usss-rp/portal/internal/service/scheduler"
	"github.com/usss-rp/portal/internal/service/stats"
	"github.com/usss-rp/portal/internal/service/sync"
	"github.com/usss-rp/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.Get()

	log.Info().
		Str("environment", cfg.Server.Environment).
		Int("port", cfg.Server.Port).
		Msg("Starting portal server")

	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := auth.NewRedisClient(ctx, &cfg.Database.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rankRepo := repository.NewRankRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	discordRepo := repository.NewDiscordConfigRepository(db)

	// Services.
	lang := cfg.Server.Language
	statsService := stats.NewService(reportRepo, lang, log)
	leaderboardService := leaderboard.NewService(userRepo, log)

	fallbackURL := ""
	if cfg.Discord.Enabled {
		fallbackURL = cfg.Discord.WebhookURL
	}
	syncService := sync.NewService(
		discord.NewClient(log),
		discordRepo,
		leaderboardService,
		fallbackURL,
		lang,
		log,
	)

	reportService := reports.NewService(reportRepo, taskRepo, syncService, log)

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Hour)
	denylist := auth.NewDenylist(redisClient)
	authService := auth.NewService(userRepo, issuer, denylist, log)
	authMiddleware := auth.NewMiddleware(issuer, denylist, userRepo)

	// HTTP layer.
	handlers := &api.Handlers{
		Auth:      api.NewAuthHandler(authService, log),
		Reports:   api.NewReportHandler(reportService, statsService, leaderboardService, log),
		Tasks:     api.NewTaskHandler(taskRepo, log),
		Reference: api.NewReferenceHandler(rankRepo, deptRepo, log),
		Users:     api.NewUserHandler(userRepo, log),
		Discord:   api.NewDiscordHandler(discordRepo, syncService, log),
		Health:    api.NewHealthHandler(db),
	}
	router := api.NewRouter(cfg, authMiddleware, handlers, log)

	schedulerService := scheduler.NewService(&cfg.Scheduler, syncService, log)
	if err := schedulerService.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer schedulerService.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}

	log.Info().Msg("Server stopped")
}
