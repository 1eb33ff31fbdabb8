package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"daytrack.com/daytrack/internal/auth"
	"daytrack.com/daytrack/internal/board"
	config "daytrack.com/daytrack/internal/configs"
	httpapi "daytrack.com/daytrack/internal/http"
	repository "daytrack.com/daytrack/internal/repositories"
	"daytrack.com/daytrack/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task tracker HTTP API, the live day boards and the background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		taskRepo := repository.NewTaskRepository(database)
		markRepo := repository.NewMarkRepository(database)
		profileRepo := repository.NewProfileRepository(database)
		settingsRepo := repository.NewSettingsRepository(database)
		userRepo := repository.NewUserRepository(database)

		sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
		sessions := auth.NewRedisSessionStore(redisClient, cfg.RedisSessionPrefix)
		tokens := auth.NewTokenIssuer(cfg.JWTSecret, sessionTTL)
		authService := auth.NewService(userRepo, profileRepo, sessions, tokens, sessionTTL)

		taskService := services.NewTaskService(taskRepo, profileRepo)
		scheduleService := services.NewScheduleService(markRepo, profileRepo, settingsRepo)

		boards := board.NewManager(taskService, scheduleService, time.Duration(cfg.BoardIdleMinutes)*time.Minute)

		scheduler := cron.New()
		if _, err := scheduler.AddFunc("@every 1m", func() {
			boards.ReapIdle()
		}); err != nil {
			log.Fatalf("failed to schedule board reaper: %v", err)
		}
		if _, err := scheduler.AddFunc("5 0 * * *", func() {
			stopped, err := taskService.StopRunningTimers(context.Background())
			if err != nil {
				log.Printf("nightly timer stop failed: %v", err)
				return
			}
			if stopped > 0 {
				log.Printf("stopped %d timer(s) left running overnight", stopped)
			}
		}); err != nil {
			log.Fatalf("failed to schedule nightly timer stop: %v", err)
		}
		scheduler.Start()

		e := echo.New()
		handler := httpapi.NewHandler(authService, boards, taskService, scheduleService)
		httpapi.Register(e, handler, authService, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		<-scheduler.Stop().Done()
		boards.Shutdown()

		log.Println("server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
