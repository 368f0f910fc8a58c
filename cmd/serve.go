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
	"github.com/spf13/cobra"

	config "taskdeck.com/taskdeck/internal/configs"
	httpapi "taskdeck.com/taskdeck/internal/http"
	repository "taskdeck.com/taskdeck/internal/repositories"
	"taskdeck.com/taskdeck/internal/services"
	"taskdeck.com/taskdeck/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the taskdeck HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)

		sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute

		var tokenStore sessions.TokenStore
		if cfg.SessionBackend == "redis" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			tokenStore = sessions.NewRedisTokenStore(redisClient, cfg.SessionPrefix, sessionTTL)
		} else {
			tokenStore = sessions.NewMemoryTokenStore(sessionTTL)
		}

		userRepo := repository.NewUserRepository(database)
		taskRepo := repository.NewTaskRepository(database)
		categoryRepo := repository.NewCategoryRepository(database)

		identityService := services.NewIdentityService(userRepo, tokenStore, cfg.BcryptCost)
		storeService := services.NewStoreService(
			taskRepo,
			identityService,
			time.Duration(cfg.StoreReadDelayMs)*time.Millisecond,
			time.Duration(cfg.StoreWriteDelayMs)*time.Millisecond,
		)
		categoryService := services.NewCategoryService(categoryRepo, identityService)

		e := echo.New()

		handler := httpapi.NewHandler(identityService, storeService, categoryService)
		httpapi.Register(e, handler, cfg.RateLimit)

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

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
