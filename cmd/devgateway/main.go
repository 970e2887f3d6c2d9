package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"messenger-client/internal/common/config"
	"messenger-client/internal/common/logger"
	"messenger-client/internal/gatewaystub"
)

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("devgateway", cfg.Debug, nil)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	store := gatewaystub.NewStore()
	admin, err := store.SeedAdmin(cfg.Server.AdminPhone, cfg.Server.AdminPassword, "Administrator")
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed administrator")
	}
	logger.Info().Int64("user_id", admin.ID).Str("phone", admin.Phone).Msg("Administrator seeded")

	router := gatewaystub.NewRouter(store, cfg.Server.Origin)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "devgateway",
		})
	})

	// Создаем HTTP сервер
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Ждем сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
