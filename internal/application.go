package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/supertictactoe-backend/internal/config"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/repository"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/repository/storage"
	"github.com/rocketscienceinc/supertictactoe-backend/internal/usecase"
	"github.com/rocketscienceinc/supertictactoe-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	// The result archive is optional: with no redis configured, finished
	// matches are simply not recorded.
	var results usecase.ResultSaver

	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection)
		log.Info("result archive enabled", "addr", redisAddr)
	}

	registry := usecase.NewRegistry(logger, results, conf.Room.GracePeriod, conf.Room.IdleTTL)
	go registry.Run(ctx)

	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "port", conf.Port)
		wsServer := websocket.New(logger, registry)
		if wsErr := wsServer.Start(ctx, conf.Port); wsErr != nil {
			log.Error("server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-wsErrCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
