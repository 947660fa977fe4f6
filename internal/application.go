package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/laprace-backend/internal/config"
	"github.com/rocketscienceinc/laprace-backend/internal/events"
	"github.com/rocketscienceinc/laprace-backend/internal/laprace"
	"github.com/rocketscienceinc/laprace-backend/internal/repository"
	"github.com/rocketscienceinc/laprace-backend/internal/repository/storage"
	"github.com/rocketscienceinc/laprace-backend/internal/usecase"
	"github.com/rocketscienceinc/laprace-backend/transport/rest"
	"github.com/rocketscienceinc/laprace-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

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

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	publisher, err := newPublisher(log, conf.NATS.URL)
	if err != nil {
		return fmt.Errorf("could not connect to nats: %w", err)
	}
	defer publisher.Close()

	playerRepo := repository.NewPlayerRepository(redisStorage.Connection)
	gameRepo := repository.NewGameRepository(redisStorage.Connection)
	matchRepo := repository.NewMatchRepository(sqliteStorage.Connection)

	gameManager := usecase.NewGameManager(logger, playerRepo, gameRepo, matchRepo, publisher, laprace.NewRoller())

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(conf.HTTPPort, gameManager); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newPublisher(log *slog.Logger, natsURL string) (events.Publisher, error) {
	if natsURL == "" {
		log.Info("NATS url not configured, event publishing disabled")
		return events.NoopPublisher{}, nil
	}

	publisher, err := events.Connect(natsURL)
	if err != nil {
		return nil, err
	}

	log.Info("Connected to NATS", "url", natsURL)

	return publisher, nil
}
