package main

import (
	"context"
	"os"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/logger"
	"productapi/internal/repositories"
	"productapi/internal/server"
	"productapi/internal/services"
	"productapi/pkg/rabbitmq"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	app, store, mqClient, err := setup(context.Background(), cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to start")
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.WithError(err).Fatal("server failed to start")
		}
	}()

	operations := map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
		"product-store": func(context.Context) error {
			return store.Close()
		},
	}
	if mqClient != nil {
		operations["rabbitmq"] = func(context.Context) error {
			return mqClient.Close()
		}
	}

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, operations)
	exitCode := <-wait
	log.Infof("Server stopped with code %d", exitCode)
	os.Exit(exitCode)
}

// setup builds the store, connects to it and assembles the HTTP application.
// A failed connection leaves the store degraded unless cfg.FailFast is set.
func setup(ctx context.Context, cfg config.Config, log *logrus.Logger) (*fiber.App, repositories.ProductStore, *rabbitmq.Client, error) {
	store, err := database.NewStore(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Connect(ctx, store, log); err != nil {
		if cfg.FailFast {
			store.Close()
			return nil, nil, nil, err
		}
		log.Warn("continuing with a degraded product store")
	}

	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.WithError(err).Warn("product events disabled")
			mqClient = nil
		} else {
			publisher = mqClient
		}
	}

	app, err := server.NewApp(server.Options{
		Store:       store,
		Publisher:   publisher,
		Logger:      log,
		FrontendURL: cfg.FrontendURL,
	})
	if err != nil {
		store.Close()
		if mqClient != nil {
			mqClient.Close()
		}
		return nil, nil, nil, err
	}
	return app, store, mqClient, nil
}
