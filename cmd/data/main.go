// Command data runs maintenance tasks against the product store.
//
//	go run ./cmd/data --clear
package main

import (
	"context"
	"os"

	"productapi/internal/config"
	"productapi/internal/database"
	"productapi/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	clearData := pflag.Bool("clear", false, "drop every product and recreate the schema")
	pflag.Parse()

	if !*clearData {
		return
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	store, err := database.NewStore(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Error("failed to open product store")
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Reset(context.Background()); err != nil {
		log.WithError(err).Error("failed to clear products")
		store.Close()
		os.Exit(1)
	}
	log.Info("Datos eliminados correctamente")
}
