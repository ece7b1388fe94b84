package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the process configuration.
type Config struct {
	AppPort         string
	DatabaseDriver  string
	DatabaseURL     string
	FrontendURL     string
	RabbitMQURL     string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	// FailFast exits at startup when the database cannot be reached instead of
	// running degraded.
	FailFast bool
}

// Load reads an optional .env file, then environment variables.
func Load() Config {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper applies defaults to v and reads the configuration from it.
func FromViper(v *viper.Viper) Config {
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=127.0.0.1 user=postgres password=postgres dbname=products port=5432 sslmode=disable")
	v.SetDefault("FRONTEND_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("FAIL_FAST", false)
	v.AutomaticEnv()

	return Config{
		AppPort:         v.GetString("APP_PORT"),
		DatabaseDriver:  v.GetString("DATABASE_DRIVER"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		FrontendURL:     v.GetString("FRONTEND_URL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		FailFast:        v.GetBool("FAIL_FAST"),
	}
}
