package database

import (
	"context"
	"fmt"
	"time"

	"productapi/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
)

// Supported values for the DATABASE_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Open creates a GORM handle without contacting the server, so an unreachable
// database does not prevent startup.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database pool: %w", err)
	}
	if driver == DriverSQLite {
		// one connection keeps ":memory:" databases shared and serializes writes
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(maxOpenConns)
		sqlDB.SetMaxIdleConns(maxIdleConns)
		sqlDB.SetConnMaxLifetime(connMaxLifetime)
	}
	return db, nil
}

// NewStore builds the product store for the configured driver.
func NewStore(driver, dsn string) (repositories.ProductStore, error) {
	if driver == DriverMemory {
		return repositories.NewInMemoryProductRepository(), nil
	}
	db, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	return repositories.NewGORMProductRepository(db), nil
}

// Connect authenticates against the store and then syncs the schema. Failures
// are logged and returned; the caller decides whether they are fatal.
func Connect(ctx context.Context, store repositories.ProductStore, log logrus.FieldLogger) error {
	if err := store.Authenticate(ctx); err != nil {
		log.WithError(err).Error("Hubo un error al conectar a la base de datos")
		return err
	}
	if err := store.Sync(ctx); err != nil {
		log.WithError(err).Error("failed to sync products schema")
		return err
	}
	log.Info("Conectado a la base de datos")
	return nil
}
