package repositories

import (
	"context"
	"errors"
	"testing"

	"productapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockStore(t *testing.T) (*GORMProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return NewGORMProductRepository(db), mock
}

func TestGORMProductRepository_AuthenticateFailure(t *testing.T) {
	store, mock := setupMockStore(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := store.Authenticate(context.Background())

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, Unavailable, storeErr.Kind)
	assert.Equal(t, "authenticate", storeErr.Op)
	assert.True(t, store.Degraded())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMProductRepository_QueryFailureIsUnavailable(t *testing.T) {
	store, mock := setupMockStore(t)
	store.synced.Store(true)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(errors.New("server closed the connection"))
	_, err := store.ListAll(context.Background())

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, Unavailable, storeErr.Kind)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnError(errors.New("server closed the connection"))
	_, err = store.FindByID(context.Background(), 7)
	require.ErrorAs(t, err, &storeErr)
	assert.Contains(t, storeErr.Op, "find product 7")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMProductRepository_FindByIDNotFound(t *testing.T) {
	store, mock := setupMockStore(t)
	store.synced.Store(true)

	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "availability", "created_at", "updated_at"}))

	_, err := store.FindByID(context.Background(), 99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGORMProductRepository_ValidationBeforeStorage(t *testing.T) {
	store, mock := setupMockStore(t)

	_, err := store.Create(context.Background(), models.ProductFields{Name: "", Price: 10})
	assert.ErrorIs(t, err, ErrInvalidProduct)

	// no statement may reach the database
	assert.NoError(t, mock.ExpectationsWereMet())
}
