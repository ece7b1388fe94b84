package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, fields models.ProductFields) (models.Product, error) {
	args := m.Called(ctx, fields)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int64, fields models.ProductFields) (models.Product, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) ToggleAvailability(ctx context.Context, id int64) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, body []byte) error {
	args := m.Called(eventType, body)
	return args.Error(0)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	log, _ := newTestLogger()
	service := services.NewProductService(mockRepo, nil, log)
	ctx := context.Background()

	expected := []models.Product{
		{ID: 2, Name: "Laptop", Price: 1200, Availability: true},
		{ID: 1, Name: "Mouse", Price: 25, Availability: true},
	}
	mockRepo.On("ListAll", ctx).Return(expected, nil).Once()

	products, err := service.GetAllProducts(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	log, _ := newTestLogger()
	service := services.NewProductService(mockRepo, nil, log)
	ctx := context.Background()

	expected := models.Product{ID: 1, Name: "Mouse", Price: 25, Availability: true}
	mockRepo.On("FindByID", ctx, int64(1)).Return(expected, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("FindByID", ctx, int64(99)).Return(models.Product{}, repositories.ErrProductNotFound).Once()
	_, err = service.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductPublishesEvent(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	log, _ := newTestLogger()
	service := services.NewProductService(mockRepo, publisher, log)
	ctx := context.Background()

	fields := models.ProductFields{Name: "Pocophone x7 pro", Price: 370}
	created := models.Product{ID: 5, Name: fields.Name, Price: fields.Price, Availability: true}
	mockRepo.On("Create", ctx, fields).Return(created, nil).Once()

	var published []byte
	publisher.On("Publish", services.EventProductCreated, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(1).([]byte) }).
		Return(nil).Once()

	product, err := service.CreateProduct(ctx, fields)
	require.NoError(t, err)
	assert.Equal(t, created, product)

	var event services.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, services.EventProductCreated, event.Type)
	assert.Equal(t, int64(5), event.ProductID)
	require.NotNil(t, event.Product)
	assert.Equal(t, "Pocophone x7 pro", event.Product.Name)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_FailedWriteDoesNotPublish(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	log, _ := newTestLogger()
	service := services.NewProductService(mockRepo, publisher, log)
	ctx := context.Background()

	fields := models.ProductFields{Name: "", Price: 10}
	mockRepo.On("Create", ctx, fields).Return(models.Product{}, repositories.ErrInvalidProduct).Once()
	mockRepo.On("Delete", ctx, int64(3)).Return(repositories.ErrProductNotFound).Once()

	_, err := service.CreateProduct(ctx, fields)
	assert.ErrorIs(t, err, repositories.ErrInvalidProduct)
	err = service.DeleteProduct(ctx, 3)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_PublishFailureIsOnlyLogged(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	log, hook := newTestLogger()
	service := services.NewProductService(mockRepo, publisher, log)
	ctx := context.Background()

	toggled := models.Product{ID: 8, Name: "Teclado", Price: 75, Availability: false}
	mockRepo.On("ToggleAvailability", ctx, int64(8)).Return(toggled, nil).Once()
	publisher.On("Publish", services.EventAvailabilityToggled, mock.Anything).
		Return(errors.New("channel closed")).Once()

	product, err := service.ToggleAvailability(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, toggled, product)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "failed to publish product event", entry.Message)
	assert.Equal(t, services.EventAvailabilityToggled, entry.Data["event"])

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	log, _ := newTestLogger()
	service := services.NewProductService(mockRepo, publisher, log)
	ctx := context.Background()

	available := false
	fields := models.ProductFields{Name: "Monitor curvo", Price: 400, Availability: &available}
	updated := models.Product{ID: 2, Name: fields.Name, Price: fields.Price}
	mockRepo.On("Update", ctx, int64(2), fields).Return(updated, nil).Once()
	mockRepo.On("Delete", ctx, int64(2)).Return(nil).Once()
	publisher.On("Publish", services.EventProductUpdated, mock.Anything).Return(nil).Once()
	publisher.On("Publish", services.EventProductDeleted, mock.Anything).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, 2, fields)
	require.NoError(t, err)
	assert.Equal(t, updated, product)
	require.NoError(t, service.DeleteProduct(ctx, 2))

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
