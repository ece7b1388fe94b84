package services

import (
	"context"
	"encoding/json"
	"time"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Product event types published after successful writes.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventAvailabilityToggled = "product.availability_toggled"
	EventProductDeleted      = "product.deleted"
)

// ProductEvent describes a change to the catalog.
type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  int64           `json:"product_id"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher delivers encoded product events to interested consumers.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       logrus.FieldLogger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log logrus.FieldLogger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GetAllProducts retrieves all products, most expensive first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.ListAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id int64) (models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, fields models.ProductFields) (models.Product, error) {
	product, err := s.repo.Create(ctx, fields)
	if err != nil {
		return models.Product{}, err
	}
	s.publish(EventProductCreated, product.ID, &product)
	return product, nil
}

// UpdateProduct replaces name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, fields models.ProductFields) (models.Product, error) {
	product, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return models.Product{}, err
	}
	s.publish(EventProductUpdated, product.ID, &product)
	return product, nil
}

// ToggleAvailability flips the availability of an existing product.
func (s *ProductService) ToggleAvailability(ctx context.Context, id int64) (models.Product, error) {
	product, err := s.repo.ToggleAvailability(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	s.publish(EventAvailabilityToggled, product.ID, &product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, id, nil)
	return nil
}

// publish never fails the request; delivery problems are only logged.
func (s *ProductService) publish(eventType string, id int64, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	entry := s.log.WithFields(logrus.Fields{"event": eventType, "product_id": id})
	body, err := json.Marshal(event)
	if err != nil {
		entry.WithError(err).Error("failed to marshal product event")
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		entry.WithError(err).Warn("failed to publish product event")
		return
	}
	entry.Debug("published product event")
}
