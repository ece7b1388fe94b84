package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"productapi/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductStore.
type InMemoryProductRepository struct {
	products map[int64]models.Product
	lastID   int64
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int64]models.Product),
	}
}

// Authenticate always succeeds.
func (r *InMemoryProductRepository) Authenticate(context.Context) error { return nil }

// Sync is a no-op.
func (r *InMemoryProductRepository) Sync(context.Context) error { return nil }

// Degraded is always false.
func (r *InMemoryProductRepository) Degraded() bool { return false }

// Close is a no-op.
func (r *InMemoryProductRepository) Close() error { return nil }

// Reset removes every product and restarts the ID sequence.
func (r *InMemoryProductRepository) Reset(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = make(map[int64]models.Product)
	r.lastID = 0
	return nil
}

// ListAll returns all products ordered by price descending.
func (r *InMemoryProductRepository) ListAll(context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		if productList[i].Price != productList[j].Price {
			return productList[i].Price > productList[j].Price
		}
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// FindByID returns a product by its ID.
func (r *InMemoryProductRepository) FindByID(_ context.Context, id int64) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

// Create adds a new product under the next unused ID.
func (r *InMemoryProductRepository) Create(_ context.Context, fields models.ProductFields) (models.Product, error) {
	fields, err := checkCreate(fields)
	if err != nil {
		return models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	product := models.Product{
		ID:           r.lastID,
		Name:         fields.Name,
		Price:        fields.Price,
		Availability: *fields.Availability,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.products[product.ID] = product
	return product, nil
}

// Update replaces the mutable fields of an existing product.
func (r *InMemoryProductRepository) Update(_ context.Context, id int64, fields models.ProductFields) (models.Product, error) {
	if err := checkUpdate(fields); err != nil {
		return models.Product{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	product.Name = fields.Name
	product.Price = fields.Price
	product.Availability = *fields.Availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return product, nil
}

// ToggleAvailability flips the availability of an existing product.
func (r *InMemoryProductRepository) ToggleAvailability(_ context.Context, id int64) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	product.Availability = !product.Availability
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return product, nil
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
