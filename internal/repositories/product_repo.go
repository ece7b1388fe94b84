package repositories

import (
	"context"
	"errors"
	"fmt"

	"productapi/internal/models"
)

// ErrProductNotFound is returned when no product exists for the given ID.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidProduct is returned when fields break the product schema.
var ErrInvalidProduct = errors.New("invalid product")

// StoreErrorKind classifies storage failures.
type StoreErrorKind string

// Unavailable means the underlying storage could not be reached or queried.
const Unavailable StoreErrorKind = "unavailable"

// StoreError wraps a failure of the underlying storage.
type StoreError struct {
	Kind StoreErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("product store %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func unavailable(op string, err error) error {
	return &StoreError{Kind: Unavailable, Op: op, Err: err}
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// ListAll returns every product ordered by price, highest first.
	ListAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, fields models.ProductFields) (models.Product, error)
	// Update replaces name, price and availability.
	Update(ctx context.Context, id int64, fields models.ProductFields) (models.Product, error)
	ToggleAvailability(ctx context.Context, id int64) (models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// ProductStore is a ProductRepository with an explicit connection lifecycle.
type ProductStore interface {
	ProductRepository
	// Authenticate checks that the storage is reachable.
	Authenticate(ctx context.Context) error
	// Sync materializes the products schema.
	Sync(ctx context.Context) error
	// Reset drops every product and recreates the schema.
	Reset(ctx context.Context) error
	// Degraded reports whether the schema has not been materialized yet.
	Degraded() bool
	Close() error
}

// checkCreate validates fields for insertion and applies the availability default.
func checkCreate(fields models.ProductFields) (models.ProductFields, error) {
	if err := models.ProductSchema.Check(fields.Values()); err != nil {
		return fields, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	if fields.Availability == nil {
		available := true
		fields.Availability = &available
	}
	return fields, nil
}

// checkUpdate validates fields for a full replace; availability is mandatory.
func checkUpdate(fields models.ProductFields) error {
	if fields.Availability == nil {
		return fmt.Errorf("%w: field %q is required", ErrInvalidProduct, "availability")
	}
	if err := models.ProductSchema.Check(fields.Values()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}
	return nil
}
