package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"productapi/internal/models"

	"gorm.io/gorm"
)

// productRecord is the relational binding of models.Product.
type productRecord struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(255);not null"`
	Price        float64 `gorm:"not null"`
	Availability bool    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (productRecord) TableName() string {
	return "products"
}

func (r productRecord) toModel() models.Product {
	return models.Product{
		ID:           r.ID,
		Name:         r.Name,
		Price:        r.Price,
		Availability: r.Availability,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// GORMProductRepository is a GORM implementation of ProductStore.
// If the schema could not be synced at startup, every operation retries the
// sync before touching the table.
type GORMProductRepository struct {
	db     *gorm.DB
	synced atomic.Bool
	syncMu sync.Mutex
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Authenticate pings the database.
func (r *GORMProductRepository) Authenticate(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return unavailable("authenticate", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return unavailable("authenticate", err)
	}
	return nil
}

// Sync creates or migrates the products table.
func (r *GORMProductRepository) Sync(ctx context.Context) error {
	r.syncMu.Lock()
	defer r.syncMu.Unlock()

	if err := r.db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return unavailable("sync", err)
	}
	r.synced.Store(true)
	return nil
}

// Reset drops and recreates the products table.
func (r *GORMProductRepository) Reset(ctx context.Context) error {
	r.syncMu.Lock()
	defer r.syncMu.Unlock()

	r.synced.Store(false)
	migrator := r.db.WithContext(ctx).Migrator()
	if err := migrator.DropTable(&productRecord{}); err != nil {
		return unavailable("reset", err)
	}
	if err := migrator.AutoMigrate(&productRecord{}); err != nil {
		return unavailable("reset", err)
	}
	r.synced.Store(true)
	return nil
}

// Degraded reports whether the products table is not known to exist.
func (r *GORMProductRepository) Degraded() bool {
	return !r.synced.Load()
}

// Close releases the underlying connection pool.
func (r *GORMProductRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GORMProductRepository) ready(ctx context.Context) error {
	if r.synced.Load() {
		return nil
	}
	return r.Sync(ctx)
}

// ListAll retrieves all products ordered by price descending.
func (r *GORMProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	if err := r.ready(ctx); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("price DESC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, unavailable("list all", err)
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toModel())
	}
	return products, nil
}

// FindByID retrieves a single product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id int64) (models.Product, error) {
	if err := r.ready(ctx); err != nil {
		return models.Product{}, err
	}
	return r.find(r.db.WithContext(ctx), id)
}

func (r *GORMProductRepository) find(tx *gorm.DB, id int64) (models.Product, error) {
	var rec productRecord
	if err := tx.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, unavailable(fmt.Sprintf("find product %d", id), err)
	}
	return rec.toModel(), nil
}

// Create inserts a new product; availability defaults to true.
func (r *GORMProductRepository) Create(ctx context.Context, fields models.ProductFields) (models.Product, error) {
	fields, err := checkCreate(fields)
	if err != nil {
		return models.Product{}, err
	}
	if err := r.ready(ctx); err != nil {
		return models.Product{}, err
	}
	rec := productRecord{
		Name:         fields.Name,
		Price:        fields.Price,
		Availability: *fields.Availability,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.Product{}, unavailable("create product", err)
	}
	return rec.toModel(), nil
}

// Update replaces the mutable fields of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, id int64, fields models.ProductFields) (models.Product, error) {
	if err := checkUpdate(fields); err != nil {
		return models.Product{}, err
	}
	if err := r.ready(ctx); err != nil {
		return models.Product{}, err
	}
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A map update also writes zero values such as availability=false.
		res := tx.Model(&productRecord{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":         fields.Name,
			"price":        fields.Price,
			"availability": *fields.Availability,
		})
		if res.Error != nil {
			return unavailable(fmt.Sprintf("update product %d", id), res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		var err error
		product, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// ToggleAvailability flips the availability flag in a single statement.
func (r *GORMProductRepository) ToggleAvailability(ctx context.Context, id int64) (models.Product, error) {
	if err := r.ready(ctx); err != nil {
		return models.Product{}, err
	}
	var product models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&productRecord{}).Where("id = ?", id).
			Update("availability", gorm.Expr("NOT availability"))
		if res.Error != nil {
			return unavailable(fmt.Sprintf("toggle availability %d", id), res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		var err error
		product, err = r.find(tx, id)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete permanently removes a product by its ID.
func (r *GORMProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if res.Error != nil {
		return unavailable(fmt.Sprintf("delete product %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
