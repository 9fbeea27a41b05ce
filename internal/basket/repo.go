package basket

import (
	"context"

	"gorm.io/gorm"

	"github.com/worklabs/emarket-backend/pkg/db/models"
)

// Store is the persistence contract the aggregator mutates through. Each
// method is a single atomic table operation; callers own read-modify-write
// serialization.
type Store interface {
	FindByName(ctx context.Context, productName string) (*models.BasketLine, error)
	List(ctx context.Context) ([]models.BasketLine, error)
	Insert(ctx context.Context, line *models.BasketLine) error
	Update(ctx context.Context, line *models.BasketLine) error
	Delete(ctx context.Context, productName string) error
	ClearAll(ctx context.Context) error
}

// Repository persists basket lines through GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a basket repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByName loads the line for a product, or gorm.ErrRecordNotFound.
func (r *Repository) FindByName(ctx context.Context, productName string) (*models.BasketLine, error) {
	var line models.BasketLine
	if err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		First(&line).
		Error; err != nil {
		return nil, err
	}
	return &line, nil
}

// List returns all lines in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.BasketLine, error) {
	var lines []models.BasketLine
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("product_name ASC").
		Find(&lines).
		Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Insert creates a new line.
func (r *Repository) Insert(ctx context.Context, line *models.BasketLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// Update replaces the mutable columns of the line keyed by product name.
func (r *Repository) Update(ctx context.Context, line *models.BasketLine) error {
	return r.db.WithContext(ctx).
		Model(&models.BasketLine{}).
		Where("product_name = ?", line.ProductName).
		Updates(map[string]any{
			"unit_price": line.UnitPrice,
			"image_url":  line.ImageURL,
			"quantity":   line.Quantity,
		}).
		Error
}

// Delete removes the line for a product if it exists.
func (r *Repository) Delete(ctx context.Context, productName string) error {
	return r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		Delete(&models.BasketLine{}).
		Error
}

// ClearAll empties the table unconditionally.
func (r *Repository) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM basket_lines").
		Error
}
