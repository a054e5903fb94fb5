package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads the product dimension in full. The reporting pipeline
// performs a single bulk read per load cycle; there is no incremental path.
type Repository interface {
	FindAll(ctx context.Context, db *gorm.DB) ([]Product, error)
}
