package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAllOrders(ctx context.Context, db *gorm.DB) ([]Order, error)
	FindAllItems(ctx context.Context, db *gorm.DB) ([]OrderItem, error)
}
