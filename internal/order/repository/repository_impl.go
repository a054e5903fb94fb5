package repository

import (
	"context"

	"github.com/legaldesk/analytics/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAllOrders(ctx context.Context, db *gorm.DB) ([]domain.Order, error) {
	var orders []domain.Order
	err := db.WithContext(ctx).Raw(
		`SELECT order_id, customer_id, order_date, total_amount
		 FROM orders ORDER BY order_id ASC`,
	).Scan(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repo) FindAllItems(ctx context.Context, db *gorm.DB) ([]domain.OrderItem, error) {
	var items []domain.OrderItem
	err := db.WithContext(ctx).Raw(
		`SELECT order_item_id, order_id, product_id, quantity, unit_price
		 FROM order_items ORDER BY order_item_id ASC`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
