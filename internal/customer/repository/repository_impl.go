package repository

import (
	"context"

	"github.com/legaldesk/analytics/internal/customer/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAll(ctx context.Context, db *gorm.DB) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT customer_id, first_name, last_name, registration_date
		 FROM customers ORDER BY customer_id ASC`,
	).Scan(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
