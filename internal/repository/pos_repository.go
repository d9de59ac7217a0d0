package repository

import (
	"context"

	"github.com/minima-hotel/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

// POSRepository reads point-of-sale data written by the restaurant and spa
// terminals. This service never writes POS rows.
type POSRepository struct {
	db *gorm.DB
}

func NewPOSRepository(db *gorm.DB) *POSRepository {
	return &POSRepository{db: db}
}

func (r *POSRepository) ListTransactions(ctx context.Context) ([]domain.POSTransaction, error) {
	var transactions []domain.POSTransaction
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *POSRepository) ListItems(ctx context.Context) ([]domain.POSTransactionItem, error) {
	var items []domain.POSTransactionItem
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r *POSRepository) ListProducts(ctx context.Context) ([]domain.POSProduct, error) {
	var products []domain.POSProduct
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, err
}

func (r *POSRepository) ListCategories(ctx context.Context) ([]domain.POSCategory, error) {
	var categories []domain.POSCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}
