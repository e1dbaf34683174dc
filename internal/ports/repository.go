package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pelyams/product_store/internal/domain"
)

// Repository is the record store backing the product usecase.
// FindOne, Replace and Remove report a missing record with domain.ErrNotFound.
type Repository interface {
	Insert(ctx context.Context, product *domain.Product) error
	FindOne(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindPage(ctx context.Context, limit int64, offset int64) ([]domain.Product, error)
	// FindPriceRange returns products with lower < price < upper.
	FindPriceRange(ctx context.Context, lower decimal.Decimal, upper decimal.Decimal) ([]domain.Product, error)
	Replace(ctx context.Context, product *domain.Product) error
	Remove(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}
