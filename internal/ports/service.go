package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pelyams/product_store/internal/domain"
)

type ProductUsecase interface {
	Create(ctx context.Context, product domain.NewProduct) (*domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Query(ctx context.Context) ([]domain.Product, error)
	QueryPaged(ctx context.Context, limit int64, offset int64) ([]domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FilterByPrice(ctx context.Context, minPrice decimal.Decimal, maxPrice decimal.Decimal) ([]domain.Product, error)
}
