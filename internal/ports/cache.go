package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/pelyams/product_store/internal/domain"
)

type Cache interface {
	SetProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
