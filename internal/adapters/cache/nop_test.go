package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pelyams/product_store/internal/domain"
)

func TestNopCache(t *testing.T) {
	ctx := context.Background()
	c := NopCache{}
	id := uuid.New()

	assert.NoError(t, c.SetProduct(ctx, &domain.Product{Id: id}))

	product, err := c.GetProduct(ctx, id)
	assert.Nil(t, product)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.True(t, errors.Is(c.DeleteProduct(ctx, id), domain.ErrNotFound))
}
