package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/pelyams/product_store/internal/domain"
	"github.com/pelyams/product_store/internal/ports"
)

// ProductUsecase mediates between validated requests and the record store.
// The store owns all durable state; the cache only holds copies of single
// products and is dropped both before and after any write to them.
type ProductUsecase struct {
	db    ports.Repository
	cache ports.Cache
	log   logrus.FieldLogger
	now   func() time.Time
}

var _ ports.ProductUsecase = (*ProductUsecase)(nil)

type Option func(*ProductUsecase)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *ProductUsecase) {
		s.now = now
	}
}

func NewProductUsecase(db ports.Repository, cache ports.Cache, log logrus.FieldLogger, opts ...Option) *ProductUsecase {
	s := &ProductUsecase{
		db:    db,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ProductUsecase) Create(ctx context.Context, input domain.NewProduct) (*domain.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	product := &domain.Product{
		Id:        uuid.New(),
		Name:      input.Name,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInsertion, err.Error())
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.log.WithError(err).WithField("product_id", product.Id).Warn("failed to cache created product")
	}
	return product, nil
}

func (s *ProductUsecase) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	cached, cacheErr := s.cache.GetProduct(ctx, id)
	if cacheErr == nil {
		return cached, nil
	}
	if !errors.Is(cacheErr, domain.ErrNotFound) {
		s.log.WithError(cacheErr).WithField("product_id", id).Warn("cache read failed, falling back to store")
	}

	product, err := s.db.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetProduct(ctx, product); err != nil {
		s.log.WithError(err).WithField("product_id", id).Warn("failed to cache product")
	}
	return product, nil
}

func (s *ProductUsecase) Query(ctx context.Context) ([]domain.Product, error) {
	products, err := s.db.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *ProductUsecase) QueryPaged(ctx context.Context, limit int64, offset int64) ([]domain.Product, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit must be positive and offset non-negative, got limit=%d offset=%d", domain.ErrInvalidInput, limit, offset)
	}
	products, err := s.db.FindPage(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// Update merges the present fields of update into the stored product and
// always refreshes UpdatedAt, even for an empty patch.
func (s *ProductUsecase) Update(ctx context.Context, id uuid.UUID, update domain.ProductUpdate) (*domain.Product, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	product, err := s.db.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(product)
	product.UpdatedAt = s.now().UTC()

	if err := s.invalidate(ctx, id); err != nil {
		return nil, err
	}
	if err := s.db.Replace(ctx, product); err != nil {
		return nil, err
	}
	s.evict(ctx, id)
	return product, nil
}

func (s *ProductUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.FindOne(ctx, id); err != nil {
		return err
	}
	if err := s.invalidate(ctx, id); err != nil {
		return err
	}
	if err := s.db.Remove(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	return nil
}

// FilterByPrice returns products priced strictly between minPrice and maxPrice.
func (s *ProductUsecase) FilterByPrice(ctx context.Context, minPrice decimal.Decimal, maxPrice decimal.Decimal) ([]domain.Product, error) {
	if minPrice.GreaterThanOrEqual(maxPrice) {
		return []domain.Product{}, nil
	}
	products, err := s.db.FindPriceRange(ctx, minPrice, maxPrice)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

// invalidate drops the cached copy of a product. A product that was never
// cached is fine; any other cache failure aborts the write.
func (s *ProductUsecase) invalidate(ctx context.Context, id uuid.UUID) error {
	err := s.cache.DeleteProduct(ctx, id)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// evict drops any copy a concurrent Get cached between invalidate and the
// store write. The write has already happened, so a failure is only logged.
func (s *ProductUsecase) evict(ctx context.Context, id uuid.UUID) {
	if err := s.invalidate(ctx, id); err != nil {
		s.log.WithError(err).WithField("product_id", id).Error("failed to evict product from cache after write")
	}
}
