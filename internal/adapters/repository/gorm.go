package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pelyams/product_store/internal/domain"
)

// productRecord is the table layout of a product. Timestamps are set by the
// usecase, so GORM's automatic time tracking is switched off.
type productRecord struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime:false;not null"`
}

func (productRecord) TableName() string {
	return "products"
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:        p.Id.String(),
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r productRecord) toDomain() (domain.Product, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: malformed product id %q. %s", domain.ErrInternalDb, r.ID, err.Error())
	}
	return domain.Product{
		Id:        id,
		Name:      r.Name,
		Price:     r.Price,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}, nil
}

func toDomainSlice(records []productRecord) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		p, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("%w: failed to migrate products table. %s", domain.ErrInternalDb, err.Error())
	}
	return nil
}

// Insert writes a new row inside a transaction, so a failed insert leaves
// nothing behind.
func (r *GormRepository) Insert(ctx context.Context, product *domain.Product) error {
	rec := toRecord(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("%w: failed to store product %s. %s", domain.ErrInternalDb, product.Id, err.Error())
	}
	return nil
}

func (r *GormRepository) FindOne(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var rec productRecord
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: failed to find product %s in DB", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: failed to get product %s. %s", domain.ErrInternalDb, id, err.Error())
	}
	product, err := rec.toDomain()
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: failed to get all products. %s", domain.ErrInternalDb, err.Error())
	}
	return toDomainSlice(records)
}

func (r *GormRepository) FindPage(ctx context.Context, limit int64, offset int64) ([]domain.Product, error) {
	var records []productRecord
	err := r.db.WithContext(ctx).
		Order("created_at, id").
		Limit(int(limit)).
		Offset(int(offset)).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get paginated products. %s", domain.ErrInternalDb, err.Error())
	}
	return toDomainSlice(records)
}

func (r *GormRepository) FindPriceRange(ctx context.Context, lower decimal.Decimal, upper decimal.Decimal) ([]domain.Product, error) {
	var records []productRecord
	err := r.db.WithContext(ctx).
		Where("price > ? AND price < ?", lower, upper).
		Order("created_at, id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: failed to filter products by price. %s", domain.ErrInternalDb, err.Error())
	}
	return toDomainSlice(records)
}

func (r *GormRepository) Replace(ctx context.Context, product *domain.Product) error {
	rec := toRecord(product)
	result := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Where("id = ?", rec.ID).
		Select("name", "price", "updated_at").
		Updates(&rec)
	if err := result.Error; err != nil {
		return fmt.Errorf("%w: failed to update product %s. %s", domain.ErrInternalDb, product.Id, err.Error())
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: failed to find product %s in DB", domain.ErrNotFound, product.Id)
	}
	return nil
}

func (r *GormRepository) Remove(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&productRecord{})
	if err := result.Error; err != nil {
		return fmt.Errorf("%w: failed to delete product %s. %s", domain.ErrInternalDb, id, err.Error())
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: failed to find product %s in DB", domain.ErrNotFound, id)
	}
	return nil
}

func (r *GormRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: failed to get sql.DB. %s", domain.ErrInternalDb, err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: database ping failed. %s", domain.ErrInternalDb, err.Error())
	}
	return nil
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: failed to get sql.DB. %s", domain.ErrInternalDb, err.Error())
	}
	return sqlDB.Close()
}
