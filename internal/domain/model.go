package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	Id        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type NewProduct struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Prices are stored as numeric(12,2).
const PriceScale = 2

var priceLimit = decimal.New(1, 12-PriceScale)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func validatePrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return fmt.Errorf("%w: product price is negative", ErrInvalidInput)
	case !price.Equal(price.Truncate(PriceScale)):
		return fmt.Errorf("%w: product price %s has more than %d decimal places", ErrInvalidInput, price, PriceScale)
	case price.GreaterThanOrEqual(priceLimit):
		return fmt.Errorf("%w: product price %s must be less than %s", ErrInvalidInput, price, priceLimit)
	}
	return nil
}

func (p NewProduct) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is empty", ErrInvalidInput)
	}
	return validatePrice(p.Price)
}

// ProductUpdate is a partial patch: a nil field is left unchanged.
type ProductUpdate struct {
	Name  *string          `json:"name,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

func (u ProductUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("%w: product name is empty", ErrInvalidInput)
	}
	if u.Price != nil {
		return validatePrice(*u.Price)
	}
	return nil
}

// Apply copies the present fields onto p. Timestamps are left to the caller.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
}
