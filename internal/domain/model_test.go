package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func TestProductUpdateApply(t *testing.T) {
	base := Product{Name: "Chair", Price: decimal.RequireFromString("99.90")}

	testCases := []struct {
		name          string
		update        ProductUpdate
		expectedName  string
		expectedPrice decimal.Decimal
	}{
		{
			name:          "empty patch keeps everything",
			update:        ProductUpdate{},
			expectedName:  "Chair",
			expectedPrice: decimal.RequireFromString("99.90"),
		},
		{
			name:          "price only",
			update:        ProductUpdate{Price: ptr(decimal.RequireFromString("79.90"))},
			expectedName:  "Chair",
			expectedPrice: decimal.RequireFromString("79.90"),
		},
		{
			name:          "name only",
			update:        ProductUpdate{Name: ptr("Armchair")},
			expectedName:  "Armchair",
			expectedPrice: decimal.RequireFromString("99.90"),
		},
		{
			name:          "zero price is a present value",
			update:        ProductUpdate{Price: ptr(decimal.Zero)},
			expectedName:  "Chair",
			expectedPrice: decimal.Zero,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.update.Apply(&p)
			assert.Equal(t, tt.expectedName, p.Name)
			assert.True(t, tt.expectedPrice.Equal(p.Price), "price: got %s", p.Price)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewProduct{Name: "Lamp", Price: decimal.Zero}.Validate())
	assert.True(t, errors.Is(NewProduct{Price: decimal.NewFromInt(1)}.Validate(), ErrInvalidInput))
	assert.True(t, errors.Is(NewProduct{Name: "Lamp", Price: decimal.NewFromInt(-1)}.Validate(), ErrInvalidInput))

	assert.NoError(t, ProductUpdate{}.Validate())
	assert.True(t, errors.Is(ProductUpdate{Name: ptr("")}.Validate(), ErrInvalidInput))
	assert.True(t, errors.Is(ProductUpdate{Price: ptr(decimal.NewFromInt(-5))}.Validate(), ErrInvalidInput))
}

func TestValidatePriceFitsColumn(t *testing.T) {
	tests := []struct {
		price string
		valid bool
	}{
		{price: "99.99", valid: true},
		{price: "99.900", valid: true},
		{price: "9999999999.99", valid: true},
		{price: "99.999", valid: false},
		{price: "0.001", valid: false},
		{price: "10000000000", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			createErr := NewProduct{Name: "Lamp", Price: price}.Validate()
			updateErr := ProductUpdate{Price: &price}.Validate()
			if tt.valid {
				assert.NoError(t, createErr)
				assert.NoError(t, updateErr)
				return
			}
			assert.ErrorIs(t, createErr, ErrInvalidInput)
			assert.ErrorIs(t, updateErr, ErrInvalidInput)
		})
	}
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(Product{Name: "Lamp", Price: decimal.RequireFromString("9")})
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"price":9,`)
}

func TestErrorContainer(t *testing.T) {
	ec := NewErrorContainer()
	ec.Add(ErrNotFound, nil, ErrInternalCache)

	assert.Equal(t, 2, ec.Len())
	assert.True(t, errors.Is(ec, ErrNotFound))
	assert.True(t, errors.Is(ec, ErrInternalCache))
	assert.Equal(t, "not found;\ninternal cache error;\n", ec.Error())
}
