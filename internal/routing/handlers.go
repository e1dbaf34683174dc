package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pelyams/product_store/internal/domain"
	"github.com/pelyams/product_store/internal/ports"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ProductHandler struct {
	svc   ports.ProductUsecase
	store Pinger
}

func NewProductHandler(svc ports.ProductUsecase, store Pinger) *ProductHandler {
	return &ProductHandler{
		svc:   svc,
		store: store,
	}
}

// GetProducts lists products. min_price and max_price select the exclusive
// price filter; limit and offset select a page and are required together.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	minPrice, maxPrice := query.Get("min_price"), query.Get("max_price")
	offset, limit := query.Get("offset"), query.Get("limit")

	var products []domain.Product
	var err error
	switch {
	case minPrice != "" || maxPrice != "":
		lower, parseErr := parseDecimal(minPrice, "min_price")
		if parseErr != nil {
			h.fail(w, r, parseErr)
			return
		}
		upper, parseErr := parseDecimal(maxPrice, "max_price")
		if parseErr != nil {
			h.fail(w, r, parseErr)
			return
		}
		products, err = h.svc.FilterByPrice(r.Context(), lower, upper)
	case offset != "" || limit != "":
		if offset == "" || limit == "" {
			h.fail(w, r, fmt.Errorf("%w: limit and offset must be given together", domain.ErrInvalidInput))
			return
		}
		offsetInt, parseErr := parseAndValidate(offset, 0, "offset")
		if parseErr != nil {
			h.fail(w, r, parseErr)
			return
		}
		limitInt, parseErr := parseAndValidate(limit, 1, "limit")
		if parseErr != nil {
			h.fail(w, r, parseErr)
			return
		}
		products, err = h.svc.QueryPaged(r.Context(), limitInt, offsetInt)
	default:
		products, err = h.svc.Query(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.NewProduct
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) GetProductById(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	product, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var req domain.ProductUpdate
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	product, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		addError(r.Context(), err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail records err for the request logger and writes the matching response.
func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	addError(r.Context(), err)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
	case errors.Is(err, domain.ErrInsertion):
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": domain.ErrInsertion.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: failed to decode payload: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}

func parseId(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid product id %q", domain.ErrInvalidInput, raw)
	}
	return id, nil
}

func parseDecimal(s string, name string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to parse %s: %s", domain.ErrInvalidInput, name, err.Error())
	}
	return value, nil
}

func parseAndValidate(s string, lb int64, name string) (int64, error) {
	value, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err != nil:
		return 0, fmt.Errorf("%w: failed to parse %s: %s", domain.ErrInvalidInput, name, err.Error())
	case value < lb:
		return 0, fmt.Errorf("%w: invalid %s: has value %d, must be ge %d", domain.ErrInvalidInput, name, value, lb)
	}
	return value, nil
}
