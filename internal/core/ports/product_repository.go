package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// Product sort orders accepted by the list endpoint.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortNewest     = "newest"
	SortRatingDesc = "rating_desc"
)

// ListProductsFilter carries all catalog query parameters after clamping.
type ListProductsFilter struct {
	CategoryID *int64
	Brand      string // case-insensitive substring
	Featured   *bool
	Search     string // free text over name and brand
	ActiveOnly bool
	Sort       string // one of the Sort* constants; empty = newest
	Page       int    // 1-based
	Limit      int
}

// UpdateProductPatch holds the fields a PATCH may change; nil means "leave
// as is".
type UpdateProductPatch struct {
	Name             *string
	Slug             *string
	Brand            *string
	Description      *string
	ShortDescription *string
	Price            *decimal.Decimal
	OriginalPrice    *decimal.Decimal
	Discount         *string
	SKU              *string
	Stock            *int
	IsActive         *bool
	IsFeatured       *bool
	CategoryID       *int64
}

// ProductRepository defines persistence for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// FindByID returns domain.ErrProductNotFound when no product matches.
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	// List returns one page of products plus the unpaginated match count.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, id int64, patch UpdateProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// DecrementStock atomically reduces stock by qty, failing with
	// domain.ErrInsufficientStock when fewer than qty units remain. Intended
	// to run inside the order-creation transaction.
	DecrementStock(ctx context.Context, id int64, qty int) error
}
