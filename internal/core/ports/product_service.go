package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// CreateProductInput carries a validated product-creation request.
type CreateProductInput struct {
	Name             string
	Slug             string
	Brand            *string
	Description      *string
	ShortDescription *string
	Price            decimal.Decimal
	OriginalPrice    *decimal.Decimal
	Discount         *string
	SKU              *string
	Stock            int
	IsActive         *bool
	IsFeatured       *bool
	CategoryID       int64
	Images           []ProductImageInput
}

// ProductImageInput is one image attached at creation time.
type ProductImageInput struct {
	URL       string
	IsPrimary bool
}

// ListProductsInput carries raw catalog query parameters before clamping.
type ListProductsInput struct {
	CategoryID *int64
	Brand      string
	Featured   *bool
	Search     string
	Sort       string
	Page       int
	Limit      int
}

// ProductList is the paginated catalog payload.
type ProductList struct {
	Data       []*domain.Product `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// ProductService defines catalog use cases.
type ProductService interface {
	Create(ctx context.Context, id domain.Identity, in CreateProductInput) response.Envelope[*domain.Product]
	List(ctx context.Context, id *domain.Identity, in ListProductsInput) response.Envelope[*ProductList]
	GetByID(ctx context.Context, productID int64) response.Envelope[*domain.Product]
	Update(ctx context.Context, id domain.Identity, productID int64, patch UpdateProductPatch) response.Envelope[*domain.Product]
	Delete(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*struct{}]
}
