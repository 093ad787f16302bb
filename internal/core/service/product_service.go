package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

const defaultProductPageSize = 12

// ProductService implements catalog management and listing.
type ProductService struct {
	products ports.ProductRepository
	policy   ports.Policy
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, policy ports.Policy, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, policy: policy, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, id domain.Identity, in ports.CreateProductInput) response.Envelope[*domain.Product] {
	if !s.policy.Allow(id, domain.ActionManageCatalog) {
		return response.Failure[*domain.Product]("Unauthorized", http.StatusForbidden)
	}

	existing, err := s.products.FindBySlug(ctx, in.Slug)
	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		s.logger.Error().Err(err).Str("slug", in.Slug).Msg("create product: slug lookup failed")
		return response.Internal[*domain.Product]("Error creating product")
	}
	if existing != nil {
		return response.Failure[*domain.Product]("Product with this slug already exists", http.StatusConflict)
	}

	product := &domain.Product{
		Name:             in.Name,
		Slug:             in.Slug,
		Brand:            in.Brand,
		Description:      in.Description,
		ShortDescription: in.ShortDescription,
		Price:            in.Price,
		OriginalPrice:    in.OriginalPrice,
		Discount:         in.Discount,
		SKU:              in.SKU,
		Stock:            in.Stock,
		Rating:           decimal.Zero,
		IsActive:         true,
		IsFeatured:       false,
		CategoryID:       in.CategoryID,
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}
	for _, img := range in.Images {
		product.Images = append(product.Images, domain.ProductImage{URL: img.URL, IsPrimary: img.IsPrimary})
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return response.Failure[*domain.Product]("Product with this slug already exists", http.StatusConflict)
		}
		s.logger.Error().Err(err).Str("slug", in.Slug).Msg("create product failed")
		return response.Internal[*domain.Product]("Error creating product")
	}

	s.logger.Info().Int64("product_id", created.ID).Str("slug", created.Slug).Msg("product created")
	return response.Created("Product created successfully", created)
}

func (s *ProductService) List(ctx context.Context, id *domain.Identity, in ports.ListProductsInput) response.Envelope[*ports.ProductList] {
	activeOnly := true
	if id != nil && s.policy.Allow(*id, domain.ActionViewInactiveProducts) {
		activeOnly = false
	}

	filter := ports.ListProductsFilter{
		CategoryID: in.CategoryID,
		Brand:      in.Brand,
		Featured:   in.Featured,
		Search:     in.Search,
		ActiveOnly: activeOnly,
		Sort:       in.Sort,
		Page:       clampPage(in.Page),
		Limit:      clampLimit(in.Limit, defaultProductPageSize),
	}

	items, total, err := s.products.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("list products failed")
		return response.Internal[*ports.ProductList]("Error fetching products")
	}

	return response.OK("Products retrieved", &ports.ProductList{
		Data:       items,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (s *ProductService) GetByID(ctx context.Context, productID int64) response.Envelope[*domain.Product] {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.Failure[*domain.Product]("Product not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("get product failed")
		return response.Internal[*domain.Product]("Error fetching product")
	}
	return response.OK("Product found", product)
}

func (s *ProductService) Update(ctx context.Context, id domain.Identity, productID int64, patch ports.UpdateProductPatch) response.Envelope[*domain.Product] {
	if !s.policy.Allow(id, domain.ActionManageCatalog) {
		return response.Failure[*domain.Product]("Unauthorized", http.StatusForbidden)
	}

	// Existence check first so "not found" wins over any store-level error
	// the mutation could raise.
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.Failure[*domain.Product]("Product not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("update product: lookup failed")
		return response.Internal[*domain.Product]("Error updating product")
	}

	updated, err := s.products.Update(ctx, productID, patch)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return response.Failure[*domain.Product]("Product with this slug already exists", http.StatusConflict)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("update product failed")
		return response.Internal[*domain.Product]("Error updating product")
	}
	return response.OK("Product updated", updated)
}

func (s *ProductService) Delete(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*struct{}] {
	if !s.policy.Allow(id, domain.ActionManageCatalog) {
		return response.Failure[*struct{}]("Unauthorized", http.StatusForbidden)
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.Failure[*struct{}]("Product not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("delete product: lookup failed")
		return response.Internal[*struct{}]("Error deleting product")
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("delete product failed")
		return response.Internal[*struct{}]("Error deleting product")
	}
	return response.OK[*struct{}]("Product deleted", nil)
}
