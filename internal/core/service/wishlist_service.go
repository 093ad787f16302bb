package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

const defaultWishlistPageSize = 12

// WishlistService implements wishlist management.
type WishlistService struct {
	wishlist ports.WishlistRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewWishlistService(wishlist ports.WishlistRepository, products ports.ProductRepository, logger zerolog.Logger) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products, logger: logger}
}

func (s *WishlistService) Add(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*domain.WishlistItem] {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return response.Failure[*domain.WishlistItem]("Product not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("product_id", productID).Msg("wishlist add: product lookup failed")
		return response.Internal[*domain.WishlistItem]("Error adding to wishlist")
	}
	if !product.IsActive {
		return response.Failure[*domain.WishlistItem]("Product is no longer available", http.StatusGone)
	}

	exists, err := s.wishlist.Exists(ctx, id.UserID, productID)
	if err != nil {
		s.logger.Error().Err(err).Msg("wishlist add: existence check failed")
		return response.Internal[*domain.WishlistItem]("Error adding to wishlist")
	}
	if exists {
		return response.Failure[*domain.WishlistItem]("Product already in wishlist", http.StatusConflict)
	}

	item, err := s.wishlist.Add(ctx, id.UserID, productID)
	if err != nil {
		// The unique constraint can still fire between the check and the
		// insert; report it the same way.
		if errors.Is(err, domain.ErrWishlistDuplicate) {
			return response.Failure[*domain.WishlistItem]("Product already in wishlist", http.StatusConflict)
		}
		s.logger.Error().Err(err).Msg("wishlist add failed")
		return response.Internal[*domain.WishlistItem]("Error adding to wishlist")
	}
	return response.Created("Added to wishlist", item)
}

func (s *WishlistService) Remove(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*struct{}] {
	exists, err := s.wishlist.Exists(ctx, id.UserID, productID)
	if err != nil {
		s.logger.Error().Err(err).Msg("wishlist remove: existence check failed")
		return response.Internal[*struct{}]("Error removing from wishlist")
	}
	if !exists {
		return response.Failure[*struct{}]("Item not in wishlist", http.StatusNotFound)
	}

	if err := s.wishlist.Remove(ctx, id.UserID, productID); err != nil {
		s.logger.Error().Err(err).Msg("wishlist remove failed")
		return response.Internal[*struct{}]("Error removing from wishlist")
	}
	return response.OK[*struct{}]("Removed from wishlist", nil)
}

func (s *WishlistService) List(ctx context.Context, id domain.Identity, page, limit int) response.Envelope[*ports.WishlistList] {
	page = clampPage(page)
	limit = clampLimit(limit, defaultWishlistPageSize)
	offset := (page - 1) * limit

	items, err := s.wishlist.ListByUser(ctx, id.UserID, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("wishlist list failed")
		return response.Internal[*ports.WishlistList]("Error fetching wishlist")
	}
	total, err := s.wishlist.CountByUser(ctx, id.UserID)
	if err != nil {
		s.logger.Error().Err(err).Msg("wishlist count failed")
		return response.Internal[*ports.WishlistList]("Error fetching wishlist")
	}

	return response.OK("Wishlist retrieved", &ports.WishlistList{Data: items, Total: total})
}

// Clear removes every entry for the user in a single bulk delete.
func (s *WishlistService) Clear(ctx context.Context, id domain.Identity) response.Envelope[*struct{}] {
	if err := s.wishlist.Clear(ctx, id.UserID); err != nil {
		s.logger.Error().Err(err).Msg("wishlist clear failed")
		return response.Internal[*struct{}]("Error clearing wishlist")
	}
	return response.OK[*struct{}]("Wishlist cleared", nil)
}
