package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// WishlistList is the paginated wishlist payload.
type WishlistList struct {
	Data  []*domain.WishlistItem `json:"data"`
	Total int64                  `json:"total"`
}

// WishlistService defines wishlist use cases.
type WishlistService interface {
	Add(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*domain.WishlistItem]
	Remove(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*struct{}]
	List(ctx context.Context, id domain.Identity, page, limit int) response.Envelope[*WishlistList]
	Clear(ctx context.Context, id domain.Identity) response.Envelope[*struct{}]
}
