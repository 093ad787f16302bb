package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// AddToCartInput carries a validated add-to-cart request.
type AddToCartInput struct {
	ProductID int64
	Quantity  int
}

// CartService defines cart use cases. Every mutation re-validates quantities
// against live product stock and returns the authoritative cart read-back.
type CartService interface {
	Get(ctx context.Context, id domain.Identity) response.Envelope[*domain.Cart]
	Add(ctx context.Context, id domain.Identity, in AddToCartInput) response.Envelope[*domain.Cart]
	UpdateItem(ctx context.Context, id domain.Identity, productID int64, quantity int) response.Envelope[*domain.Cart]
	RemoveItem(ctx context.Context, id domain.Identity, productID int64) response.Envelope[*domain.Cart]
	Clear(ctx context.Context, id domain.Identity) response.Envelope[*struct{}]
}
