package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// CartRepository defines persistence for the one-per-user cart aggregate.
// Mutations follow a full-replace strategy: the service computes the complete
// desired line set and ReplaceItems swaps it in atomically.
type CartRepository interface {
	// FindByUserID hydrates the cart with live product data. Returns
	// domain.ErrCartNotFound when the user has no cart row.
	FindByUserID(ctx context.Context, userID int64) (*domain.Cart, error)
	// ReplaceItems atomically replaces the stored line set (delete-all then
	// recreate), creating the cart row when absent.
	ReplaceItems(ctx context.Context, userID int64, lines []domain.CartLine) error
	// Clear removes the cart row and all its lines.
	Clear(ctx context.Context, userID int64) error
}
