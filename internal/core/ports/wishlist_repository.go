package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// WishlistRepository defines persistence for wishlist entries.
type WishlistRepository interface {
	// Add inserts the pair, returning domain.ErrWishlistDuplicate when the
	// (user, product) uniqueness constraint is violated.
	Add(ctx context.Context, userID, productID int64) (*domain.WishlistItem, error)
	Exists(ctx context.Context, userID, productID int64) (bool, error)
	// Remove returns domain.ErrWishlistNotFound when no row was deleted.
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]*domain.WishlistItem, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	// Clear deletes all entries for the user in one statement.
	Clear(ctx context.Context, userID int64) error
}
