package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// UserRepository defines persistence for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// SetRefreshToken stores (or clears, when token is nil) the session
	// revocation token on the account row.
	SetRefreshToken(ctx context.Context, userID int64, token *string) error
}

// AddressRepository defines persistence for the address book.
type AddressRepository interface {
	Create(ctx context.Context, addr *domain.Address) (*domain.Address, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Address, error)
	// FindByIDForUser returns domain.ErrAddressNotFound when the address does
	// not exist or belongs to another user.
	FindByIDForUser(ctx context.Context, id, userID int64) (*domain.Address, error)
}
