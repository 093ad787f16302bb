package ports

import (
	"context"
	"time"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Firstname    string
	Lastname     string
	Email        string
	MobileNumber *string
	Avatar       *string
	Password     string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the payload returned on successful login.
type LoginResult struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AddressInput carries a new address-book entry.
type AddressInput struct {
	Firstname string
	Lastname  string
	Street    string
	City      string
	State     string
	Zipcode   string
	Country   string
	Phone     string
}

// UserService defines account use cases. Every method returns the uniform
// envelope; store failures surface as 500 envelopes, never as panics or raw
// errors.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) response.Envelope[*domain.User]
	Login(ctx context.Context, in LoginInput) response.Envelope[*LoginResult]
	// Logout revokes the presented token for its remaining validity and
	// clears the account's refresh token.
	Logout(ctx context.Context, id domain.Identity, token string) response.Envelope[*struct{}]
	FindAll(ctx context.Context, id domain.Identity) response.Envelope[[]*domain.User]
	FindByID(ctx context.Context, userID int64) response.Envelope[*domain.User]
	AddAddress(ctx context.Context, id domain.Identity, in AddressInput) response.Envelope[*domain.Address]
	ListAddresses(ctx context.Context, id domain.Identity) response.Envelope[[]*domain.Address]
}
