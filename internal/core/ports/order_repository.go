package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
)

// ListOrdersFilter carries order list parameters after clamping. A zero
// UserID means no user scoping (admin view).
type ListOrdersFilter struct {
	UserID int64
	Status domain.OrderStatus
	Page   int
	Limit  int
}

// OrderRepository defines persistence for orders. Create is expected to run
// inside the transaction opened by the order service so the order row, its
// items, and the stock decrements commit or roll back together.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindByID returns domain.ErrOrderNotFound when no order matches.
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// List returns summary projections plus the unpaginated match count.
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.OrderSummary, int64, error)
	// UpdateStatus replaces the status field, returning the refreshed detail
	// view or domain.ErrOrderNotFound.
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
}
