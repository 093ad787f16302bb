package ports

import (
	"context"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

// OrderLineInput is one requested (product, quantity) pair.
type OrderLineInput struct {
	ProductID int64
	Quantity  int
}

// CreateOrderInput carries a validated order-placement request.
type CreateOrderInput struct {
	ShippingAddressID int64
	PaymentMethod     string
	Notes             *string
	Items             []OrderLineInput
}

// ListOrdersInput carries raw order list parameters before clamping.
type ListOrdersInput struct {
	Status string
	Page   int
	Limit  int
}

// OrderList is the paginated order summary payload.
type OrderList struct {
	Data       []*domain.OrderSummary `json:"data"`
	Pagination Pagination             `json:"pagination"`
}

// OrderService defines order use cases.
type OrderService interface {
	// Create runs the full placement workflow atomically: address ownership,
	// per-line stock validation, decimal total accumulation, snapshot
	// capture, stock decrements, order insert. Any failure leaves no partial
	// effect.
	Create(ctx context.Context, id domain.Identity, in CreateOrderInput) response.Envelope[*domain.Order]
	List(ctx context.Context, id domain.Identity, in ListOrdersInput) response.Envelope[*OrderList]
	GetByID(ctx context.Context, id domain.Identity, orderID int64) response.Envelope[*domain.Order]
	UpdateStatus(ctx context.Context, id domain.Identity, orderID int64, status domain.OrderStatus) response.Envelope[*domain.Order]
}
