package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is the minimal storage shape of a cart entry. The service layer
// computes the full desired line set and the repository replaces the stored
// set wholesale.
type CartLine struct {
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartItem is a cart line hydrated with live product data. Price, name, image
// and stock always come from the products table at read time, never from a
// stored copy.
type CartItem struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Image     *string         `json:"image,omitempty"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// Cart is the one-per-user aggregate returned by every cart operation.
type Cart struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Items       []CartItem      `json:"items"`
	ItemsCount  int             `json:"itemsCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// EmptyCart is the shape returned when a user has no cart row.
func EmptyCart(userID int64) *Cart {
	return &Cart{
		UserID:      userID,
		Items:       []CartItem{},
		TotalAmount: decimal.Zero,
		UpdatedAt:   time.Now().UTC(),
	}
}

// Lines projects the cart back to its storage shape.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.Items))
	for i, item := range c.Items {
		lines[i] = CartLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return lines
}
