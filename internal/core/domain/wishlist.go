package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WishlistProduct is the slice of product data shown alongside a wishlist
// entry. Unlike order items this is a live reference: price and availability
// reflect the catalog at read time.
type WishlistProduct struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Discount      *string          `json:"discount,omitempty"`
	Image         *string          `json:"image,omitempty"`
	IsActive      bool             `json:"isActive"`
	Stock         int              `json:"stock"`
}

// WishlistItem is a (user, product) pair; the pair is unique per user.
type WishlistItem struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userId"`
	ProductID int64           `json:"productId"`
	CreatedAt time.Time       `json:"createdAt"`
	Product   WishlistProduct `json:"product"`
}
