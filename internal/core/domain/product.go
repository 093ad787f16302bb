package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Prices are fixed-point decimals end-to-end;
// they are never converted to float64.
type Product struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Slug             string           `json:"slug" db:"slug"`
	Brand            *string          `json:"brand,omitempty" db:"brand"`
	Description      *string          `json:"description,omitempty" db:"description"`
	ShortDescription *string          `json:"shortDescription,omitempty" db:"short_description"`
	Price            decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice    *decimal.Decimal `json:"originalPrice,omitempty" db:"original_price"`
	Discount         *string          `json:"discount,omitempty" db:"discount"`
	SKU              *string          `json:"sku,omitempty" db:"sku"`
	Stock            int              `json:"stock" db:"stock"`
	Rating           decimal.Decimal  `json:"rating" db:"rating"`
	ReviewsCount     int              `json:"reviewsCount" db:"reviews_count"`
	IsActive         bool             `json:"isActive" db:"is_active"`
	IsFeatured       bool             `json:"isFeatured" db:"is_featured"`
	CategoryID       int64            `json:"categoryId" db:"category_id"`
	Images           []ProductImage   `json:"images,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" db:"updated_at"`
}

// PrimaryImage returns the URL of the primary image, or nil when the product
// has no images.
func (p *Product) PrimaryImage() *string {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i].URL
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0].URL
	}
	return nil
}

// ProductImage is one image attached to a product.
type ProductImage struct {
	ID        int64  `json:"id" db:"id"`
	ProductID int64  `json:"productId" db:"product_id"`
	URL       string `json:"url" db:"url"`
	IsPrimary bool   `json:"isPrimary" db:"is_primary"`
}

// Category groups products for catalog filtering.
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
