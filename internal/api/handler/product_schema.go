package handler

import "github.com/shopspring/decimal"

// --- Request types ---

type productImageRequest struct {
	URL       string `json:"url"       validate:"required,url"`
	IsPrimary bool   `json:"isPrimary"`
}

type createProductRequest struct {
	Name             string                `json:"name"             validate:"required"`
	Slug             string                `json:"slug"             validate:"required"`
	Brand            *string               `json:"brand"`
	Description      *string               `json:"description"`
	ShortDescription *string               `json:"shortDescription"`
	Price            decimal.Decimal       `json:"price"            validate:"required"`
	OriginalPrice    *decimal.Decimal      `json:"originalPrice"`
	Discount         *string               `json:"discount"`
	SKU              *string               `json:"sku"`
	Stock            int                   `json:"stock"            validate:"gte=0"`
	IsActive         *bool                 `json:"isActive"`
	IsFeatured       *bool                 `json:"isFeatured"`
	CategoryID       int64                 `json:"categoryId"       validate:"required"`
	Images           []productImageRequest `json:"images"           validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name             *string          `json:"name"             validate:"omitempty,min=1"`
	Slug             *string          `json:"slug"             validate:"omitempty,min=1"`
	Brand            *string          `json:"brand"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"shortDescription"`
	Price            *decimal.Decimal `json:"price"`
	OriginalPrice    *decimal.Decimal `json:"originalPrice"`
	Discount         *string          `json:"discount"`
	SKU              *string          `json:"sku"`
	Stock            *int             `json:"stock"            validate:"omitempty,gte=0"`
	IsActive         *bool            `json:"isActive"`
	IsFeatured       *bool            `json:"isFeatured"`
	CategoryID       *int64           `json:"categoryId"       validate:"omitempty,gt=0"`
}
