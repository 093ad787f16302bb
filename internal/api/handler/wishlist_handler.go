package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/core/ports"
)

type addWishlistRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// WishlistHandler handles HTTP requests for the wishlist.
type WishlistHandler struct {
	service ports.WishlistService
}

func NewWishlistHandler(service ports.WishlistService) *WishlistHandler {
	return &WishlistHandler{service: service}
}

// Add handles POST /wishlist.
func (h *WishlistHandler) Add(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addWishlistRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.service.Add(c.Request().Context(), id, req.ProductID))
}

// Remove handles DELETE /wishlist/:productId.
func (h *WishlistHandler) Remove(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	return respond(c, h.service.Remove(c.Request().Context(), id, productID))
}

// List handles GET /wishlist.
func (h *WishlistHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.List(c.Request().Context(), id,
		queryInt(c, "page", 1), queryInt(c, "limit", 0)))
}

// Clear handles DELETE /wishlist.
func (h *WishlistHandler) Clear(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.Clear(c.Request().Context(), id))
}
