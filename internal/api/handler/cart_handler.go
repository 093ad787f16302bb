package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/api/metrics"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// CartHandler handles HTTP requests for the per-user cart.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return respond(c, h.service.Get(c.Request().Context(), id))
}

// Add handles POST /cart.
func (h *CartHandler) Add(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	env := h.service.Add(c.Request().Context(), id, ports.AddToCartInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if env.Success {
		metrics.CartMutationsTotal.WithLabelValues("add").Inc()
	}
	return respond(c, env)
}

// UpdateItem handles PATCH /cart/:productId.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	var req updateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	env := h.service.UpdateItem(c.Request().Context(), id, productID, req.Quantity)
	if env.Success {
		metrics.CartMutationsTotal.WithLabelValues("update").Inc()
	}
	return respond(c, env)
}

// RemoveItem handles DELETE /cart/:productId.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "productId")
	if err != nil {
		return err
	}

	env := h.service.RemoveItem(c.Request().Context(), id, productID)
	if env.Success {
		metrics.CartMutationsTotal.WithLabelValues("remove").Inc()
	}
	return respond(c, env)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	env := h.service.Clear(c.Request().Context(), id)
	if env.Success {
		metrics.CartMutationsTotal.WithLabelValues("clear").Inc()
	}
	return respond(c, env)
}
