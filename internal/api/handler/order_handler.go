package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/marketsquare/storefront-api/internal/api/metrics"
	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order placement and management.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	in := ports.CreateOrderInput{
		ShippingAddressID: req.ShippingAddressID,
		PaymentMethod:     req.PaymentMethod,
		Notes:             req.Notes,
		Items:             make([]ports.OrderLineInput, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, ports.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	env := h.service.Create(c.Request().Context(), id, in)
	if env.Success {
		metrics.OrdersCreatedTotal.Inc()
	}
	return respond(c, env)
}

// List handles GET /orders.
func (h *OrderHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	return respond(c, h.service.List(c.Request().Context(), id, ports.ListOrdersInput{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 0),
	}))
}

// GetByID handles GET /orders/:id.
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return respond(c, h.service.GetByID(c.Request().Context(), id, orderID))
}

// UpdateStatus handles PATCH /orders/:id/status.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return invalidInput(c, err)
	}

	return respond(c, h.service.UpdateStatus(c.Request().Context(), id, orderID, domain.OrderStatus(req.Status)))
}
