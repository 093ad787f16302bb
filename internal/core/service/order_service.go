package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
	"github.com/marketsquare/storefront-api/internal/core/response"
)

const defaultOrderPageSize = 10

// errOrderAborted signals a business-rule failure inside the placement
// transaction. It forces a rollback while the prepared failure envelope
// carries the user-facing message out.
var errOrderAborted = errors.New("order placement aborted")

// OrderService implements order placement, listing and status management.
type OrderService struct {
	tx        ports.TxManager
	orders    ports.OrderRepository
	products  ports.ProductRepository
	addresses ports.AddressRepository
	policy    ports.Policy
	logger    zerolog.Logger
}

func NewOrderService(
	tx ports.TxManager,
	orders ports.OrderRepository,
	products ports.ProductRepository,
	addresses ports.AddressRepository,
	policy ports.Policy,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		tx:        tx,
		orders:    orders,
		products:  products,
		addresses: addresses,
		policy:    policy,
		logger:    logger,
	}
}

// Create places an order as a single atomic unit. Address ownership, per-line
// stock validation, snapshot capture, stock decrements and the order insert
// all happen inside one store transaction: any failure mid-sequence rolls
// back every prior write.
func (s *OrderService) Create(ctx context.Context, id domain.Identity, in ports.CreateOrderInput) response.Envelope[*domain.Order] {
	var (
		created *domain.Order
		failure response.Envelope[*domain.Order]
	)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		addr, err := s.addresses.FindByIDForUser(ctx, in.ShippingAddressID, id.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrAddressNotFound) {
				failure = response.Failure[*domain.Order]("Invalid shipping address", http.StatusBadRequest)
				return errOrderAborted
			}
			return err
		}

		total := decimal.Zero
		items := make([]domain.OrderItem, 0, len(in.Items))

		for _, line := range in.Items {
			product, err := s.products.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, domain.ErrProductNotFound) {
					failure = response.Failure[*domain.Order](
						fmt.Sprintf("Product not found: %d", line.ProductID), http.StatusBadRequest)
					return errOrderAborted
				}
				return err
			}
			if product.Stock < line.Quantity {
				failure = response.Failure[*domain.Order](
					fmt.Sprintf("Insufficient stock for %s", product.Name), http.StatusBadRequest)
				return errOrderAborted
			}

			// Price, name and image are captured here; the order never
			// re-reads them from the catalog.
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Name:      product.Name,
				Image:     product.PrimaryImage(),
				Price:     product.Price,
				Quantity:  line.Quantity,
			})

			if err := s.products.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					failure = response.Failure[*domain.Order](
						fmt.Sprintf("Insufficient stock for %s", product.Name), http.StatusBadRequest)
					return errOrderAborted
				}
				return err
			}
		}

		now := time.Now().UTC()
		order := &domain.Order{
			OrderNumber:   generateOrderNumber(),
			UserID:        id.UserID,
			Status:        domain.OrderPending,
			TotalAmount:   total,
			PaymentMethod: &in.PaymentMethod,
			PaymentStatus: domain.PaymentUnpaid,
			Notes:         in.Notes,
			ShippingAddress: domain.ShippingAddress{
				Firstname: addr.Firstname,
				Lastname:  addr.Lastname,
				Street:    addr.Street,
				City:      addr.City,
				State:     addr.State,
				Zipcode:   addr.Zipcode,
				Country:   addr.Country,
				Phone:     addr.Phone,
			},
			Items:     items,
			CreatedAt: now,
			UpdatedAt: now,
		}

		created, err = s.orders.Create(ctx, order)
		return err
	})

	switch {
	case err == nil:
		s.logger.Info().
			Str("order_number", created.OrderNumber).
			Int64("user_id", id.UserID).
			Str("total", created.TotalAmount.String()).
			Msg("order created")
		return response.Created("Order created successfully", created)
	case errors.Is(err, errOrderAborted):
		return failure
	default:
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("order creation failed")
		return response.Internal[*domain.Order]("Error creating order")
	}
}

func (s *OrderService) List(ctx context.Context, id domain.Identity, in ports.ListOrdersInput) response.Envelope[*ports.OrderList] {
	filter := ports.ListOrdersFilter{
		Status: domain.OrderStatus(in.Status),
		Page:   clampPage(in.Page),
		Limit:  clampLimit(in.Limit, defaultOrderPageSize),
	}
	// Non-admin callers are implicitly scoped to their own orders.
	if !s.policy.Allow(id, domain.ActionViewAllOrders) {
		filter.UserID = id.UserID
	}

	summaries, total, err := s.orders.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", id.UserID).Msg("list orders failed")
		return response.Internal[*ports.OrderList]("Error fetching orders")
	}

	return response.OK("Orders retrieved", &ports.OrderList{
		Data:       summaries,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	})
}

func (s *OrderService) GetByID(ctx context.Context, id domain.Identity, orderID int64) response.Envelope[*domain.Order] {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return response.Failure[*domain.Order]("Order not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("get order failed")
		return response.Internal[*domain.Order]("Error fetching order")
	}
	if order.UserID != id.UserID && !s.policy.Allow(id, domain.ActionViewAllOrders) {
		return response.Failure[*domain.Order]("Forbidden", http.StatusForbidden)
	}
	return response.OK("Order found", order)
}

// UpdateStatus replaces the order's status. Any status may move to any other;
// the back office relies on this to correct mistakes.
func (s *OrderService) UpdateStatus(ctx context.Context, id domain.Identity, orderID int64, status domain.OrderStatus) response.Envelope[*domain.Order] {
	if !s.policy.Allow(id, domain.ActionUpdateOrderStatus) {
		return response.Failure[*domain.Order]("Unauthorized", http.StatusForbidden)
	}

	order, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return response.Failure[*domain.Order]("Order not found", http.StatusNotFound)
		}
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("update order status failed")
		return response.Internal[*domain.Order]("Error updating order")
	}
	return response.OK("Order status updated", order)
}

// generateOrderNumber returns a unique order number in the format ORD-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("ORD-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("ORD-%08X", b)
}
