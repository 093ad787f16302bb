package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/marketsquare/storefront-api/internal/core/domain"
	"github.com/marketsquare/storefront-api/internal/core/ports"
)

type orderFixture struct {
	svc       *OrderService
	tx        *stubTxManager
	orders    *stubOrderRepo
	products  *stubProductRepo
	addresses *stubAddressRepo
}

func newOrderFixture() *orderFixture {
	tx := &stubTxManager{}
	orders := newStubOrderRepo()
	products := newStubProductRepo()
	addresses := newStubAddressRepo()
	svc := NewOrderService(tx, orders, products, addresses, NewRolePolicy(), zerolog.Nop())

	// Rollback in the stub undoes stock mutations like a real transaction.
	var saved map[int64]int
	tx.onBegin = func() { saved = products.stocks() }
	tx.onRollback = func() { products.restoreStocks(saved) }

	return &orderFixture{svc: svc, tx: tx, orders: orders, products: products, addresses: addresses}
}

func seedAddress(addresses *stubAddressRepo, userID int64) int64 {
	addr, _ := addresses.Create(context.Background(), &domain.Address{
		UserID: userID, Firstname: "Ann", Lastname: "Bell", Street: "2 Oak Ave",
		City: "Portland", State: "OR", Zipcode: "97201", Country: "US", Phone: "555-0101",
	})
	return addr.ID
}

func TestOrderService_Create_Success(t *testing.T) {
	f := newOrderFixture()
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}
	addrID := seedAddress(f.addresses, 1)
	seedProduct(f.products, 10, "widget", "19.99", 5, true)
	seedProduct(f.products, 11, "gadget", "5.50", 3, true)

	env := f.svc.Create(context.Background(), id, ports.CreateOrderInput{
		ShippingAddressID: addrID,
		PaymentMethod:     "card",
		Items: []ports.OrderLineInput{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		},
	})
	if !env.Success || env.StatusCode != http.StatusCreated {
		t.Fatalf("create failed: %+v", env)
	}

	order := env.ResponseObject
	if order.Status != domain.OrderPending {
		t.Fatalf("expected PENDING, got %s", order.Status)
	}
	if order.PaymentStatus != domain.PaymentUnpaid {
		t.Fatalf("expected UNPAID, got %s", order.PaymentStatus)
	}
	if !strings.HasPrefix(order.OrderNumber, "ORD-") || len(order.OrderNumber) != 12 {
		t.Fatalf("unexpected order number %q", order.OrderNumber)
	}
	if want := decimal.RequireFromString("45.48"); !order.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, order.TotalAmount)
	}
	if order.ShippingAddress.City != "Portland" {
		t.Fatalf("address snapshot missing: %+v", order.ShippingAddress)
	}
	if len(order.Items) != 2 || !order.Items[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("item snapshots wrong: %+v", order.Items)
	}

	if f.products.products[10].Stock != 3 || f.products.products[11].Stock != 2 {
		t.Fatalf("stock not decremented: %d / %d",
			f.products.products[10].Stock, f.products.products[11].Stock)
	}
	if f.tx.commits != 1 {
		t.Fatalf("expected one commit, got %d", f.tx.commits)
	}
}

func TestOrderService_Create_InvalidAddress(t *testing.T) {
	f := newOrderFixture()
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}
	otherAddr := seedAddress(f.addresses, 2) // belongs to someone else
	seedProduct(f.products, 10, "widget", "10.00", 5, true)

	env := f.svc.Create(context.Background(), id, ports.CreateOrderInput{
		ShippingAddressID: otherAddr,
		PaymentMethod:     "card",
		Items:             []ports.OrderLineInput{{ProductID: 10, Quantity: 1}},
	})
	if env.Success || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %+v", env)
	}
	if env.Message != "Invalid shipping address" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
	if !f.tx.rolledBack {
		t.Fatalf("expected rollback")
	}
}

func TestOrderService_Create_UnknownProduct(t *testing.T) {
	f := newOrderFixture()
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}
	addrID := seedAddress(f.addresses, 1)

	env := f.svc.Create(context.Background(), id, ports.CreateOrderInput{
		ShippingAddressID: addrID,
		PaymentMethod:     "card",
		Items:             []ports.OrderLineInput{{ProductID: 99, Quantity: 1}},
	})
	if env.Success || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %+v", env)
	}
	if env.Message != "Product not found: 99" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
}

func TestOrderService_Create_InsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture()
	id := domain.Identity{UserID: 1, Role: domain.RoleCustomer}
	addrID := seedAddress(f.addresses, 1)
	seedProduct(f.products, 10, "widget", "10.00", 5, true)
	seedProduct(f.products, 11, "gadget", "5.00", 1, true)

	env := f.svc.Create(context.Background(), id, ports.CreateOrderInput{
		ShippingAddressID: addrID,
		PaymentMethod:     "card",
		Items: []ports.OrderLineInput{
			{ProductID: 10, Quantity: 2}, // succeeds, then must be undone
			{ProductID: 11, Quantity: 3}, // exceeds stock
		},
	})
	if env.Success || env.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %+v", env)
	}
	if env.Message != "Insufficient stock for gadget" {
		t.Fatalf("unexpected message: %q", env.Message)
	}

	if !f.tx.rolledBack {
		t.Fatalf("expected rollback")
	}
	if f.products.products[10].Stock != 5 || f.products.products[11].Stock != 1 {
		t.Fatalf("partial stock effects survived: %d / %d",
			f.products.products[10].Stock, f.products.products[11].Stock)
	}
	if len(f.orders.orders) != 0 {
		t.Fatalf("expected no order rows, got %d", len(f.orders.orders))
	}
}

func TestOrderService_List_CustomerScopedToOwnOrders(t *testing.T) {
	f := newOrderFixture()

	env := f.svc.List(context.Background(),
		domain.Identity{UserID: 7, Role: domain.RoleCustomer}, ports.ListOrdersInput{})
	if !env.Success {
		t.Fatalf("list failed: %+v", env)
	}
	if f.orders.lastList.UserID != 7 {
		t.Fatalf("expected filter scoped to user 7, got %d", f.orders.lastList.UserID)
	}
}

func TestOrderService_List_AdminSeesAll(t *testing.T) {
	f := newOrderFixture()

	env := f.svc.List(context.Background(),
		domain.Identity{UserID: 7, Role: domain.RoleAdmin}, ports.ListOrdersInput{Limit: 1000})
	if !env.Success {
		t.Fatalf("list failed: %+v", env)
	}
	if f.orders.lastList.UserID != 0 {
		t.Fatalf("expected unscoped filter for admin, got %d", f.orders.lastList.UserID)
	}
	if f.orders.lastList.Limit != 50 {
		t.Fatalf("expected limit clamped to 50, got %d", f.orders.lastList.Limit)
	}
}

func TestOrderService_GetByID_ForeignOrderForbidden(t *testing.T) {
	f := newOrderFixture()
	created, _ := f.orders.Create(context.Background(), &domain.Order{UserID: 2, OrderNumber: "ORD-00000001"})

	env := f.svc.GetByID(context.Background(),
		domain.Identity{UserID: 1, Role: domain.RoleCustomer}, created.ID)
	if env.Success || env.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", env)
	}

	admin := f.svc.GetByID(context.Background(),
		domain.Identity{UserID: 1, Role: domain.RoleAdmin}, created.ID)
	if !admin.Success {
		t.Fatalf("admin read failed: %+v", admin)
	}
}

func TestOrderService_UpdateStatus_RequiresCapability(t *testing.T) {
	f := newOrderFixture()
	created, _ := f.orders.Create(context.Background(), &domain.Order{UserID: 1, OrderNumber: "ORD-00000002"})

	env := f.svc.UpdateStatus(context.Background(),
		domain.Identity{UserID: 1, Role: domain.RoleCustomer}, created.ID, domain.OrderShipped)
	if env.Success || env.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", env)
	}

	admin := f.svc.UpdateStatus(context.Background(),
		domain.Identity{UserID: 1, Role: domain.RoleAdmin}, created.ID, domain.OrderShipped)
	if !admin.Success || admin.ResponseObject.Status != domain.OrderShipped {
		t.Fatalf("admin status update failed: %+v", admin)
	}
}

func TestOrderService_UpdateStatus_MissingOrder(t *testing.T) {
	f := newOrderFixture()

	env := f.svc.UpdateStatus(context.Background(),
		domain.Identity{UserID: 1, Role: domain.RoleAdmin}, 404, domain.OrderShipped)
	if env.Success || env.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %+v", env)
	}
}
