package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order. Any status may move to any
// other: the storefront's back office corrects misplaced orders freely, so no
// transition graph is enforced.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderRefunded  OrderStatus = "REFUNDED"
)

// PaymentUnpaid is the initial payment status of every order.
const PaymentUnpaid = "UNPAID"

// OrderItem is an immutable snapshot of a purchased product. Name, image and
// price are captured at purchase time and never re-read from the catalog.
type OrderItem struct {
	ProductID int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	Image     *string         `json:"image,omitempty" db:"image"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Quantity  int             `json:"quantity" db:"quantity"`
}

// ShippingAddress is the address snapshot frozen onto the order row.
type ShippingAddress struct {
	Firstname string `json:"firstname" db:"shipping_firstname"`
	Lastname  string `json:"lastname" db:"shipping_lastname"`
	Street    string `json:"street" db:"shipping_street"`
	City      string `json:"city" db:"shipping_city"`
	State     string `json:"state" db:"shipping_state"`
	Zipcode   string `json:"zipcode" db:"shipping_zipcode"`
	Country   string `json:"country" db:"shipping_country"`
	Phone     string `json:"phone" db:"shipping_phone"`
}

// Order is the detail view: full item snapshots plus the address snapshot.
// TotalAmount equals the sum of item price times quantity at creation time and
// is never recomputed.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	UserID          int64           `json:"userId" db:"user_id"`
	Status          OrderStatus     `json:"status" db:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PaymentMethod   *string         `json:"paymentMethod,omitempty" db:"payment_method"`
	PaymentStatus   string          `json:"paymentStatus" db:"payment_status"`
	Notes           *string         `json:"notes,omitempty" db:"notes"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderSummary is the list projection: no line items, no full address.
type OrderSummary struct {
	ID            int64           `json:"id" db:"id"`
	OrderNumber   string          `json:"orderNumber" db:"order_number"`
	UserID        int64           `json:"userId" db:"user_id"`
	Status        OrderStatus     `json:"status" db:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PaymentStatus string          `json:"paymentStatus" db:"payment_status"`
	ItemsCount    int             `json:"itemsCount" db:"items_count"`
	ShippingCity  string          `json:"shippingCity" db:"shipping_city"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}
