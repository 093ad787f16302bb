package handler

// --- Request types ---

type orderLineRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"  validate:"required,min=1"`
}

type createOrderRequest struct {
	ShippingAddressID int64              `json:"shippingAddressId" validate:"required,gt=0"`
	PaymentMethod     string             `json:"paymentMethod"     validate:"required"`
	Notes             *string            `json:"notes"`
	Items             []orderLineRequest `json:"items"             validate:"required,min=1,dive"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED SHIPPED DELIVERED CANCELLED REFUNDED"`
}
