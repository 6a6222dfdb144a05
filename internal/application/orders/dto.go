package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CreateOrderRequest is the request to place an order
type CreateOrderRequest struct {
	CustomerEmail   string             `json:"customer_email" binding:"required"`
	IsGuestOrder    bool               `json:"is_guest_order"`
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	BillingAddress  string             `json:"billing_address"`
	Items           []OrderItemRequest `json:"items" binding:"required"`
	TaxAmount       *decimal.Decimal   `json:"tax_amount"`
	ShippingCost    *decimal.Decimal   `json:"shipping_cost"`
	DiscountAmount  *decimal.Decimal   `json:"discount_amount"`
	Notes           string             `json:"notes"`
}

// UpdateStatusRequest moves an order through its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RecordPaymentRequest records a payment outcome on an order
type RecordPaymentRequest struct {
	Status        string `json:"status" binding:"required"`
	Method        string `json:"method"`
	TransactionID string `json:"transaction_id"`
}

// SetTrackingRequest records shipping details on an order
type SetTrackingRequest struct {
	Method         string `json:"method"`
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// OrderItemResponse is one line of an order response
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderNumber     string              `json:"order_number"`
	CustomerEmail   string              `json:"customer_email"`
	IsGuestOrder    bool                `json:"is_guest_order"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	PaymentMethod   string              `json:"payment_method,omitempty"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	TaxAmount       decimal.Decimal     `json:"tax_amount"`
	ShippingCost    decimal.Decimal     `json:"shipping_cost"`
	DiscountAmount  decimal.Decimal     `json:"discount_amount"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	BillingAddress  string              `json:"billing_address"`
	ShippingMethod  string              `json:"shipping_method,omitempty"`
	TrackingNumber  string              `json:"tracking_number,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt       string              `json:"created_at"`
}

// ToOrderResponse converts a domain order to its response
func ToOrderResponse(o *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
		IsGuestOrder:    o.IsGuestOrder,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   o.PaymentMethod,
		Subtotal:        o.Subtotal,
		TaxAmount:       o.TaxAmount,
		ShippingCost:    o.ShippingCost,
		DiscountAmount:  o.DiscountAmount,
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		ShippingMethod:  o.ShippingMethod,
		TrackingNumber:  o.TrackingNumber,
		Notes:           o.Notes,
		Items:           items,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(list []orders.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for i := range list {
		out = append(out, ToOrderResponse(&list[i]))
	}
	return out
}
