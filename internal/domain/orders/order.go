package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is a customer order, the aggregate root over its items
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber          string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	CustomerEmail        string          `gorm:"type:varchar(200);not null"`
	IsGuestOrder         bool            `gorm:"not null;default:false"`
	Status               OrderStatus     `gorm:"type:varchar(15);not null;default:'pending'"`
	PaymentStatus        PaymentStatus   `gorm:"type:varchar(15);not null;default:'pending'"`
	PaymentMethod        string          `gorm:"type:varchar(50)"`
	PaymentTransactionID string          `gorm:"type:varchar(200)"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TaxAmount            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingCost         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ShippingAddress      string          `gorm:"type:text"`
	BillingAddress       string          `gorm:"type:text"`
	ShippingMethod       string          `gorm:"type:varchar(100)"`
	TrackingNumber       string          `gorm:"type:varchar(200)"`
	Notes                string          `gorm:"type:text"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippedAt            *time.Time
	DeliveredAt          *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line on an order. Product name, SKU, and price are
// captured at order time so the line survives later catalog changes.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	ProductSKU  string          `gorm:"type:varchar(100);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a new order in pending state.
// The order number is the first eight characters of the order's ID,
// matching what customers see on their confirmation.
func NewOrder(customerEmail string, isGuest bool, shippingAddress, billingAddress string) (*Order, error) {
	if customerEmail == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerEmail:     customerEmail,
		IsGuestOrder:      isGuest,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		ShippingAddress:   shippingAddress,
		BillingAddress:    billingAddress,
	}
	order.OrderNumber = strings.ToUpper(order.ID.String()[:8])

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line to the order and recalculates totals
func (o *Order) AddItem(productID uuid.UUID, productName, productSKU string, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	item := OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     o.ID,
		ProductID:   productID,
		ProductName: productName,
		ProductSKU:  productSKU,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
	o.Items = append(o.Items, item)
	o.recalculate()
	o.touch()

	return nil
}

// SetCharges sets tax, shipping, and discount amounts and recalculates
func (o *Order) SetCharges(tax, shipping, discount decimal.Decimal) error {
	if tax.IsNegative() || shipping.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charges cannot be negative")
	}

	o.TaxAmount = tax
	o.ShippingCost = shipping
	o.DiscountAmount = discount
	o.recalculate()
	o.touch()

	return nil
}

// UpdateStatus moves the order through its fulfilment lifecycle
func (o *Order) UpdateStatus(status OrderStatus) error {
	if o.Status == status {
		return nil
	}
	if o.Status == OrderStatusCancelled || o.Status == OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order is already finalised")
	}

	now := time.Now()
	switch status {
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCancelled:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	o.Status = status
	o.touch()

	o.AddDomainEvent(NewOrderUpdatedEvent(o))

	return nil
}

// RecordPayment records the outcome of a payment attempt
func (o *Order) RecordPayment(status PaymentStatus, method, transactionID string) {
	o.PaymentStatus = status
	o.PaymentMethod = method
	o.PaymentTransactionID = transactionID
	o.touch()

	o.AddDomainEvent(NewOrderUpdatedEvent(o))
}

// SetTracking records the shipping method and tracking number
func (o *Order) SetTracking(method, trackingNumber string) {
	o.ShippingMethod = method
	o.TrackingNumber = trackingNumber
	o.touch()

	o.AddDomainEvent(NewOrderUpdatedEvent(o))
}

// IsFinalised reports whether the order can no longer change state
func (o *Order) IsFinalised() bool {
	return o.Status == OrderStatusCancelled || o.Status == OrderStatusDelivered
}

func (o *Order) recalculate() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	o.Subtotal = subtotal
	o.TotalAmount = subtotal.Add(o.TaxAmount).Add(o.ShippingCost).Sub(o.DiscountAmount)
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
