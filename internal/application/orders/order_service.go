package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ovnstore/backend/internal/domain/catalog"
	"github.com/ovnstore/backend/internal/domain/orders"
	"github.com/ovnstore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles order placement and lifecycle operations
type OrderService struct {
	orders    orders.OrderRepository
	products  catalog.ProductRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo orders.OrderRepository,
	products catalog.ProductRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:    orderRepo,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// Create places an order. Each line captures the product's current name,
// SKU, and effective price; stock is reduced as lines are added.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must have at least one item")
	}

	billing := req.BillingAddress
	if billing == "" {
		billing = req.ShippingAddress
	}
	order, err := orders.NewOrder(req.CustomerEmail, req.IsGuestOrder, req.ShippingAddress, billing)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes

	touched := make([]*catalog.Product, 0, len(req.Items))
	for _, line := range req.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PRODUCT", fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", fmt.Sprintf("Product %s is not available", product.Name))
		}
		if product.StockQuantity < line.Quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Not enough stock for %s", product.Name))
		}

		if err := order.AddItem(product.ID, product.Name, product.SKU, line.Quantity, product.EffectivePrice()); err != nil {
			return nil, err
		}
		if err := product.SetStock(product.StockQuantity - line.Quantity); err != nil {
			return nil, err
		}
		touched = append(touched, product)
	}

	tax, shipping, discount := zeroIfNil(req.TaxAmount), zeroIfNil(req.ShippingCost), zeroIfNil(req.DiscountAmount)
	if err := order.SetCharges(tax, shipping, discount); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	for _, product := range touched {
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}
	}

	s.publishEvents(ctx, &order.BaseAggregateRoot)
	for _, product := range touched {
		s.publishEvents(ctx, &product.BaseAggregateRoot)
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its customer-facing number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with pagination
func (s *OrderService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	list, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(list), total, nil
}

// UpdateStatus moves an order through its fulfilment lifecycle.
// Cancelling restocks the order's items.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := orders.OrderStatus(req.Status)
	restock := status == orders.OrderStatusCancelled && order.Status != orders.OrderStatusCancelled

	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	if restock {
		s.restock(ctx, order)
	}
	s.publishEvents(ctx, &order.BaseAggregateRoot)

	response := ToOrderResponse(order)
	return &response, nil
}

// RecordPayment records a payment outcome on an order
func (s *OrderService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := orders.PaymentStatus(req.Status)
	switch status {
	case orders.PaymentStatusPending, orders.PaymentStatusPaid, orders.PaymentStatusFailed, orders.PaymentStatusRefunded:
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown payment status")
	}

	order.RecordPayment(status, req.Method, req.TransactionID)
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &order.BaseAggregateRoot)

	response := ToOrderResponse(order)
	return &response, nil
}

// SetTracking records shipping details on an order
func (s *OrderService) SetTracking(ctx context.Context, id uuid.UUID, req SetTrackingRequest) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.SetTracking(req.Method, req.TrackingNumber)
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, &order.BaseAggregateRoot)

	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order and its items
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}

	event := orders.NewOrderDeletedEvent(order)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order events", zap.Error(err))
	}
	return nil
}

// restock returns cancelled items to stock. Failures are logged; the
// cancellation itself already committed.
func (s *OrderService) restock(ctx context.Context, order *orders.Order) {
	for _, item := range order.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Warn("restock skipped, product unavailable",
				zap.String("product_id", item.ProductID.String()), zap.Error(err))
			continue
		}
		if err := product.SetStock(product.StockQuantity + item.Quantity); err != nil {
			s.logger.Warn("restock failed", zap.String("product_id", item.ProductID.String()), zap.Error(err))
			continue
		}
		if err := s.products.Save(ctx, product); err != nil {
			s.logger.Warn("restock save failed", zap.String("product_id", item.ProductID.String()), zap.Error(err))
			continue
		}
		s.publishEvents(ctx, &product.BaseAggregateRoot)
	}
}

func zeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func (s *OrderService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish order events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
