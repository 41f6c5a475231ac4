package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/adapter/nats"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// OrderMetrics is implemented by the Prometheus metrics manager.
type OrderMetrics interface {
	OrderPlaced()
	OrderStatusChanged(status string)
}

type nopOrderMetrics struct{}

func (nopOrderMetrics) OrderPlaced()              {}
func (nopOrderMetrics) OrderStatusChanged(string) {}

type CheckoutRequest struct {
	BillingEmail  string
	BillingName   string
	PaymentMethod string
}

// OrderEvent is the payload published on order subjects.
type OrderEvent struct {
	OrderID       string               `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	UserID        string               `json:"userId"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	Total         string               `json:"total"`
	OccurredAt    time.Time            `json:"occurredAt"`
}

// OrderTracking is the public, order-number keyed view of an order.
type OrderTracking struct {
	OrderNumber   string               `json:"orderNumber"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	Progress      entity.OrderProgress `json:"progress"`
	ItemCount     int                  `json:"itemCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type OrderService interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, pageSize int) (*repository.ListOrdersResult, error)
	ListAllOrders(ctx context.Context, params repository.ListOrdersParams) (*repository.ListOrdersResult, error)
	CancelOrder(ctx context.Context, orderID, userID string) (*entity.Order, error)
	UpdateStatusByAdmin(ctx context.Context, orderID, newStatus, adminID string) (*entity.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus, transactionID string) (*entity.Order, error)
	Tracking(ctx context.Context, orderNumber string) (*OrderTracking, error)
}

type OrderServiceDeps struct {
	Orders       repository.OrderRepository
	Carts        repository.CartRepository
	Products     repository.ProductRepository
	ProductCache repository.ProductDetailCache
	Deals        repository.DealRepository
	Publisher    nats.MessagePublisher
	Mailer       email.EmailSender
	Metrics      OrderMetrics
	Log          logger.Logger
	Now          func() time.Time
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	products  *productLookup
	pricer    *dealPricer
	publisher nats.MessagePublisher
	mailer    email.EmailSender
	metrics   OrderMetrics
	log       logger.Logger
}

func NewOrderService(deps OrderServiceDeps) OrderService {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = nats.NoopPublisher{}
	}
	mailer := deps.Mailer
	if mailer == nil {
		mailer = email.NoopSender{Log: deps.Log}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = nopOrderMetrics{}
	}
	return &orderService{
		orderRepo: deps.Orders,
		cartRepo:  deps.Carts,
		products:  newProductLookup(deps.Products, deps.ProductCache, 0, deps.Log),
		pricer:    newDealPricer(deps.Deals, deps.Now, deps.Log),
		publisher: publisher,
		mailer:    mailer,
		metrics:   metrics,
		log:       deps.Log,
	}
}

func newOrderEvent(o *entity.Order) OrderEvent {
	return OrderEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		OccurredAt:    o.UpdatedAt,
	}
}

func (s *orderService) publish(ctx context.Context, subject string, o *entity.Order) {
	if err := s.publisher.Publish(ctx, subject, newOrderEvent(o)); err != nil {
		s.log.Warnf("Failed to publish %s event for order %s: %v", subject, o.ID, err)
	}
}

// Checkout turns the user's cart into a pending order. Items are priced at
// list price; the savings from live deals are recorded as the order discount.
func (s *orderService) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*entity.Order, error) {
	ctx, span := tracer.Tracer().Start(ctx, "OrderService.Checkout")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	s.log.Infof("Placing order for user ID: %s", userID)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cart lookup failed")
		return nil, fmt.Errorf("failed to retrieve cart for placing order: %w", err)
	}
	if cart.IsEmpty() {
		s.log.Warnf("User ID %s attempted to place an order with an empty cart", userID)
		return nil, ErrEmptyCart
	}

	live := s.pricer.live(ctx)
	items := make([]entity.OrderItem, 0, len(cart.Items))
	savings := decimal.Zero
	for _, line := range cart.Items {
		product, err := s.products.get(ctx, line.ProductID)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%w: %s (%v)", ErrProductUnavailable, line.ProductID, err)
		}
		if !product.InStock() {
			return nil, fmt.Errorf("%w: %s is out of stock", ErrProductUnavailable, product.Name)
		}
		item, err := entity.NewOrderItem(*product, product.PriceDecimal(), line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid item in cart (product ID %s): %w", line.ProductID, err)
		}
		items = append(items, *item)

		unit, _ := s.pricer.price(*product, live)
		perUnit := product.PriceDecimal().Sub(unit)
		savings = savings.Add(perUnit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	order, err := entity.NewOrder(userID, req.BillingEmail, items)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	order.BillingName = req.BillingName
	order.PaymentMethod = req.PaymentMethod
	order.Discount = savings.StringFixed(2)
	order.CalculateTotals()

	orderID, err := s.orderRepo.Create(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "order save failed")
		s.log.Errorf("Failed to save order for user ID %s to repository: %v", userID, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	order.ID = orderID
	span.SetAttributes(attribute.String("order.number", order.OrderNumber), attribute.String("order.total", order.Total))

	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.log.Warnf("Failed to clear cart for user ID %s after placing order %s: %v", userID, orderID, err)
	}
	s.publish(ctx, nats.SubjectOrderCreated, order)
	s.sendConfirmation(ctx, order)
	s.metrics.OrderPlaced()

	s.log.Infow("Order placed", "order_id", orderID, "order_number", order.OrderNumber, "user_id", userID, "total", order.Total)
	return order, nil
}

func (s *orderService) sendConfirmation(ctx context.Context, o *entity.Order) {
	receipt := RenderReceipt(o)
	msg := email.Message{
		To:       []string{o.BillingEmail},
		Subject:  fmt.Sprintf("Digital Hub order %s confirmed", o.OrderNumber),
		BodyText: receipt,
		BodyHTML: "<pre>" + htmlEscape(receipt) + "</pre>",
		Attachments: []email.Attachment{
			{Filename: receiptFileName(o), Content: []byte(receipt)},
		},
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Warnf("Failed to send confirmation email for order %s: %v", o.OrderNumber, err)
	}
}

func htmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

func (s *orderService) load(ctx context.Context, orderID string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*entity.Order, error) {
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.OwnedBy(userID) {
		s.log.Warnf("User %s attempted to access order %s belonging to user %s", userID, orderID, order.UserID)
		return nil, fmt.Errorf("%w: order %s", ErrAccessDenied, orderID)
	}
	return order, nil
}

func (s *orderService) ListUserOrders(ctx context.Context, userID string, page, pageSize int) (*repository.ListOrdersResult, error) {
	result, err := s.orderRepo.List(ctx, repository.ListOrdersParams{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.log.Errorf("Failed to list orders for user ID %s from repository: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve user orders: %w", err)
	}
	return result, nil
}

func (s *orderService) ListAllOrders(ctx context.Context, params repository.ListOrdersParams) (*repository.ListOrdersResult, error) {
	if params.Status != "" {
		if _, err := entity.ParseOrderStatus(params.Status); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	result, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return result, nil
}

// transition moves the order to status and persists it with the version
// read at load time.
func (s *orderService) transition(ctx context.Context, order *entity.Order, status entity.OrderStatus) error {
	currentVersion := order.Version
	if err := order.UpdateStatus(status); err != nil {
		return err
	}
	if err := s.orderRepo.UpdateStatus(ctx, repository.UpdateOrderStatusParams{
		OrderID: order.ID,
		Status:  order.Status,
		Version: currentVersion,
	}); err != nil {
		return fmt.Errorf("failed to update order status in repository: %w", err)
	}
	order.Version = currentVersion + 1
	s.metrics.OrderStatusChanged(string(order.Status))
	return nil
}

func (s *orderService) CancelOrder(ctx context.Context, orderID, userID string) (*entity.Order, error) {
	s.log.Infof("User %s attempting to cancel order %s", userID, orderID)
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(userID) {
		s.log.Warnf("User %s attempted to cancel order %s not belonging to them", userID, orderID)
		return nil, fmt.Errorf("%w: cannot cancel order %s", ErrAccessDenied, orderID)
	}
	if !order.CanBeCancelled() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrOrderNotCancelable, orderID, order.Status)
	}
	if err := s.transition(ctx, order, entity.StatusCancelled); err != nil {
		return nil, err
	}
	s.publish(ctx, nats.SubjectOrderCancelled, order)
	s.log.Infof("Order %s cancelled successfully by user %s", orderID, userID)
	return order, nil
}

func (s *orderService) UpdateStatusByAdmin(ctx context.Context, orderID, newStatus, adminID string) (*entity.Order, error) {
	s.log.Infof("Admin %s updating status of order %s to %s", adminID, orderID, newStatus)
	status, err := entity.ParseOrderStatus(newStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(ctx, order, status); err != nil {
		s.log.Errorf("Failed to update order %s by admin %s: %v", orderID, adminID, err)
		return nil, err
	}
	subject := nats.SubjectOrderStatusChanged
	if status == entity.StatusCancelled {
		subject = nats.SubjectOrderCancelled
	}
	s.publish(ctx, subject, order)
	return order, nil
}

// UpdatePaymentStatus records a payment outcome. A completed payment on a
// pending order also moves it to processing.
func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus, transactionID string) (*entity.Order, error) {
	status, err := entity.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	order, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}

	currentVersion := order.Version
	order.UpdatePayment(status, transactionID)
	if err := s.orderRepo.UpdatePayment(ctx, repository.UpdateOrderPaymentParams{
		OrderID:       order.ID,
		PaymentStatus: order.PaymentStatus,
		TransactionID: transactionID,
		Version:       currentVersion,
	}); err != nil {
		return nil, fmt.Errorf("failed to update payment status in repository: %w", err)
	}
	order.Version = currentVersion + 1

	if status == entity.PaymentCompleted && order.Status == entity.StatusPending {
		if err := s.transition(ctx, order, entity.StatusProcessing); err != nil {
			return nil, err
		}
	}
	s.publish(ctx, nats.SubjectOrderStatusChanged, order)
	return order, nil
}

func (s *orderService) Tracking(ctx context.Context, orderNumber string) (*OrderTracking, error) {
	ctx, span := tracer.Tracer().Start(ctx, "OrderService.Tracking")
	defer span.End()

	order, err := s.orderRepo.GetByOrderNumber(ctx, strings.ToUpper(strings.TrimSpace(orderNumber)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderNumber, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	count := 0
	for _, item := range order.Items {
		count += item.Quantity
	}
	return &OrderTracking{
		OrderNumber:   order.OrderNumber,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Progress:      entity.ProgressFor(order.Status),
		ItemCount:     count,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}, nil
}
