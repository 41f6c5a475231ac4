package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var (
	ErrInvalidTransition    = errors.New("invalid order status transition")
	ErrUnknownOrderStatus   = errors.New("unknown order status")
	ErrUnknownPaymentStatus = errors.New("unknown payment status")
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrderStatus, s)
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentStatus, s)
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

type OrderItem struct {
	ProductID   string `json:"productId" bson:"product_id"`
	ProductName string `json:"productName" bson:"product_name"`
	ProductSlug string `json:"productSlug" bson:"product_slug"`
	Price       string `json:"price" bson:"price"`
	Quantity    int    `json:"quantity" bson:"quantity"`
	LineTotal   string `json:"lineTotal" bson:"line_total"`
}

// NewOrderItem snapshots the product at the given unit price.
func NewOrderItem(p Product, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if p.ID == "" {
		return nil, errors.New("product ID cannot be empty")
	}
	if p.Name == "" {
		return nil, errors.New("product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, errors.New("price per unit cannot be negative")
	}
	return &OrderItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		ProductSlug: p.Slug,
		Price:       unitPrice.StringFixed(2),
		Quantity:    quantity,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))).StringFixed(2),
	}, nil
}

type Order struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	OrderNumber   string        `json:"orderNumber" bson:"order_number"`
	UserID        string        `json:"userId" bson:"user_id"`
	Items         []OrderItem   `json:"items" bson:"items"`
	Subtotal      string        `json:"subtotal" bson:"subtotal"`
	Discount      string        `json:"discount" bson:"discount"`
	Total         string        `json:"total" bson:"total"`
	Status        OrderStatus   `json:"status" bson:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus" bson:"payment_status"`
	PaymentMethod string        `json:"paymentMethod,omitempty" bson:"payment_method,omitempty"`
	TransactionID string        `json:"transactionId,omitempty" bson:"transaction_id,omitempty"`
	BillingEmail  string        `json:"billingEmail" bson:"billing_email"`
	BillingName   string        `json:"billingName,omitempty" bson:"billing_name,omitempty"`
	CreatedAt     time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updated_at"`
	Version       int           `json:"version" bson:"version"`
}

// NewOrderNumber returns a human-readable, unique order number such as
// DH-20261019-4F1A9C2B.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("DH-%s-%s", now.UTC().Format("20060102"), suffix)
}

func NewOrder(userID, billingEmail string, items []OrderItem) (*Order, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, errors.New("order must contain at least one item")
	}
	if billingEmail == "" {
		return nil, errors.New("billing email cannot be empty")
	}

	now := time.Now().UTC()
	order := &Order{
		OrderNumber:   NewOrderNumber(now),
		UserID:        userID,
		Items:         items,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		BillingEmail:  billingEmail,
		Discount:      "0.00",
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       1,
	}
	order.CalculateTotals()
	return order, nil
}

// CalculateTotals recomputes subtotal from line totals and total as
// subtotal minus discount.
func (o *Order) CalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(parseDecimal(item.LineTotal))
	}
	discount := parseDecimal(o.Discount)
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
	}
	o.Subtotal = subtotal.StringFixed(2)
	o.Total = total.StringFixed(2)
}

func (o *Order) TotalDecimal() decimal.Decimal {
	return parseDecimal(o.Total)
}

func (o *Order) CanBeCancelled() bool {
	switch o.Status {
	case StatusPending, StatusProcessing:
		return true
	default:
		return false
	}
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range orderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (o *Order) UpdateStatus(newStatus OrderStatus) error {
	if o.Status == newStatus {
		return nil
	}
	if _, ok := orderTransitions[o.Status]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOrderStatus, o.Status)
	}
	if !CanTransition(o.Status, newStatus) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, o.Status, newStatus)
	}
	o.Status = newStatus
	o.touch()
	return nil
}

func (o *Order) UpdatePayment(status PaymentStatus, transactionID string) {
	o.PaymentStatus = status
	if transactionID != "" {
		o.TransactionID = transactionID
	}
	o.touch()
}

func (o *Order) OwnedBy(userID string) bool {
	return o.UserID == userID
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}
