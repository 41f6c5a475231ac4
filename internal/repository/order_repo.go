package repository

import (
	"context"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
)

type UpdateOrderStatusParams struct {
	OrderID string
	Status  entity.OrderStatus
	Version int
}

type UpdateOrderPaymentParams struct {
	OrderID       string
	PaymentStatus entity.PaymentStatus
	TransactionID string
	Version       int
}

type ListOrdersParams struct {
	UserID    string
	Status    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListOrdersResult struct {
	Orders      []entity.Order
	TotalCount  int64
	CurrentPage int
	PageSize    int
	TotalPages  int
}

type OrderStats struct {
	TotalOrders   int64
	Revenue       string
	CountByStatus map[entity.OrderStatus]int64
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) (string, error)
	GetByID(ctx context.Context, orderID string) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, params UpdateOrderStatusParams) error
	UpdatePayment(ctx context.Context, params UpdateOrderPaymentParams) error
	List(ctx context.Context, params ListOrdersParams) (*ListOrdersResult, error)
	Stats(ctx context.Context) (*OrderStats, error)
}
