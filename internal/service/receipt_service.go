package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
)

type ReceiptService interface {
	GenerateOrderReceipt(ctx context.Context, orderID, userID string, isAdmin bool) ([]byte, string, error)
}

type receiptService struct {
	orders OrderService
	log    logger.Logger
}

// NewReceiptService renders receipts for orders visible through orders.
func NewReceiptService(orders OrderService, log logger.Logger) ReceiptService {
	return &receiptService{orders: orders, log: log}
}

func (s *receiptService) GenerateOrderReceipt(ctx context.Context, orderID, userID string, isAdmin bool) ([]byte, string, error) {
	s.log.Infof("Generating receipt for order ID: %s, requested by User ID: %s", orderID, userID)
	order, err := s.orders.GetOrder(ctx, orderID, userID, isAdmin)
	if err != nil {
		return nil, "", err
	}
	return []byte(RenderReceipt(order)), receiptFileName(order), nil
}

func receiptFileName(o *entity.Order) string {
	return fmt.Sprintf("receipt_%s.txt", o.OrderNumber)
}

// RenderReceipt formats an order as a plain-text receipt.
func RenderReceipt(o *entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Digital Hub receipt\n")
	fmt.Fprintf(&b, "Order: %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "Date: %s\n", o.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
	if o.BillingName != "" {
		fmt.Fprintf(&b, "Billed to: %s <%s>\n", o.BillingName, o.BillingEmail)
	} else {
		fmt.Fprintf(&b, "Billed to: %s\n", o.BillingEmail)
	}
	fmt.Fprintf(&b, "Status: %s / payment %s\n\nItems:\n", o.Status, o.PaymentStatus)
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s (x%d) @ %s = %s\n", item.ProductName, item.Quantity, item.Price, item.LineTotal)
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", o.Subtotal)
	if o.Discount != "" && o.Discount != "0.00" {
		fmt.Fprintf(&b, "Discount: -%s\n", o.Discount)
	}
	fmt.Fprintf(&b, "Total: %s\n", o.Total)
	return b.String()
}
