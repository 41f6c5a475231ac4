package handler

import (
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

const defaultOrdersPageSize = 10

type OrderHandler struct {
	orders   service.OrderService
	receipts service.ReceiptService
	log      logger.Logger
}

func NewOrderHandler(orders service.OrderService, receipts service.ReceiptService, log logger.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, receipts: receipts, log: log}
}

type checkoutRequest struct {
	BillingEmail  string `json:"billingEmail" validate:"required,email"`
	BillingName   string `json:"billingName" validate:"required,max=120"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,max=32"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required"`
	TransactionID string `json:"transactionId" validate:"max=128"`
}

type orderListResponse struct {
	Orders     []entity.Order `json:"orders"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"totalPages"`
}

func newOrderListResponse(res *repository.ListOrdersResult) orderListResponse {
	orders := res.Orders
	if orders == nil {
		orders = []entity.Order{}
	}
	return orderListResponse{
		Orders:     orders,
		Page:       res.CurrentPage,
		PageSize:   res.PageSize,
		Total:      res.TotalCount,
		TotalPages: res.TotalPages,
	}
}

func (h *OrderHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orders.Checkout(r.Context(), s.UserID, service.CheckoutRequest{
		BillingEmail:  req.BillingEmail,
		BillingName:   req.BillingName,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(w, h.log, "Checkout", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) HandleListMyOrders(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	res, err := h.orders.ListUserOrders(r.Context(), s.UserID, intQuery(r, "page", 1), intQuery(r, "limit", defaultOrdersPageSize))
	if err != nil {
		respondError(w, h.log, "ListUserOrders", err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderListResponse(res))
}

// HandleGetOrder serves the owner's order; admins may read any order.
func (h *OrderHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"), s.UserID, s.IsAdmin())
	if err != nil {
		respondError(w, h.log, "GetOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	order, err := h.orders.CancelOrder(r.Context(), chi.URLParam(r, "id"), s.UserID)
	if err != nil {
		respondError(w, h.log, "CancelOrder", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// HandleReceipt serves the plain-text receipt as an attachment.
func (h *OrderHandler) HandleReceipt(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	body, name, err := h.receipts.GenerateOrderReceipt(r.Context(), chi.URLParam(r, "id"), s.UserID, s.IsAdmin())
	if err != nil {
		respondError(w, h.log, "GenerateOrderReceipt", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *OrderHandler) HandleListAllOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.orders.ListAllOrders(r.Context(), repository.ListOrdersParams{
		UserID:    q.Get("userId"),
		Status:    q.Get("status"),
		Page:      intQuery(r, "page", 1),
		PageSize:  intQuery(r, "limit", defaultOrdersPageSize),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	})
	if err != nil {
		respondError(w, h.log, "ListAllOrders", err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderListResponse(res))
}

func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orders.UpdateStatusByAdmin(r.Context(), chi.URLParam(r, "id"), req.Status, s.UserID)
	if err != nil {
		respondError(w, h.log, "UpdateStatusByAdmin", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) HandleUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var req paymentStatusRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := h.orders.UpdatePaymentStatus(r.Context(), chi.URLParam(r, "id"), req.PaymentStatus, req.TransactionID)
	if err != nil {
		respondError(w, h.log, "UpdatePaymentStatus", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
