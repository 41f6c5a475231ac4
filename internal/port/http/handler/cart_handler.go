package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	cart     service.CartService
	wishlist service.WishlistService
	log      logger.Logger
}

func NewCartHandler(cart service.CartService, wishlist service.WishlistService, log logger.Logger) *CartHandler {
	return &CartHandler{cart: cart, wishlist: wishlist, log: log}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

type wishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	view, err := h.cart.GetCart(r.Context(), s.UserID)
	if err != nil {
		respondError(w, h.log, "GetCart", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.cart.AddItem(r.Context(), s.UserID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, h.log, "AddItem", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleUpdateItem serves PUT /api/cart/items/{productId}. Quantity 0 removes
// the line.
func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.cart.UpdateItemQuantity(r.Context(), s.UserID, chi.URLParam(r, "productId"), req.Quantity)
	if err != nil {
		respondError(w, h.log, "UpdateItemQuantity", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	view, err := h.cart.RemoveItem(r.Context(), s.UserID, chi.URLParam(r, "productId"))
	if err != nil {
		respondError(w, h.log, "RemoveItem", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.cart.ClearCart(r.Context(), s.UserID); err != nil {
		respondError(w, h.log, "ClearCart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandleListWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	products, err := h.wishlist.List(r.Context(), s.UserID)
	if err != nil {
		respondError(w, h.log, "ListWishlist", err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CartHandler) HandleAddWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	var req wishlistRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.wishlist.Add(r.Context(), s.UserID, req.ProductID); err != nil {
		respondError(w, h.log, "AddWishlist", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"productId": req.ProductID})
}

func (h *CartHandler) HandleRemoveWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.wishlist.Remove(r.Context(), s.UserID, chi.URLParam(r, "productId")); err != nil {
		respondError(w, h.log, "RemoveWishlist", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) HandleWishlistContains(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}
	productID := chi.URLParam(r, "productId")
	found, err := h.wishlist.Contains(r.Context(), s.UserID, productID)
	if err != nil {
		respondError(w, h.log, "WishlistContains", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"productId": productID, "inWishlist": found})
}
