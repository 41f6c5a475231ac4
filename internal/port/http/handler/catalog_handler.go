package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/catalog"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the public product discovery endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
	orders  service.OrderService
	log     logger.Logger
}

func NewCatalogHandler(catalogSvc service.CatalogService, orders service.OrderService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc, orders: orders, log: log}
}

type browseResponse struct {
	*service.BrowseResult
	// Query is the bookmarkable form of the applied facets.
	Query string `json:"query"`
}

// HandleBrowse serves GET /api/products.
func (h *CatalogHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	facets := catalog.ParseFacets(r.URL.Query(), h.catalog.Bounds())
	page := intQuery(r, "page", 1)
	limit := intQuery(r, "limit", catalog.DefaultPerPage)

	res, err := h.catalog.Browse(r.Context(), facets, page, limit)
	if err != nil {
		respondError(w, h.log, "Browse", err)
		return
	}
	writeJSON(w, http.StatusOK, browseResponse{
		BrowseResult: res,
		Query:        res.Facets.Encode(nil).Encode(),
	})
}

// HandleGetProduct serves GET /api/products/{slug}.
func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, h.log, "GetProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.log, "ListCategories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	facets := catalog.ParseFacets(r.URL.Query(), h.catalog.Bounds())
	meta, err := h.catalog.FacetMetadata(r.Context(), facets)
	if err != nil {
		respondError(w, h.log, "FacetMetadata", err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (h *CatalogHandler) HandleDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.catalog.ActiveDeals(r.Context())
	if err != nil {
		respondError(w, h.log, "ActiveDeals", err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *CatalogHandler) HandleAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.catalog.ActiveAnnouncements(r.Context())
	if err != nil {
		respondError(w, h.log, "ActiveAnnouncements", err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

// HandleTrackOrder serves GET /api/orders/track/{orderNumber}. It exposes
// status and progress only.
func (h *CatalogHandler) HandleTrackOrder(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.orders.Tracking(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		respondError(w, h.log, "Tracking", err)
		return
	}
	writeJSON(w, http.StatusOK, tracking)
}
