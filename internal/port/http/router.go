package http

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/http/handler"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/port/http/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	Orders  *handler.OrderHandler
	Admin   *handler.AdminHandler
}

// NewRouter wires every route. rec may be nil.
func NewRouter(h Handlers, jwtSecret string, log logger.Logger, rec middleware.HTTPRecorder) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	if rec != nil {
		r.Use(middleware.Metrics(rec))
	}
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		SetupCatalogRoutes(r, h.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(jwtSecret))
			SetupCartRoutes(r, h.Cart)
			SetupOrderRoutes(r, h.Orders)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				SetupAdminRoutes(r, h.Admin, h.Orders)
			})
		})
	})
	return r
}

func SetupCatalogRoutes(r chi.Router, h *handler.CatalogHandler) {
	r.Get("/products", h.HandleBrowse)
	r.Get("/products/{slug}", h.HandleGetProduct)
	r.Get("/categories", h.HandleListCategories)
	r.Get("/facets", h.HandleFacets)
	r.Get("/deals", h.HandleDeals)
	r.Get("/announcements", h.HandleAnnouncements)
	r.Get("/orders/track/{orderNumber}", h.HandleTrackOrder)
}

func SetupCartRoutes(r chi.Router, h *handler.CartHandler) {
	r.Get("/cart", h.HandleGetCart)
	r.Delete("/cart", h.HandleClearCart)
	r.Post("/cart/items", h.HandleAddItem)
	r.Put("/cart/items/{productId}", h.HandleUpdateItem)
	r.Delete("/cart/items/{productId}", h.HandleRemoveItem)

	r.Get("/wishlist", h.HandleListWishlist)
	r.Post("/wishlist", h.HandleAddWishlist)
	r.Get("/wishlist/{productId}", h.HandleWishlistContains)
	r.Delete("/wishlist/{productId}", h.HandleRemoveWishlist)
}

func SetupOrderRoutes(r chi.Router, h *handler.OrderHandler) {
	r.Post("/checkout", h.HandleCheckout)
	r.Get("/orders", h.HandleListMyOrders)
	r.Get("/orders/{id}", h.HandleGetOrder)
	r.Get("/orders/{id}/receipt", h.HandleReceipt)
	r.Post("/orders/{id}/cancel", h.HandleCancelOrder)
}

func SetupAdminRoutes(r chi.Router, h *handler.AdminHandler, orders *handler.OrderHandler) {
	r.Get("/dashboard", h.HandleDashboard)

	r.Get("/orders", orders.HandleListAllOrders)
	r.Patch("/orders/{id}/status", orders.HandleUpdateStatus)
	r.Patch("/orders/{id}/payment", orders.HandleUpdatePayment)

	r.Post("/products", h.HandleCreateProduct)
	r.Put("/products/{id}", h.HandleUpdateProduct)
	r.Delete("/products/{id}", h.HandleDeleteProduct)
	r.Post("/products/{id}/images", h.HandleUploadImage)

	r.Get("/categories", h.HandleListCategories)
	r.Post("/categories", h.HandleCreateCategory)
	r.Put("/categories/{id}", h.HandleUpdateCategory)
	r.Delete("/categories/{id}", h.HandleDeleteCategory)

	r.Get("/deals", h.HandleListDeals)
	r.Post("/deals", h.HandleCreateDeal)
	r.Put("/deals/{id}", h.HandleUpdateDeal)
	r.Delete("/deals/{id}", h.HandleDeleteDeal)

	r.Get("/announcements", h.HandleListAnnouncements)
	r.Post("/announcements", h.HandleCreateAnnouncement)
	r.Put("/announcements/{id}", h.HandleUpdateAnnouncement)
	r.Delete("/announcements/{id}", h.HandleDeleteAnnouncement)
}
