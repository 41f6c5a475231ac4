package handler

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// maxUploadBytes leaves room for multipart overhead above the image limit.
const maxUploadBytes = 6 << 20

type AdminHandler struct {
	admin service.AdminService
	log   logger.Logger
}

func NewAdminHandler(admin service.AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log}
}

type productRequest struct {
	Name             string                 `json:"name" validate:"required,max=200"`
	Slug             string                 `json:"slug" validate:"omitempty,max=200"`
	Description      string                 `json:"description"`
	ShortDescription string                 `json:"shortDescription" validate:"max=500"`
	Price            string                 `json:"price" validate:"required,numeric"`
	ComparePrice     string                 `json:"comparePrice" validate:"omitempty,numeric"`
	CategoryID       string                 `json:"categoryId"`
	Images           []string               `json:"images" validate:"dive,required"`
	Stock            int                    `json:"stock" validate:"min=0"`
	Featured         bool                   `json:"featured"`
	Tags             []string               `json:"tags" validate:"dive,required"`
	Metadata         map[string]interface{} `json:"metadata"`
	AverageRating    string                 `json:"averageRating" validate:"omitempty,numeric"`
	TotalReviews     int                    `json:"totalReviews" validate:"min=0"`
	TotalSales       *int                   `json:"totalSales" validate:"omitempty,min=0"`
}

func (req productRequest) toEntity(id string) *entity.Product {
	return &entity.Product{
		ID:               id,
		Slug:             req.Slug,
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		ComparePrice:     req.ComparePrice,
		CategoryID:       req.CategoryID,
		Images:           req.Images,
		Stock:            req.Stock,
		Featured:         req.Featured,
		Tags:             req.Tags,
		Metadata:         req.Metadata,
		AverageRating:    req.AverageRating,
		TotalReviews:     req.TotalReviews,
		TotalSales:       req.TotalSales,
	}
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    string `json:"parentId"`
	IsActive    bool   `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}

func (req categoryRequest) toEntity(id string) *entity.Category {
	return &entity.Category{
		ID:          id,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Image:       req.Image,
		ParentID:    req.ParentID,
		IsActive:    req.IsActive,
		SortOrder:   req.SortOrder,
	}
}

type dealRequest struct {
	Title        string    `json:"title" validate:"required,max=120"`
	Description  string    `json:"description"`
	DiscountType string    `json:"discountType" validate:"required,oneof=percentage fixed"`
	Value        string    `json:"value" validate:"required,numeric"`
	Code         string    `json:"code" validate:"omitempty,alphanum,max=32"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	ProductID    string    `json:"productId" validate:"excluded_with=CategoryID"`
	CategoryID   string    `json:"categoryId"`
	IsActive     bool      `json:"isActive"`
}

func (req dealRequest) toEntity(id string) *entity.Deal {
	return &entity.Deal{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		DiscountType: entity.DiscountType(req.DiscountType),
		Value:        req.Value,
		Code:         req.Code,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		ProductID:    req.ProductID,
		CategoryID:   req.CategoryID,
		IsActive:     req.IsActive,
	}
}

type announcementRequest struct {
	Title    string    `json:"title" validate:"required,max=120"`
	Message  string    `json:"message" validate:"required,max=1000"`
	IsActive bool      `json:"isActive"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
}

func (req announcementRequest) toEntity(id string) *entity.Announcement {
	return &entity.Announcement{
		ID:       id,
		Title:    req.Title,
		Message:  req.Message,
		IsActive: req.IsActive,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
}

func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Dashboard(r.Context())
	if err != nil {
		respondError(w, h.log, "Dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.admin.CreateProduct(r.Context(), req.toEntity(""))
	if err != nil {
		respondError(w, h.log, "CreateProduct", err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	product, err := h.admin.UpdateProduct(r.Context(), req.toEntity(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, h.log, "UpdateProduct", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "DeleteProduct", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUploadImage accepts a multipart form with the file in "image".
func (h *AdminHandler) HandleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, service.ErrImageTooLarge.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read image")
		return
	}
	product, err := h.admin.UploadProductImage(r.Context(), chi.URLParam(r, "id"), filepath.Base(header.Filename), data)
	if err != nil {
		respondError(w, h.log, "UploadProductImage", err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *AdminHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.admin.ListCategories(r.Context())
	if err != nil {
		respondError(w, h.log, "ListCategories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *AdminHandler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category, err := h.admin.CreateCategory(r.Context(), req.toEntity(""))
	if err != nil {
		respondError(w, h.log, "CreateCategory", err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category, err := h.admin.UpdateCategory(r.Context(), req.toEntity(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, h.log, "UpdateCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *AdminHandler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "DeleteCategory", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := h.admin.ListDeals(r.Context())
	if err != nil {
		respondError(w, h.log, "ListDeals", err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

func (h *AdminHandler) HandleCreateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	deal, err := h.admin.CreateDeal(r.Context(), req.toEntity(""))
	if err != nil {
		respondError(w, h.log, "CreateDeal", err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}

func (h *AdminHandler) HandleUpdateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	deal, err := h.admin.UpdateDeal(r.Context(), req.toEntity(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, h.log, "UpdateDeal", err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

func (h *AdminHandler) HandleDeleteDeal(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteDeal(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "DeleteDeal", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) HandleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.admin.ListAnnouncements(r.Context())
	if err != nil {
		respondError(w, h.log, "ListAnnouncements", err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (h *AdminHandler) HandleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.admin.CreateAnnouncement(r.Context(), req.toEntity(""))
	if err != nil {
		respondError(w, h.log, "CreateAnnouncement", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *AdminHandler) HandleUpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.admin.UpdateAnnouncement(r.Context(), req.toEntity(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, h.log, "UpdateAnnouncement", err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AdminHandler) HandleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.log, "DeleteAnnouncement", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
