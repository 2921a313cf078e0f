package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/middleware"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/internal/response"
)

type categoryService interface {
	Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error)
	FindAllByUserID(ctx context.Context, uid string) ([]*models.Category, error)
	Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error)
	Remove(ctx context.Context, uid, categoryID string) error
}

type categoryHandlers struct {
	ResponseHandler response.ResponseHandler
	CategorySvc     categoryService
}

func NewCategoryHandlers(deps *Deps) *categoryHandlers {
	return &categoryHandlers{
		ResponseHandler: deps.ResponseHandler,
		CategorySvc:     deps.CategorySvc,
	}
}

func (h *categoryHandlers) CategoryRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{categoryId}", h.Update)
	r.Delete("/{categoryId}", h.Delete)
	return r
}

func (h *categoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	category, err := h.CategorySvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, category)
}

func (h *categoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	categories, err := h.CategorySvc.FindAllByUserID(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, categories)
}

func (h *categoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	var req dto.UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	category, err := h.CategorySvc.Update(r.Context(), uid, categoryID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, category)
}

func (h *categoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	uid := middleware.UID(r.Context())
	if err := h.CategorySvc.Remove(r.Context(), uid, categoryID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteNoContent(w, r)
}
