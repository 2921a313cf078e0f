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

type UserService interface {
	CreateUser(ctx context.Context, uid, email, first, last string) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.CreateUser)
	r.Get("/me", h.GetMe)
	return r
}

func (h *userHandlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	ctx := r.Context()
	if err := h.UserSvc.CreateUser(ctx, middleware.UID(ctx), middleware.Email(ctx), req.FirstName, req.LastName); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *userHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserSvc.GetUser(r.Context(), middleware.UID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}
