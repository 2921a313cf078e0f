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

type bankAccountService interface {
	Create(ctx context.Context, uid string, req dto.CreateBankAccountRequest) (*models.BankAccount, error)
	FindAllByUserID(ctx context.Context, uid string) ([]models.BankAccountWithBalance, error)
	Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error)
	Remove(ctx context.Context, uid, bankAccountID string) error
}

type bankAccountHandlers struct {
	ResponseHandler response.ResponseHandler
	BankAccountSvc  bankAccountService
}

func NewBankAccountHandlers(deps *Deps) *bankAccountHandlers {
	return &bankAccountHandlers{
		ResponseHandler: deps.ResponseHandler,
		BankAccountSvc:  deps.BankAccountSvc,
	}
}

func (h *bankAccountHandlers) BankAccountRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{bankAccountId}", h.Update)
	r.Delete("/{bankAccountId}", h.Delete)
	return r
}

func (h *bankAccountHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBankAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.BankAccountSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, account)
}

func (h *bankAccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	accounts, err := h.BankAccountSvc.FindAllByUserID(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, accounts)
}

func (h *bankAccountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	bankAccountID := chi.URLParam(r, "bankAccountId")
	var req dto.UpdateBankAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	account, err := h.BankAccountSvc.Update(r.Context(), uid, bankAccountID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, account)
}

func (h *bankAccountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	bankAccountID := chi.URLParam(r, "bankAccountId")
	uid := middleware.UID(r.Context())
	if err := h.BankAccountSvc.Remove(r.Context(), uid, bankAccountID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteNoContent(w, r)
}
