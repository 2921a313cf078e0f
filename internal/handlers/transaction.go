package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/middleware"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/internal/response"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/helpers"
)

type transactionService interface {
	Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error)
	FindAllByUserID(ctx context.Context, uid string, filters dto.TransactionFilters) ([]*models.Transaction, error)
	Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Remove(ctx context.Context, uid, transactionID string) error
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  transactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Put("/{transactionId}", h.Update)
	r.Delete("/{transactionId}", h.Delete)
	return r
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Create(r.Context(), uid, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) List(w http.ResponseWriter, r *http.Request) {
	filters, err := parseTransactionFilters(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	txs, err := h.TransactionSvc.FindAllByUserID(r.Context(), uid, filters)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, txs)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	var req dto.UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	uid := middleware.UID(r.Context())
	tx, err := h.TransactionSvc.Update(r.Context(), uid, transactionID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionId")
	uid := middleware.UID(r.Context())
	if err := h.TransactionSvc.Remove(r.Context(), uid, transactionID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteNoContent(w, r)
}

// transactionListQuery mirrors the accepted query string. Month is zero-based.
type transactionListQuery struct {
	Month         int     `validate:"gte=0,lte=11"`
	Year          int     `validate:"gte=1,lte=9999"`
	BankAccountID *string `validate:"omitempty,uuid"`
	Type          *string `validate:"omitempty,oneof=INCOME EXPENSE"`
}

func parseTransactionFilters(r *http.Request) (dto.TransactionFilters, error) {
	q := r.URL.Query()

	month, err := requiredInt(q.Get("month"), "month")
	if err != nil {
		return dto.TransactionFilters{}, err
	}
	year, err := requiredInt(q.Get("year"), "year")
	if err != nil {
		return dto.TransactionFilters{}, err
	}

	query := transactionListQuery{Month: month, Year: year}
	if v := q.Get("bankAccountId"); v != "" {
		query.BankAccountID = &v
	}
	if v := q.Get("type"); v != "" {
		query.Type = &v
	}
	if err := validateStruct(query); err != nil {
		return dto.TransactionFilters{}, err
	}

	filters := dto.TransactionFilters{
		Month:         query.Month,
		Year:          query.Year,
		BankAccountID: query.BankAccountID,
	}
	if query.Type != nil {
		filters.Type = helpers.Ptr(models.TransactionType(*query.Type))
	}
	return filters, nil
}

func requiredInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, errs.NewValidationError(name + " is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidationError(name + " must be an integer")
	}
	return n, nil
}
