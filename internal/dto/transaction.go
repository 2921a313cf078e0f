package dto

import (
	"time"

	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type CreateTransactionRequest struct {
	BankAccountID string                 `json:"bankAccountId" validate:"required,uuid"`
	CategoryID    string                 `json:"categoryId" validate:"required,uuid"`
	Name          string                 `json:"name" validate:"required"`
	Date          time.Time              `json:"date" validate:"required"`
	Value         float64                `json:"value" validate:"gt=0"`
	Type          models.TransactionType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

// UpdateTransactionRequest carries a partial update. BankAccountID and
// CategoryID are only checked for ownership; the stored references are not moved.
// An empty id is treated as absent and skips its check.
type UpdateTransactionRequest struct {
	BankAccountID *string                 `json:"bankAccountId,omitempty" validate:"omitempty,uuid"`
	CategoryID    *string                 `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Name          *string                 `json:"name,omitempty" validate:"omitempty,min=1"`
	Date          *time.Time              `json:"date,omitempty"`
	Value         *float64                `json:"value,omitempty" validate:"omitempty,gt=0"`
	Type          *models.TransactionType `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE"`
}

// TransactionFilters selects a calendar month (zero-based Month) of a user's
// transactions, optionally narrowed by bank account and type.
type TransactionFilters struct {
	Month         int
	Year          int
	BankAccountID *string
	Type          *models.TransactionType
}

// TransactionQuery is the store-level form of TransactionFilters: a half-open
// [DateFrom, DateTo) range plus optional equality filters.
type TransactionQuery struct {
	BankAccountID *string
	Type          *models.TransactionType
	DateFrom      time.Time
	DateTo        time.Time
}
