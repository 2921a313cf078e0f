package dto

import "github.com/GregMSThompson/bookkeeping-backend/internal/models"

type CreateBankAccountRequest struct {
	Name           string                 `json:"name" validate:"required"`
	Color          string                 `json:"color" validate:"required,hexcolor"`
	Type           models.BankAccountType `json:"type" validate:"required,oneof=CHECKING INVESTMENT CASH"`
	InitialBalance float64                `json:"initialBalance"`
}

// UpdateBankAccountRequest carries a partial update; nil fields are left untouched.
type UpdateBankAccountRequest struct {
	Name           *string                 `json:"name,omitempty" validate:"omitempty,min=1"`
	Color          *string                 `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Type           *models.BankAccountType `json:"type,omitempty" validate:"omitempty,oneof=CHECKING INVESTMENT CASH"`
	InitialBalance *float64                `json:"initialBalance,omitempty"`
}
