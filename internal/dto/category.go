package dto

import "github.com/GregMSThompson/bookkeeping-backend/internal/models"

type CreateCategoryRequest struct {
	Name string                 `json:"name" validate:"required"`
	Icon string                 `json:"icon" validate:"required"`
	Type models.TransactionType `json:"type" validate:"required,oneof=INCOME EXPENSE"`
}

type UpdateCategoryRequest struct {
	Name *string                 `json:"name,omitempty" validate:"omitempty,min=1"`
	Icon *string                 `json:"icon,omitempty" validate:"omitempty,min=1"`
	Type *models.TransactionType `json:"type,omitempty" validate:"omitempty,oneof=INCOME EXPENSE"`
}
