package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

type categoryCSStore interface {
	Create(ctx context.Context, uid string, category *models.Category) error
	List(ctx context.Context, uid string) ([]*models.Category, error)
	Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, uid, categoryID string) error
}

type categoryService struct {
	categories categoryCSStore
	ownership  ownershipValidator
}

func NewCategoryService(categories categoryCSStore, ownership ownershipValidator) *categoryService {
	return &categoryService{categories: categories, ownership: ownership}
}

func (s *categoryService) Create(ctx context.Context, uid string, req dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		ID:     uuid.NewString(),
		UserID: uid,
		Name:   req.Name,
		Icon:   req.Icon,
		Type:   req.Type,
	}
	if err := s.categories.Create(ctx, uid, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) FindAllByUserID(ctx context.Context, uid string) ([]*models.Category, error) {
	return s.categories.List(ctx, uid)
}

func (s *categoryService) Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.ownership.Validate(ctx, uid, categoryID); err != nil {
		return nil, err
	}
	return s.categories.Update(ctx, uid, categoryID, req)
}

func (s *categoryService) Remove(ctx context.Context, uid, categoryID string) error {
	if err := s.ownership.Validate(ctx, uid, categoryID); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, uid, categoryID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("category deleted", "category_id", categoryID)
	return nil
}
