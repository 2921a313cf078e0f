package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User, categories []*models.Category) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// defaultCategories are seeded for every new user.
var defaultCategories = []struct {
	name string
	icon string
	typ  models.TransactionType
}{
	{"Salary", "salary", models.TransactionIncome},
	{"Freelance", "freelance", models.TransactionIncome},
	{"Other", "other", models.TransactionIncome},
	{"Home", "home", models.TransactionExpense},
	{"Food", "food", models.TransactionExpense},
	{"Education", "education", models.TransactionExpense},
	{"Leisure", "fun", models.TransactionExpense},
	{"Groceries", "grocery", models.TransactionExpense},
	{"Clothing", "clothes", models.TransactionExpense},
	{"Transport", "transport", models.TransactionExpense},
	{"Travel", "travel", models.TransactionExpense},
	{"Other", "other", models.TransactionExpense},
}

type userService struct {
	Store    userUSStore
	clockNow func() time.Time
}

func NewUserService(store userUSStore) *userService {
	return &userService{
		Store:    store,
		clockNow: time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, uid, email, first, last string) error {
	// Get logger from context - already has uid, request_id, method, path
	log := logger.FromContext(ctx)

	now := s.clockNow()
	user := models.NewUser(uid, email, first, last, now)

	categories := make([]*models.Category, 0, len(defaultCategories))
	for _, c := range defaultCategories {
		categories = append(categories, &models.Category{
			ID:        uuid.NewString(),
			UserID:    uid,
			Name:      c.name,
			Icon:      c.icon,
			Type:      c.typ,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	// the user and its categories are written together so a failure leaves neither
	if err := s.Store.CreateUser(ctx, user, categories); err != nil {
		log.Error("failed to create user in store", "error", err)
		return err
	}

	log.Info("user created successfully", "name", user.DisplayName(), "categories", len(categories))
	log.Debug("user created with full details", "user", user)

	return nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Store.GetUser(ctx, uid)
}
