package store

import (
	"context"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

// Get methods scope the lookup to uid and return *errs.NotFoundError when no
// record matches both the id and the owner.

type BankAccountStore interface {
	Create(ctx context.Context, uid string, account *models.BankAccount) error
	Get(ctx context.Context, uid, bankAccountID string) (*models.BankAccount, error)
	ListWithTransactions(ctx context.Context, uid string) ([]models.BankAccountWithTransactions, error)
	Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error)
	// Delete removes the account and every transaction that references it.
	Delete(ctx context.Context, uid, bankAccountID string) error
}

type CategoryStore interface {
	Create(ctx context.Context, uid string, category *models.Category) error
	Get(ctx context.Context, uid, categoryID string) (*models.Category, error)
	List(ctx context.Context, uid string) ([]*models.Category, error)
	Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error)
	// Delete removes the category and clears it from dependent transactions.
	Delete(ctx context.Context, uid, categoryID string) error
}

type TransactionStore interface {
	Create(ctx context.Context, uid string, tx *models.Transaction) error
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
	Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error)
	Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, uid, transactionID string) error
}

type UserStore interface {
	// CreateUser stores the user with its starting categories as one write.
	CreateUser(ctx context.Context, user *models.User, categories []*models.Category) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// Set groups one implementation of every store so the backend can be chosen at start-up.
type Set struct {
	BankAccounts BankAccountStore
	Categories   CategoryStore
	Transactions TransactionStore
	Users        UserStore
}
