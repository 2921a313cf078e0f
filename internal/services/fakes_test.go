package services

import (
	"context"
	"sync"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

// fakeValidator records the ids it was asked about and fails for those in deny.
type fakeValidator struct {
	mu    sync.Mutex
	deny  map[string]error
	calls []string
}

func (f *fakeValidator) Validate(_ context.Context, uid, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, uid+":"+id)
	return f.deny[id]
}

func (f *fakeValidator) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeBankAccountStore struct {
	created   []*models.BankAccount
	createErr error
	list      []models.BankAccountWithTransactions
	listErr   error
	updated   []string
	updateRes *models.BankAccount
	deleted   []string
	deleteErr error
}

func (f *fakeBankAccountStore) Create(_ context.Context, uid string, account *models.BankAccount) error {
	f.created = append(f.created, account)
	return f.createErr
}

func (f *fakeBankAccountStore) Get(_ context.Context, uid, bankAccountID string) (*models.BankAccount, error) {
	for _, a := range f.list {
		if a.ID == bankAccountID && a.UserID == uid {
			acc := a.BankAccount
			return &acc, nil
		}
	}
	return nil, errs.NewNotFoundError("bank account not found")
}

func (f *fakeBankAccountStore) ListWithTransactions(_ context.Context, uid string) ([]models.BankAccountWithTransactions, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeBankAccountStore) Update(_ context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error) {
	f.updated = append(f.updated, uid+":"+bankAccountID)
	return f.updateRes, nil
}

func (f *fakeBankAccountStore) Delete(_ context.Context, uid, bankAccountID string) error {
	f.deleted = append(f.deleted, uid+":"+bankAccountID)
	return f.deleteErr
}

type fakeTransactionStore struct {
	created   []*models.Transaction
	lastUID   string
	lastQuery dto.TransactionQuery
	queryRes  []*models.Transaction
	updated   []dto.UpdateTransactionRequest
	deleted   []string
}

func (f *fakeTransactionStore) Create(_ context.Context, uid string, tx *models.Transaction) error {
	f.created = append(f.created, tx)
	return nil
}

func (f *fakeTransactionStore) Query(_ context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	f.lastUID = uid
	f.lastQuery = q
	return f.queryRes, nil
}

func (f *fakeTransactionStore) Update(_ context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	f.updated = append(f.updated, req)
	return &models.Transaction{ID: transactionID, UserID: uid}, nil
}

func (f *fakeTransactionStore) Delete(_ context.Context, uid, transactionID string) error {
	f.deleted = append(f.deleted, uid+":"+transactionID)
	return nil
}

func (f *fakeTransactionStore) writes() int {
	return len(f.created) + len(f.updated) + len(f.deleted)
}
