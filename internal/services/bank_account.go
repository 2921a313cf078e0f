package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

// ownershipValidator is satisfied by the three *OwnershipValidator types.
type ownershipValidator interface {
	Validate(ctx context.Context, uid, id string) error
}

type bankAccountBAStore interface {
	Create(ctx context.Context, uid string, account *models.BankAccount) error
	ListWithTransactions(ctx context.Context, uid string) ([]models.BankAccountWithTransactions, error)
	Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error)
	Delete(ctx context.Context, uid, bankAccountID string) error
}

type bankAccountService struct {
	accounts  bankAccountBAStore
	ownership ownershipValidator
}

func NewBankAccountService(accounts bankAccountBAStore, ownership ownershipValidator) *bankAccountService {
	return &bankAccountService{
		accounts:  accounts,
		ownership: ownership,
	}
}

// Create needs no ownership check: the new account belongs to uid by construction.
func (s *bankAccountService) Create(ctx context.Context, uid string, req dto.CreateBankAccountRequest) (*models.BankAccount, error) {
	account := &models.BankAccount{
		ID:             uuid.NewString(),
		UserID:         uid,
		Name:           req.Name,
		Color:          req.Color,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
	}
	if err := s.accounts.Create(ctx, uid, account); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("bank account created", "bank_account_id", account.ID)
	return account, nil
}

// FindAllByUserID lists the user's accounts in store order, each with its
// derived CurrentBalance.
func (s *bankAccountService) FindAllByUserID(ctx context.Context, uid string) ([]models.BankAccountWithBalance, error) {
	accounts, err := s.accounts.ListWithTransactions(ctx, uid)
	if err != nil {
		return nil, err
	}

	result := make([]models.BankAccountWithBalance, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, models.BankAccountWithBalance{
			BankAccount:    a.BankAccount,
			CurrentBalance: currentBalance(a.InitialBalance, a.Transactions),
			Transactions:   a.Transactions,
		})
	}

	if logger.IsDebugEnabled(ctx) {
		logger.FromContext(ctx).Debug("bank accounts listed", "count", len(result))
	}
	return result, nil
}

func (s *bankAccountService) Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error) {
	if err := s.ownership.Validate(ctx, uid, bankAccountID); err != nil {
		return nil, err
	}
	return s.accounts.Update(ctx, uid, bankAccountID, req)
}

// Remove deletes the account. Cleaning up its transactions is the store's job.
func (s *bankAccountService) Remove(ctx context.Context, uid, bankAccountID string) error {
	if err := s.ownership.Validate(ctx, uid, bankAccountID); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, uid, bankAccountID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("bank account deleted", "bank_account_id", bankAccountID)
	return nil
}

// currentBalance is initial plus income minus expenses. Sums are taken in
// decimal so repeated float additions do not drift.
func currentBalance(initial float64, txs []models.TransactionAmount) float64 {
	total := decimal.NewFromFloat(initial)
	for _, t := range txs {
		v := decimal.NewFromFloat(t.Value)
		if t.Type == models.TransactionIncome {
			total = total.Add(v)
		} else {
			total = total.Sub(v)
		}
	}
	balance, _ := total.Float64()
	return balance
}
