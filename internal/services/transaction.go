package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/helpers"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

type transactionTSStore interface {
	Create(ctx context.Context, uid string, tx *models.Transaction) error
	Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error)
	Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, uid, transactionID string) error
}

type transactionService struct {
	txs                  transactionTSStore
	bankAccountOwnership ownershipValidator
	categoryOwnership    ownershipValidator
	txOwnership          ownershipValidator
}

func NewTransactionService(
	txs transactionTSStore,
	bankAccountOwnership ownershipValidator,
	categoryOwnership ownershipValidator,
	txOwnership ownershipValidator,
) *transactionService {
	return &transactionService{
		txs:                  txs,
		bankAccountOwnership: bankAccountOwnership,
		categoryOwnership:    categoryOwnership,
		txOwnership:          txOwnership,
	}
}

func (s *transactionService) Create(ctx context.Context, uid string, req dto.CreateTransactionRequest) (*models.Transaction, error) {
	if err := s.validateEntitiesOwnership(ctx, ownedEntities{
		uid:           uid,
		bankAccountID: &req.BankAccountID,
		categoryID:    &req.CategoryID,
	}); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:            uuid.NewString(),
		UserID:        uid,
		BankAccountID: req.BankAccountID,
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Date:          req.Date.UTC(),
		Value:         req.Value,
		Type:          req.Type,
	}
	if err := s.txs.Create(ctx, uid, tx); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("transaction created", "transaction_id", tx.ID, "bank_account_id", tx.BankAccountID)
	return tx, nil
}

func (s *transactionService) FindAllByUserID(ctx context.Context, uid string, filters dto.TransactionFilters) ([]*models.Transaction, error) {
	from, to := monthRange(filters.Year, filters.Month)
	return s.txs.Query(ctx, uid, dto.TransactionQuery{
		BankAccountID: filters.BankAccountID,
		Type:          filters.Type,
		DateFrom:      from,
		DateTo:        to,
	})
}

func (s *transactionService) Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	if err := s.validateEntitiesOwnership(ctx, ownedEntities{
		uid:           uid,
		transactionID: &transactionID,
		bankAccountID: presentID(req.BankAccountID),
		categoryID:    presentID(req.CategoryID),
	}); err != nil {
		return nil, err
	}
	return s.txs.Update(ctx, uid, transactionID, req)
}

// presentID treats an empty id the same as an absent one.
func presentID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func (s *transactionService) Remove(ctx context.Context, uid, transactionID string) error {
	if err := s.validateEntitiesOwnership(ctx, ownedEntities{
		uid:           uid,
		transactionID: &transactionID,
	}); err != nil {
		return err
	}
	if err := s.txs.Delete(ctx, uid, transactionID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("transaction deleted", "transaction_id", transactionID)
	return nil
}

// ownedEntities lists the references an operation touches; nil means "not involved".
type ownedEntities struct {
	uid           string
	bankAccountID *string
	categoryID    *string
	transactionID *string
}

// validateEntitiesOwnership runs the checks for the present ids concurrently
// and returns the first failure. Nothing is written by any check, so a failure
// leaves no partial state behind.
func (s *transactionService) validateEntitiesOwnership(ctx context.Context, e ownedEntities) error {
	g, gctx := errgroup.WithContext(ctx)

	check := func(v ownershipValidator, id *string) {
		if id == nil {
			return
		}
		g.Go(func() error {
			return v.Validate(gctx, e.uid, *id)
		})
	}
	check(s.txOwnership, e.transactionID)
	check(s.bankAccountOwnership, e.bankAccountID)
	check(s.categoryOwnership, e.categoryID)

	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Debug("ownership validation failed",
			"transaction_id", helpers.Value(e.transactionID),
			"bank_account_id", helpers.Value(e.bankAccountID),
			"category_id", helpers.Value(e.categoryID),
			"error", err)
		return err
	}
	return nil
}

// monthRange returns the half-open UTC interval covering the zero-based month
// of year. time.Date normalises month overflow, so month 11 ends in January of
// the next year.
func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.Month(month+2), 1, 0, 0, 0, 0, time.UTC)
	return from, to
}
