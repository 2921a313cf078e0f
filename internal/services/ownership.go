package services

import (
	"context"
	"errors"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

// Ownership validators gate every mutating or cross-referencing operation.
// Each one fails with *errs.NotFoundError unless a record of its kind matches
// both the id and the acting user. They only read, so they are safe to run
// concurrently.

const (
	bankAccountNotFound = "Bank account not found"
	categoryNotFound    = "Category not found"
	transactionNotFound = "Transaction not found"
)

type bankAccountOwnerStore interface {
	Get(ctx context.Context, uid, bankAccountID string) (*models.BankAccount, error)
}

type categoryOwnerStore interface {
	Get(ctx context.Context, uid, categoryID string) (*models.Category, error)
}

type transactionOwnerStore interface {
	Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error)
}

type bankAccountOwnershipValidator struct {
	accounts bankAccountOwnerStore
}

func NewBankAccountOwnershipValidator(accounts bankAccountOwnerStore) *bankAccountOwnershipValidator {
	return &bankAccountOwnershipValidator{accounts: accounts}
}

func (v *bankAccountOwnershipValidator) Validate(ctx context.Context, uid, bankAccountID string) error {
	if bankAccountID == "" {
		return errs.NewNotFoundError(bankAccountNotFound)
	}
	_, err := v.accounts.Get(ctx, uid, bankAccountID)
	return ownershipError(err, bankAccountNotFound)
}

type categoryOwnershipValidator struct {
	categories categoryOwnerStore
}

func NewCategoryOwnershipValidator(categories categoryOwnerStore) *categoryOwnershipValidator {
	return &categoryOwnershipValidator{categories: categories}
}

func (v *categoryOwnershipValidator) Validate(ctx context.Context, uid, categoryID string) error {
	if categoryID == "" {
		return errs.NewNotFoundError(categoryNotFound)
	}
	_, err := v.categories.Get(ctx, uid, categoryID)
	return ownershipError(err, categoryNotFound)
}

type transactionOwnershipValidator struct {
	txs transactionOwnerStore
}

func NewTransactionOwnershipValidator(txs transactionOwnerStore) *transactionOwnershipValidator {
	return &transactionOwnershipValidator{txs: txs}
}

func (v *transactionOwnershipValidator) Validate(ctx context.Context, uid, transactionID string) error {
	if transactionID == "" {
		return errs.NewNotFoundError(transactionNotFound)
	}
	_, err := v.txs.Get(ctx, uid, transactionID)
	return ownershipError(err, transactionNotFound)
}

// ownershipError replaces a store miss with the validator's own message and
// passes every other failure through untouched.
func ownershipError(err error, message string) error {
	if err == nil {
		return nil
	}
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return errs.NewNotFoundError(message)
	}
	return err
}
