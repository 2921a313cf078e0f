package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type bankAccountStore struct {
	client *firestore.Client
}

func NewBankAccountStore(client *firestore.Client) *bankAccountStore {
	return &bankAccountStore{client: client}
}

func (s *bankAccountStore) collection(uid string) *firestore.CollectionRef {
	return userCollection(s.client, uid, bankAccountsCollection)
}

func (s *bankAccountStore) Create(ctx context.Context, uid string, account *models.BankAccount) error {
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	account.UserID = uid
	if _, err := s.collection(uid).Doc(account.ID).Create(ctx, account); err != nil {
		return errs.NewDatabaseError("create", "failed to create bank account", err)
	}
	return nil
}

func (s *bankAccountStore) Get(ctx context.Context, uid, bankAccountID string) (*models.BankAccount, error) {
	doc, err := s.collection(uid).Doc(bankAccountID).Get(ctx)
	if err != nil {
		return nil, readError(err, "bank account not found")
	}
	var a models.BankAccount
	if err := doc.DataTo(&a); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse bank account data", err)
	}
	return &a, nil
}

// transactionAmountDoc is the projection read by ListWithTransactions.
type transactionAmountDoc struct {
	BankAccountID string                 `firestore:"bankAccountId"`
	Value         float64                `firestore:"value"`
	Type          models.TransactionType `firestore:"type"`
}

func (s *bankAccountStore) ListWithTransactions(ctx context.Context, uid string) ([]models.BankAccountWithTransactions, error) {
	docs, err := s.collection(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list bank accounts", err)
	}

	accounts := make([]models.BankAccountWithTransactions, 0, len(docs))
	index := make(map[string]int, len(docs))
	for _, d := range docs {
		var a models.BankAccount
		if err := d.DataTo(&a); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse bank account data", err)
		}
		index[a.ID] = len(accounts)
		accounts = append(accounts, models.BankAccountWithTransactions{
			BankAccount:  a,
			Transactions: []models.TransactionAmount{},
		})
	}
	if len(accounts) == 0 {
		return accounts, nil
	}

	iter := userCollection(s.client, uid, transactionsCollection).
		Select("bankAccountId", "value", "type").
		Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list bank account transactions", err)
		}
		var t transactionAmountDoc
		if err := doc.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		i, ok := index[t.BankAccountID]
		if !ok {
			continue
		}
		accounts[i].Transactions = append(accounts[i].Transactions, models.TransactionAmount{
			Value: t.Value,
			Type:  t.Type,
		})
	}

	return accounts, nil
}

func (s *bankAccountStore) Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error) {
	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now()}}
	if req.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *req.Name})
	}
	if req.Color != nil {
		updates = append(updates, firestore.Update{Path: "color", Value: *req.Color})
	}
	if req.Type != nil {
		updates = append(updates, firestore.Update{Path: "type", Value: *req.Type})
	}
	if req.InitialBalance != nil {
		updates = append(updates, firestore.Update{Path: "initialBalance", Value: *req.InitialBalance})
	}

	if _, err := s.collection(uid).Doc(bankAccountID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("bank account not found")
		}
		return nil, errs.NewDatabaseError("update", "failed to update bank account", err)
	}
	return s.Get(ctx, uid, bankAccountID)
}

func (s *bankAccountStore) Delete(ctx context.Context, uid, bankAccountID string) error {
	txs := userCollection(s.client, uid, transactionsCollection).Where("bankAccountId", "==", bankAccountID)
	if err := deleteByQuery(ctx, s.client, txs); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete bank account transactions", err)
	}
	if _, err := s.collection(uid).Doc(bankAccountID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete bank account", err)
	}
	return nil
}
