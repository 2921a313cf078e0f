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

type transactionStore struct {
	client *firestore.Client
}

func NewTransactionStore(client *firestore.Client) *transactionStore {
	return &transactionStore{client: client}
}

func (s *transactionStore) collection(uid string) *firestore.CollectionRef {
	return userCollection(s.client, uid, transactionsCollection)
}

func (s *transactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	now := time.Now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	tx.UserID = uid
	tx.Date = tx.Date.UTC()
	if _, err := s.collection(uid).Doc(tx.ID).Create(ctx, tx); err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	doc, err := s.collection(uid).Doc(transactionID).Get(ctx)
	if err != nil {
		return nil, readError(err, "transaction not found")
	}
	var t models.Transaction
	if err := doc.DataTo(&t); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
	}
	return &t, nil
}

// Query returns the user's transactions dated within [q.DateFrom, q.DateTo).
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	query := s.collection(uid).
		Where("date", ">=", q.DateFrom.UTC()).
		Where("date", "<", q.DateTo.UTC())
	if q.BankAccountID != nil {
		query = query.Where("bankAccountId", "==", *q.BankAccountID)
	}
	if q.Type != nil {
		query = query.Where("type", "==", string(*q.Type))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	txs := []*models.Transaction{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to query transactions", err)
		}
		var t models.Transaction
		if err := doc.DataTo(&t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse transaction data", err)
		}
		txs = append(txs, &t)
	}
	return txs, nil
}

// Update writes date, name, type and value only; references are never moved.
func (s *transactionStore) Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now()}}
	if req.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: req.Date.UTC()})
	}
	if req.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *req.Name})
	}
	if req.Type != nil {
		updates = append(updates, firestore.Update{Path: "type", Value: *req.Type})
	}
	if req.Value != nil {
		updates = append(updates, firestore.Update{Path: "value", Value: *req.Value})
	}

	if _, err := s.collection(uid).Doc(transactionID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("update", "failed to update transaction", err)
	}
	return s.Get(ctx, uid, transactionID)
}

func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	if _, err := s.collection(uid).Doc(transactionID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete transaction", err)
	}
	return nil
}
