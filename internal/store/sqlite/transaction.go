package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

const transactionColumns = "id, user_id, bank_account_id, category_id, name, date, value, type, created_at, updated_at"

type transactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *transactionStore {
	return &transactionStore{db: db}
}

func scanTransaction(row scanner, t *models.Transaction) error {
	var (
		categoryID             sql.NullString
		date, created, updated int64
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.BankAccountID, &categoryID, &t.Name, &date, &t.Value, &t.Type, &created, &updated); err != nil {
		return err
	}
	t.CategoryID = categoryID.String
	t.Date = fromUnix(date)
	t.CreatedAt = fromUnix(created)
	t.UpdatedAt = fromUnix(updated)
	return nil
}

func (s *transactionStore) Create(ctx context.Context, uid string, tx *models.Transaction) error {
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	tx.UserID = uid
	tx.Date = tx.Date.UTC()

	var categoryID sql.NullString
	if tx.CategoryID != "" {
		categoryID = sql.NullString{String: tx.CategoryID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions ("+transactionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, uid, tx.BankAccountID, categoryID, tx.Name, toUnix(tx.Date), tx.Value, tx.Type,
		toUnix(tx.CreatedAt), toUnix(tx.UpdatedAt),
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create transaction", err)
	}
	return nil
}

func (s *transactionStore) Get(ctx context.Context, uid, transactionID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		transactionID, uid,
	)
	var t models.Transaction
	if err := scanTransaction(row, &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("transaction not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get transaction", err)
	}
	return &t, nil
}

// Query returns the user's transactions dated within [q.DateFrom, q.DateTo).
func (s *transactionStore) Query(ctx context.Context, uid string, q dto.TransactionQuery) ([]*models.Transaction, error) {
	where := []string{"user_id = ?", "date >= ?", "date < ?"}
	args := []any{uid, toUnix(q.DateFrom), toUnix(q.DateTo)}
	if q.BankAccountID != nil {
		where = append(where, "bank_account_id = ?")
		args = append(args, *q.BankAccountID)
	}
	if q.Type != nil {
		where = append(where, "type = ?")
		args = append(args, string(*q.Type))
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE "+strings.Join(where, " AND ")+" ORDER BY date",
		args...,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query transactions", err)
	}
	defer rows.Close()

	txs := []*models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := scanTransaction(rows, &t); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to scan transaction", err)
		}
		txs = append(txs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to query transactions", err)
	}
	return txs, nil
}

// Update writes date, name, type and value only; references are never moved.
func (s *transactionStore) Update(ctx context.Context, uid, transactionID string, req dto.UpdateTransactionRequest) (*models.Transaction, error) {
	var set updateSet
	set.add("updated_at", toUnix(time.Now()))
	if req.Date != nil {
		set.add("date", toUnix(*req.Date))
	}
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Type != nil {
		set.add("type", string(*req.Type))
	}
	if req.Value != nil {
		set.add("value", *req.Value)
	}

	query := "UPDATE transactions SET " + strings.Join(set.clauses, ", ") + " WHERE id = ? AND user_id = ?"
	args := append(set.args, transactionID, uid)
	if err := exec(ctx, s.db, "update", "transaction not found", query, args...); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid, transactionID)
}

func (s *transactionStore) Delete(ctx context.Context, uid, transactionID string) error {
	return exec(ctx, s.db, "delete", "transaction not found",
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", transactionID, uid)
}
