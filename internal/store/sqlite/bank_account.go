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

const bankAccountColumns = "id, user_id, name, color, type, initial_balance, created_at, updated_at"

type bankAccountStore struct {
	db *sql.DB
}

func NewBankAccountStore(db *sql.DB) *bankAccountStore {
	return &bankAccountStore{db: db}
}

func scanBankAccount(row scanner, a *models.BankAccount) error {
	var created, updated int64
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Color, &a.Type, &a.InitialBalance, &created, &updated); err != nil {
		return err
	}
	a.CreatedAt = fromUnix(created)
	a.UpdatedAt = fromUnix(updated)
	return nil
}

func (s *bankAccountStore) Create(ctx context.Context, uid string, account *models.BankAccount) error {
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	account.UserID = uid

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO bank_accounts ("+bankAccountColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		account.ID, uid, account.Name, account.Color, account.Type, account.InitialBalance,
		toUnix(account.CreatedAt), toUnix(account.UpdatedAt),
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create bank account", err)
	}
	return nil
}

func (s *bankAccountStore) Get(ctx context.Context, uid, bankAccountID string) (*models.BankAccount, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bankAccountColumns+" FROM bank_accounts WHERE id = ? AND user_id = ?",
		bankAccountID, uid,
	)
	var a models.BankAccount
	if err := scanBankAccount(row, &a); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("bank account not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get bank account", err)
	}
	return &a, nil
}

func (s *bankAccountStore) ListWithTransactions(ctx context.Context, uid string) ([]models.BankAccountWithTransactions, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.name, b.color, b.type, b.initial_balance, b.created_at, b.updated_at,
		       t.value, t.type
		FROM bank_accounts b
		LEFT JOIN transactions t ON t.bank_account_id = b.id
		WHERE b.user_id = ?
		ORDER BY b.created_at, b.id`,
		uid,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list bank accounts", err)
	}
	defer rows.Close()

	accounts := []models.BankAccountWithTransactions{}
	for rows.Next() {
		var (
			a                models.BankAccount
			created, updated int64
			txValue          sql.NullFloat64
			txType           sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Color, &a.Type, &a.InitialBalance, &created, &updated, &txValue, &txType); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to scan bank account", err)
		}

		// rows arrive grouped by account
		if n := len(accounts); n == 0 || accounts[n-1].ID != a.ID {
			a.CreatedAt = fromUnix(created)
			a.UpdatedAt = fromUnix(updated)
			accounts = append(accounts, models.BankAccountWithTransactions{
				BankAccount:  a,
				Transactions: []models.TransactionAmount{},
			})
		}
		if txType.Valid {
			last := &accounts[len(accounts)-1]
			last.Transactions = append(last.Transactions, models.TransactionAmount{
				Value: txValue.Float64,
				Type:  models.TransactionType(txType.String),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list bank accounts", err)
	}
	return accounts, nil
}

func (s *bankAccountStore) Update(ctx context.Context, uid, bankAccountID string, req dto.UpdateBankAccountRequest) (*models.BankAccount, error) {
	var set updateSet
	set.add("updated_at", toUnix(time.Now()))
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Color != nil {
		set.add("color", *req.Color)
	}
	if req.Type != nil {
		set.add("type", string(*req.Type))
	}
	if req.InitialBalance != nil {
		set.add("initial_balance", *req.InitialBalance)
	}

	query := "UPDATE bank_accounts SET " + strings.Join(set.clauses, ", ") + " WHERE id = ? AND user_id = ?"
	args := append(set.args, bankAccountID, uid)
	if err := exec(ctx, s.db, "update", "bank account not found", query, args...); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid, bankAccountID)
}

// Delete relies on ON DELETE CASCADE to remove the account's transactions.
func (s *bankAccountStore) Delete(ctx context.Context, uid, bankAccountID string) error {
	return exec(ctx, s.db, "delete", "bank account not found",
		"DELETE FROM bank_accounts WHERE id = ? AND user_id = ?", bankAccountID, uid)
}
