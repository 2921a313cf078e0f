package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type userStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *userStore {
	return &userStore{db: db}
}

// CreateUser inserts the user and its starting categories in one transaction.
// A duplicate uid or any failed category insert leaves nothing behind.
func (s *userStore) CreateUser(ctx context.Context, user *models.User, categories []*models.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to begin user transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO users (uid, email, first_name, last_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (uid) DO NOTHING`,
		user.UID, user.Email, user.FirstName, user.LastName,
		toUnix(user.CreatedAt), toUnix(user.UpdatedAt),
	)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NewAlreadyExistsError("user already exists")
	}

	for _, c := range categories {
		if err := insertCategory(ctx, tx, user.UID, c); err != nil {
			return errs.NewDatabaseError("create", "failed to seed category "+c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errs.NewDatabaseError("create", "failed to commit user", err)
	}
	return nil
}

func (s *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT uid, email, first_name, last_name, created_at, updated_at FROM users WHERE uid = ?",
		uid,
	).Scan(&user.UID, &user.Email, &user.FirstName, &user.LastName, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get user", err)
	}
	user.CreatedAt = fromUnix(created)
	user.UpdatedAt = fromUnix(updated)
	return &user, nil
}

