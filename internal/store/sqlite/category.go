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

const categoryColumns = "id, user_id, name, icon, type, created_at, updated_at"

type categoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *categoryStore {
	return &categoryStore{db: db}
}

func scanCategory(row scanner, c *models.Category) error {
	var created, updated int64
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Type, &created, &updated); err != nil {
		return err
	}
	c.CreatedAt = fromUnix(created)
	c.UpdatedAt = fromUnix(updated)
	return nil
}

func (s *categoryStore) Create(ctx context.Context, uid string, category *models.Category) error {
	if err := insertCategory(ctx, s.db, uid, category); err != nil {
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertCategory(ctx context.Context, db execer, uid string, category *models.Category) error {
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	category.UserID = uid

	_, err := db.ExecContext(ctx,
		"INSERT INTO categories ("+categoryColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		category.ID, uid, category.Name, category.Icon, category.Type,
		toUnix(category.CreatedAt), toUnix(category.UpdatedAt),
	)
	return err
}

func (s *categoryStore) Get(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = ? AND user_id = ?",
		categoryID, uid,
	)
	var c models.Category
	if err := scanCategory(row, &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get category", err)
	}
	return &c, nil
}

func (s *categoryStore) List(ctx context.Context, uid string) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE user_id = ? ORDER BY name",
		uid,
	)
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		var c models.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to scan category", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	return categories, nil
}

func (s *categoryStore) Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	var set updateSet
	set.add("updated_at", toUnix(time.Now()))
	if req.Name != nil {
		set.add("name", *req.Name)
	}
	if req.Icon != nil {
		set.add("icon", *req.Icon)
	}
	if req.Type != nil {
		set.add("type", string(*req.Type))
	}

	query := "UPDATE categories SET " + strings.Join(set.clauses, ", ") + " WHERE id = ? AND user_id = ?"
	args := append(set.args, categoryID, uid)
	if err := exec(ctx, s.db, "update", "category not found", query, args...); err != nil {
		return nil, err
	}
	return s.Get(ctx, uid, categoryID)
}

// Delete relies on ON DELETE SET NULL to detach dependent transactions.
func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	return exec(ctx, s.db, "delete", "category not found",
		"DELETE FROM categories WHERE id = ? AND user_id = ?", categoryID, uid)
}
