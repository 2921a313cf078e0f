package bootstrap

import (
	"context"
	"database/sql"

	"github.com/GregMSThompson/bookkeeping-backend/internal/store/sqlite"
)

func InitSQLite(ctx context.Context, path string) (*sql.DB, error) {
	return sqlite.Open(ctx, path)
}
