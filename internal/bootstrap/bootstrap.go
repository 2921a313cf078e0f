package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/bookkeeping-backend/internal/config"
	"github.com/GregMSThompson/bookkeeping-backend/internal/store"
	"github.com/GregMSThompson/bookkeeping-backend/internal/store/sqlite"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	SQLite    *sql.DB
	Firebase  *auth.Client
	Stores    *store.Set
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	if err = cfg.Validate(); err != nil {
		return bs, err
	}

	bs.Stores, err = bs.initStores(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	bs.Log.Info("bootstrap complete", "store", cfg.StoreBackend)
	return bs, nil
}

func (bs *Bootstrap) initStores(ctx context.Context, cfg *config.Config) (*store.Set, error) {
	var err error
	switch cfg.StoreBackend {
	case config.StoreSQLite:
		bs.SQLite, err = InitSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqlite.NewSet(bs.SQLite), nil
	default:
		bs.Firestore, err = InitFirestore(ctx, cfg.ProjectID, cfg.FirestoreDatabase)
		if err != nil {
			return nil, err
		}
		return store.NewFirestoreSet(bs.Firestore), nil
	}
}

// Close releases whichever store client Run opened.
func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	if bs.SQLite != nil {
		errList = append(errList, bs.SQLite.Close())
	}
	return errors.Join(errList...)
}
