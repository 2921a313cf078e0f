package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTransactionQueryWithEmulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	store := NewTransactionStore(client)
	uid := "user-" + time.Now().Format("150405.000000")

	txs := []*models.Transaction{
		{ID: "t1", BankAccountID: "b1", CategoryID: "c1", Name: "Coffee", Value: 3, Type: models.TransactionExpense,
			Date: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", BankAccountID: "b1", CategoryID: "c1", Name: "Rent", Value: 900, Type: models.TransactionExpense,
			Date: time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t3", BankAccountID: "b1", CategoryID: "c1", Name: "Leap day", Value: 12, Type: models.TransactionExpense,
			Date: time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)},
	}
	for _, tx := range txs {
		if err := store.Create(ctx, uid, tx); err != nil {
			t.Fatalf("seed transaction error: %v", err)
		}
	}

	results, err := store.Query(ctx, uid, dto.TransactionQuery{
		DateFrom: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "t1" {
		t.Fatalf("unexpected transaction: %s", results[0].ID)
	}
}

func TestBankAccountListAndDeleteWithEmulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	accounts := NewBankAccountStore(client)
	txStore := NewTransactionStore(client)
	uid := "user-" + time.Now().Format("150405.000000")

	if err := accounts.Create(ctx, uid, &models.BankAccount{ID: "b1", Name: "Main", Color: "#000000", Type: models.BankAccountChecking, InitialBalance: 100}); err != nil {
		t.Fatalf("create account: %v", err)
	}
	for i, tx := range []*models.Transaction{
		{ID: "t1", BankAccountID: "b1", Value: 50, Type: models.TransactionIncome, Date: time.Now()},
		{ID: "t2", BankAccountID: "b1", Value: 30, Type: models.TransactionExpense, Date: time.Now()},
	} {
		if err := txStore.Create(ctx, uid, tx); err != nil {
			t.Fatalf("create transaction %d: %v", i, err)
		}
	}

	list, err := accounts.ListWithTransactions(ctx, uid)
	if err != nil {
		t.Fatalf("ListWithTransactions: %v", err)
	}
	if len(list) != 1 || len(list[0].Transactions) != 2 {
		t.Fatalf("unexpected listing: %#v", list)
	}

	if err := accounts.Delete(ctx, uid, "b1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var nf *errs.NotFoundError
	if _, err := txStore.Get(ctx, uid, "t1"); !errors.As(err, &nf) {
		t.Fatalf("transaction not cascaded: %v", err)
	}
}
