package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
	"github.com/GregMSThompson/bookkeeping-backend/pkg/helpers"
)

type transactionFixture struct {
	store       *fakeTransactionStore
	bankAccount *fakeValidator
	category    *fakeValidator
	tx          *fakeValidator
}

func newTransactionFixture() *transactionFixture {
	return &transactionFixture{
		store:       &fakeTransactionStore{},
		bankAccount: &fakeValidator{deny: map[string]error{}},
		category:    &fakeValidator{deny: map[string]error{}},
		tx:          &fakeValidator{deny: map[string]error{}},
	}
}

func (f *transactionFixture) service() *transactionService {
	return NewTransactionService(f.store, f.bankAccount, f.category, f.tx)
}

func createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		BankAccountID: "acc-1",
		CategoryID:    "cat-1",
		Name:          "Groceries",
		Date:          time.Date(2024, 3, 15, 12, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
		Value:         42.5,
		Type:          models.TransactionExpense,
	}
}

func TestTransactionServiceCreate(t *testing.T) {
	f := newTransactionFixture()

	got, err := f.service().Create(helpers.TestCtx(), "user-a", createRequest())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.ID == "" || got.UserID != "user-a" {
		t.Fatalf("unexpected identifiers: %+v", got)
	}
	if got.Date.Location() != time.UTC || !got.Date.Equal(time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)) {
		t.Fatalf("Date not normalised to UTC: %v", got.Date)
	}
	if len(f.store.created) != 1 || f.store.created[0] != got {
		t.Fatalf("store did not receive transaction")
	}
	if calls := f.bankAccount.called(); len(calls) != 1 || calls[0] != "user-a:acc-1" {
		t.Fatalf("bank account validator calls = %v", calls)
	}
	if calls := f.category.called(); len(calls) != 1 || calls[0] != "user-a:cat-1" {
		t.Fatalf("category validator calls = %v", calls)
	}
	if calls := f.tx.called(); len(calls) != 0 {
		t.Fatalf("transaction validator should not run on create, got %v", calls)
	}
}

func TestTransactionServiceCreateRejectsForeignReferences(t *testing.T) {
	tests := []struct {
		name    string
		deny    func(f *transactionFixture)
		message string
	}{
		{
			name: "foreign bank account",
			deny: func(f *transactionFixture) {
				f.bankAccount.deny["acc-1"] = errs.NewNotFoundError("Bank account not found")
			},
			message: "Bank account not found",
		},
		{
			name: "foreign category",
			deny: func(f *transactionFixture) {
				f.category.deny["cat-1"] = errs.NewNotFoundError("Category not found")
			},
			message: "Category not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransactionFixture()
			tt.deny(f)

			_, err := f.service().Create(helpers.TestCtx(), "user-a", createRequest())
			nf, ok := err.(*errs.NotFoundError)
			if !ok {
				t.Fatalf("error = %#v, want *errs.NotFoundError", err)
			}
			if nf.Message != tt.message {
				t.Fatalf("message = %q, want %q", nf.Message, tt.message)
			}
			if f.store.writes() != 0 {
				t.Fatalf("store written despite failed validation")
			}
		})
	}
}

// barrierValidator blocks until n callers have arrived, so a sequential
// caller would time out.
type barrierValidator struct {
	wg *sync.WaitGroup
}

func (b barrierValidator) Validate(ctx context.Context, _, _ string) error {
	b.wg.Done()
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(2 * time.Second):
		return errors.New("validators did not run concurrently")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestTransactionServiceValidatesConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(3)
	v := barrierValidator{wg: &wg}
	store := &fakeTransactionStore{}
	svc := NewTransactionService(store, v, v, v)

	_, err := svc.Update(helpers.TestCtx(), "user-a", "tx-1", dto.UpdateTransactionRequest{
		BankAccountID: helpers.Ptr("acc-1"),
		CategoryID:    helpers.Ptr("cat-1"),
		Name:          helpers.Ptr("Rent"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(store.updated) != 1 {
		t.Fatalf("expected 1 update, got %d", len(store.updated))
	}
}

func TestTransactionServiceUpdateRunsOnlyPresentChecks(t *testing.T) {
	f := newTransactionFixture()

	_, err := f.service().Update(helpers.TestCtx(), "user-a", "tx-1", dto.UpdateTransactionRequest{
		Value: helpers.Ptr(10.0),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if calls := f.tx.called(); len(calls) != 1 || calls[0] != "user-a:tx-1" {
		t.Fatalf("transaction validator calls = %v", calls)
	}
	if len(f.bankAccount.called()) != 0 || len(f.category.called()) != 0 {
		t.Fatalf("absent references were validated")
	}
	if len(f.store.updated) != 1 || *f.store.updated[0].Value != 10 {
		t.Fatalf("unexpected updates: %+v", f.store.updated)
	}
}

func TestTransactionServiceUpdateSkipsEmptyReferences(t *testing.T) {
	f := newTransactionFixture()
	f.bankAccount.deny[""] = errs.NewNotFoundError("Bank account not found")
	f.category.deny[""] = errs.NewNotFoundError("Category not found")

	_, err := f.service().Update(helpers.TestCtx(), "user-a", "tx-1", dto.UpdateTransactionRequest{
		BankAccountID: helpers.Ptr(""),
		CategoryID:    helpers.Ptr(""),
		Name:          helpers.Ptr("Rent"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(f.bankAccount.called()) != 0 || len(f.category.called()) != 0 {
		t.Fatalf("empty references were validated")
	}
	if len(f.store.updated) != 1 {
		t.Fatalf("updates = %d, want 1", len(f.store.updated))
	}
}

func TestTransactionServiceUpdateAndRemoveWriteNothingWhenNotOwned(t *testing.T) {
	f := newTransactionFixture()
	f.tx.deny["tx-1"] = errs.NewNotFoundError("Transaction not found")
	svc := f.service()
	ctx := helpers.TestCtx()

	if _, err := svc.Update(ctx, "user-b", "tx-1", dto.UpdateTransactionRequest{Name: helpers.Ptr("x")}); err == nil {
		t.Fatalf("expected Update to fail")
	}
	if err := svc.Remove(ctx, "user-b", "tx-1"); err == nil {
		t.Fatalf("expected Remove to fail")
	}
	if f.store.writes() != 0 {
		t.Fatalf("store written despite failed validation")
	}
}

func TestTransactionServiceUpdateRejectsForeignCategory(t *testing.T) {
	f := newTransactionFixture()
	f.category.deny["cat-b"] = errs.NewNotFoundError("Category not found")

	_, err := f.service().Update(helpers.TestCtx(), "user-a", "tx-1", dto.UpdateTransactionRequest{
		CategoryID: helpers.Ptr("cat-b"),
	})
	if err == nil {
		t.Fatalf("expected Update to fail")
	}
	if f.store.writes() != 0 {
		t.Fatalf("store written despite failed validation")
	}
}

func TestTransactionServiceRemove(t *testing.T) {
	f := newTransactionFixture()

	if err := f.service().Remove(helpers.TestCtx(), "user-a", "tx-1"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if len(f.store.deleted) != 1 || f.store.deleted[0] != "user-a:tx-1" {
		t.Fatalf("unexpected deletes: %v", f.store.deleted)
	}
}

func TestTransactionServiceFindAllBuildsMonthQuery(t *testing.T) {
	f := newTransactionFixture()
	bankAccountID := "acc-1"
	typ := models.TransactionIncome

	_, err := f.service().FindAllByUserID(helpers.TestCtx(), "user-a", dto.TransactionFilters{
		Month:         2,
		Year:          2024,
		BankAccountID: &bankAccountID,
		Type:          &typ,
	})
	if err != nil {
		t.Fatalf("FindAllByUserID returned error: %v", err)
	}

	q := f.store.lastQuery
	if f.store.lastUID != "user-a" {
		t.Fatalf("query uid = %q", f.store.lastUID)
	}
	if !q.DateFrom.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) || !q.DateTo.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("range = [%v, %v)", q.DateFrom, q.DateTo)
	}
	if q.BankAccountID == nil || *q.BankAccountID != "acc-1" || q.Type == nil || *q.Type != typ {
		t.Fatalf("filters not forwarded: %+v", q)
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   int
		in      []time.Time
		notIn   []time.Time
		wantMin time.Time
		wantMax time.Time
	}{
		{
			name:  "march 2024",
			year:  2024,
			month: 2,
			in: []time.Time{
				time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 31, 23, 59, 59, 999999999, time.UTC),
			},
			notIn: []time.Time{
				time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			},
			wantMin: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantMax: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "december rolls into next year",
			year:    2023,
			month:   11,
			in:      []time.Time{time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)},
			notIn:   []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
			wantMin: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantMax: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "january",
			year:    2024,
			month:   0,
			notIn:   []time.Time{time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)},
			wantMin: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantMax: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := monthRange(tt.year, tt.month)
			if !from.Equal(tt.wantMin) || !to.Equal(tt.wantMax) {
				t.Fatalf("monthRange = [%v, %v), want [%v, %v)", from, to, tt.wantMin, tt.wantMax)
			}
			within := func(d time.Time) bool { return !d.Before(from) && d.Before(to) }
			for _, d := range tt.in {
				if !within(d) {
					t.Fatalf("%v should be inside the range", d)
				}
			}
			for _, d := range tt.notIn {
				if within(d) {
					t.Fatalf("%v should be outside the range", d)
				}
			}
		})
	}
}
