package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
)

const (
	usersCollection        = "users"
	bankAccountsCollection = "bank_accounts"
	categoriesCollection   = "categories"
	transactionsCollection = "transactions"
)

// NewFirestoreSet returns every store backed by the given Firestore client.
func NewFirestoreSet(client *firestore.Client) *Set {
	return &Set{
		BankAccounts: NewBankAccountStore(client),
		Categories:   NewCategoryStore(client),
		Transactions: NewTransactionStore(client),
		Users:        NewUserStore(client),
	}
}

func userCollection(client *firestore.Client, uid, name string) *firestore.CollectionRef {
	return client.Collection(usersCollection).Doc(uid).Collection(name)
}

// readError maps a Firestore read failure to the errs taxonomy.
func readError(err error, notFound string) error {
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError(notFound)
	}
	return errs.NewDatabaseError("read", "failed to read document", err)
}

// deleteByQuery removes every document matched by q with a BulkWriter.
func deleteByQuery(ctx context.Context, client *firestore.Client, q firestore.Query) error {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	bw := client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		job, err := bw.Delete(d.Ref)
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}

	// Flush and close the writer, then wait on each job for errors.
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}
