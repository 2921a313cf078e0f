package store

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection(usersCollection),
	}
}

// CreateUser writes the user document and its starting categories in one
// transaction, so either all of them exist afterwards or none do.
func (us *userStore) CreateUser(ctx context.Context, user *models.User, categories []*models.Category) error {
	userDoc := us.Collection.Doc(user.UID)
	now := time.Now()

	err := us.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(userDoc); err == nil {
			return errs.NewAlreadyExistsError("user already exists")
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Create(userDoc, user); err != nil {
			return err
		}
		for _, c := range categories {
			if c.CreatedAt.IsZero() {
				c.CreatedAt = now
			}
			c.UpdatedAt = now
			c.UserID = user.UID
			if err := tx.Create(userCollection(us.Client, user.UID, categoriesCollection).Doc(c.ID), c); err != nil {
				return err
			}
		}
		return nil
	})

	var exists *errs.AlreadyExistsError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exists):
		return exists
	case status.Code(err) == codes.AlreadyExists:
		return errs.NewAlreadyExistsError("user already exists")
	default:
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	doc, err := us.Collection.Doc(uid).Get(ctx)
	if err != nil {
		return nil, readError(err, "user not found")
	}
	if err := doc.DataTo(&user); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse user data", err)
	}

	return &user, nil
}
