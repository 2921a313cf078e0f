package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/bookkeeping-backend/internal/dto"
	"github.com/GregMSThompson/bookkeeping-backend/internal/errs"
	"github.com/GregMSThompson/bookkeeping-backend/internal/models"
)

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection(uid string) *firestore.CollectionRef {
	return userCollection(s.client, uid, categoriesCollection)
}

func (s *categoryStore) Create(ctx context.Context, uid string, category *models.Category) error {
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	category.UserID = uid
	if _, err := s.collection(uid).Doc(category.ID).Create(ctx, category); err != nil {
		return errs.NewDatabaseError("create", "failed to create category", err)
	}
	return nil
}

func (s *categoryStore) Get(ctx context.Context, uid, categoryID string) (*models.Category, error) {
	doc, err := s.collection(uid).Doc(categoryID).Get(ctx)
	if err != nil {
		return nil, readError(err, "category not found")
	}
	var c models.Category
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	return &c, nil
}

func (s *categoryStore) List(ctx context.Context, uid string) ([]*models.Category, error) {
	docs, err := s.collection(uid).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	categories := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		categories = append(categories, &c)
	}
	return categories, nil
}

func (s *categoryStore) Update(ctx context.Context, uid, categoryID string, req dto.UpdateCategoryRequest) (*models.Category, error) {
	updates := []firestore.Update{{Path: "updatedAt", Value: time.Now()}}
	if req.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *req.Name})
	}
	if req.Icon != nil {
		updates = append(updates, firestore.Update{Path: "icon", Value: *req.Icon})
	}
	if req.Type != nil {
		updates = append(updates, firestore.Update{Path: "type", Value: *req.Type})
	}

	if _, err := s.collection(uid).Doc(categoryID).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("category not found")
		}
		return nil, errs.NewDatabaseError("update", "failed to update category", err)
	}
	return s.Get(ctx, uid, categoryID)
}

func (s *categoryStore) Delete(ctx context.Context, uid, categoryID string) error {
	if err := s.detachTransactions(ctx, uid, categoryID); err != nil {
		return errs.NewDatabaseError("delete", "failed to detach category from transactions", err)
	}
	if _, err := s.collection(uid).Doc(categoryID).Delete(ctx); err != nil {
		return errs.NewDatabaseError("delete", "failed to delete category", err)
	}
	return nil
}

func (s *categoryStore) detachTransactions(ctx context.Context, uid, categoryID string) error {
	docs, err := userCollection(s.client, uid, transactionsCollection).
		Where("categoryId", "==", categoryID).
		Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	now := time.Now()
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(docs))
	for _, d := range docs {
		job, err := bw.Update(d.Ref, []firestore.Update{
			{Path: "categoryId", Value: ""},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return err
		}
		jobs = append(jobs, job)
	}
	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}
