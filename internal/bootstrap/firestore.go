package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// InitFirestore opens a client on the named database, falling back to the
// project's default database when none is set.
func InitFirestore(ctx context.Context, projectID, databaseID string) (*firestore.Client, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, fmt.Errorf("firestore client for %s/%s: %w", projectID, databaseID, err)
	}
	return client, nil
}
