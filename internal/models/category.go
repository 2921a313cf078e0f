package models

import (
	"time"
)

type Category struct {
	ID        string          `firestore:"id" json:"id"`
	UserID    string          `firestore:"userId" json:"userId"`
	Name      string          `firestore:"name" json:"name"`
	Icon      string          `firestore:"icon" json:"icon"`
	Type      TransactionType `firestore:"type" json:"type"`
	CreatedAt time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time       `firestore:"updatedAt" json:"updatedAt"`
}
