package models

import (
	"time"
)

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

type Transaction struct {
	ID            string          `firestore:"id" json:"id"`
	UserID        string          `firestore:"userId" json:"userId"`
	BankAccountID string          `firestore:"bankAccountId" json:"bankAccountId"`
	CategoryID    string          `firestore:"categoryId" json:"categoryId,omitempty"` // empty once the category is deleted
	Name          string          `firestore:"name" json:"name"`
	Date          time.Time       `firestore:"date" json:"date"`
	Value         float64         `firestore:"value" json:"value"` // always a magnitude, sign comes from Type
	Type          TransactionType `firestore:"type" json:"type"`
	CreatedAt     time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time       `firestore:"updatedAt" json:"updatedAt"`
}
