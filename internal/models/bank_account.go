package models

import (
	"time"
)

type BankAccountType string

const (
	BankAccountChecking   BankAccountType = "CHECKING"
	BankAccountInvestment BankAccountType = "INVESTMENT"
	BankAccountCash       BankAccountType = "CASH"
)

type BankAccount struct {
	ID             string          `firestore:"id" json:"id"`
	UserID         string          `firestore:"userId" json:"userId"`
	Name           string          `firestore:"name" json:"name"`
	Color          string          `firestore:"color" json:"color"` // hex, e.g. "#7950F2"
	Type           BankAccountType `firestore:"type" json:"type"`
	InitialBalance float64         `firestore:"initialBalance" json:"initialBalance"`
	CreatedAt      time.Time       `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time       `firestore:"updatedAt" json:"updatedAt"`
}

// TransactionAmount is the projection of a transaction needed to derive a balance.
type TransactionAmount struct {
	Value float64         `firestore:"value" json:"value"`
	Type  TransactionType `firestore:"type" json:"type"`
}

// BankAccountWithTransactions is a bank account joined with the amounts of
// every transaction that references it.
type BankAccountWithTransactions struct {
	BankAccount
	Transactions []TransactionAmount
}

// BankAccountWithBalance is the listing view of a bank account. CurrentBalance
// is derived at read time and never persisted.
type BankAccountWithBalance struct {
	BankAccount
	CurrentBalance float64             `json:"currentBalance"`
	Transactions   []TransactionAmount `json:"transactions"`
}
