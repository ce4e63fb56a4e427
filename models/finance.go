package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a single financial account owned by one user.
type Account struct {
	ID            int64           `json:"id"`
	Username      string          `json:"username"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
}

// Transaction is one append-only ledger entry on an account. Amount is a
// non-negative magnitude; Type says which direction it moved.
type Transaction struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"account_number"`
	AccountType   string          `json:"account_type"`
	Username      string          `json:"username"`
	Type          string          `json:"transaction_type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

const (
	TransactionDebit  = "debit"
	TransactionCredit = "credit"
)

// KnowledgeItem is a generic information snippet served for non-account
// questions. SensitivityLevel is recorded for every row but the resolver does
// not filter on it; see the policy note in pipeline/resolver.go.
type KnowledgeItem struct {
	ID               int64     `json:"id"`
	Tag              string    `json:"tag"`
	Info             string    `json:"info"`
	SensitivityLevel int       `json:"sensitivity_level"`
	LastUpdated      time.Time `json:"last_updated"`
}
