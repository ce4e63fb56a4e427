package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/trywilco/secure-info-concierge/models"
)

// ListTransactions returns the user's most recent transactions across all of
// their accounts, newest first.
func ListTransactions(ctx context.Context, username string, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.transaction_type, t.amount, t.description, t.category,
		       t.transaction_date, a.account_type, a.account_number, a.username
		FROM transactions t
		JOIN user_accounts a ON t.account_id = a.id
		WHERE a.username = $1
		ORDER BY t.transaction_date DESC
		LIMIT $2
	`
	rows, err := DB.QueryContext(ctx, query, username, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions for user %s: %v", username, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAllTransactions returns the most recent transactions system-wide across
// every account, newest first.
func ListAllTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.transaction_type, t.amount, t.description, t.category,
		       t.transaction_date, a.account_type, a.account_number, a.username
		FROM transactions t
		JOIN user_accounts a ON t.account_id = a.id
		ORDER BY t.transaction_date DESC
		LIMIT $1
	`
	rows, err := DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing all transactions: %v", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Description, &t.Category,
			&t.OccurredAt, &t.AccountType, &t.AccountNumber, &t.Username)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %v", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading transaction rows: %v", err)
	}
	return transactions, nil
}
