package db

import (
	"context"
	"fmt"

	"github.com/trywilco/secure-info-concierge/models"
)

// ListAccounts returns every account owned by the given user.
func ListAccounts(ctx context.Context, username string) ([]models.Account, error) {
	query := `
		SELECT id, username, account_number, account_type, balance
		FROM user_accounts
		WHERE username = $1
		ORDER BY account_number
	`
	rows, err := DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts for user %s: %v", username, err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.AccountNumber, &a.AccountType, &a.Balance); err != nil {
			return nil, fmt.Errorf("error scanning account row: %v", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading account rows: %v", err)
	}
	return accounts, nil
}
