package db

import (
	"context"
	"database/sql"
	"fmt"
)

// GetPasswordHash returns the stored bcrypt hash for the user, or
// sql.ErrNoRows when the user does not exist.
func GetPasswordHash(ctx context.Context, username string) (string, error) {
	query := `
		SELECT password_hash
		FROM users
		WHERE username = $1
	`
	var hash string
	err := DB.QueryRowContext(ctx, query, username).Scan(&hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("error getting password hash for user %s: %v", username, err)
	}
	return hash, nil
}
