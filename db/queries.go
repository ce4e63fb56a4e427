package db

import (
	"context"
	"fmt"

	"github.com/trywilco/secure-info-concierge/models"
)

// InsertQueryRecord appends one audit row for a handled query.
func InsertQueryRecord(ctx context.Context, rec models.QueryRecord) error {
	query := `
		INSERT INTO query_log (id, username, query, intent, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := DB.ExecContext(ctx, query, rec.ID, rec.Username, rec.Query, rec.Intent.String(), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording query for user %s: %v", rec.Username, err)
	}
	return nil
}
