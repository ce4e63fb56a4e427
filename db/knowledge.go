package db

import (
	"context"
	"fmt"

	"github.com/trywilco/secure-info-concierge/models"
)

// LookupKnowledge returns every knowledge item filed under the given tag.
// Rows are returned regardless of sensitivity level; filtering, if any, is the
// caller's policy decision.
func LookupKnowledge(ctx context.Context, tag string) ([]models.KnowledgeItem, error) {
	query := `
		SELECT id, query_tag, info, sensitivity_level, last_updated
		FROM client_data
		WHERE query_tag = $1
		ORDER BY id
	`
	rows, err := DB.QueryContext(ctx, query, tag)
	if err != nil {
		return nil, fmt.Errorf("error looking up knowledge for tag %s: %v", tag, err)
	}
	defer rows.Close()

	items := []models.KnowledgeItem{}
	for rows.Next() {
		var item models.KnowledgeItem
		if err := rows.Scan(&item.ID, &item.Tag, &item.Info, &item.SensitivityLevel, &item.LastUpdated); err != nil {
			return nil, fmt.Errorf("error scanning knowledge row: %v", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading knowledge rows: %v", err)
	}
	return items, nil
}

// InsertKnowledge adds a knowledge item and returns its ID.
func InsertKnowledge(ctx context.Context, tag, info string, sensitivityLevel int) (int64, error) {
	query := `
		INSERT INTO client_data (query_tag, info, sensitivity_level)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	err := DB.QueryRowContext(ctx, query, tag, info, sensitivityLevel).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting knowledge for tag %s: %v", tag, err)
	}
	return id, nil
}
