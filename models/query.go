package models

import (
	"time"

	"github.com/google/uuid"
)

// QueryRequest is the body of the secure-query endpoints.
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// QueryResponse is the body returned to the caller.
type QueryResponse struct {
	Response string `json:"response"`
}

// QueryResult is the pipeline's output: the answer text plus the intent that
// produced it, for the audit log.
type QueryResult struct {
	Answer string
	Intent Intent
}

// QueryRecord is one audit row written asynchronously per handled query.
// Username is "anonymous" when no principal was present.
type QueryRecord struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Query     string    `json:"query"`
	Intent    Intent    `json:"intent"`
	CreatedAt time.Time `json:"created_at"`
}

// AnonymousUser is the audit-log owner for principal-less requests.
const AnonymousUser = "anonymous"
