package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/trywilco/secure-info-concierge/logger"
)

var DB *sql.DB

// InitDB opens the database connection, verifies it, and ensures the schema
// exists.
func InitDB(databaseURL string) error {
	var err error
	DB, err = sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("error opening database: %v", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("error connecting to the database: %v", err)
	}

	if err = createSchema(); err != nil {
		return fmt.Errorf("error creating schema: %v", err)
	}

	logger.Get().Info("Successfully connected to database")
	return nil
}

// CloseDB closes the database connection
func CloseDB() {
	if DB != nil {
		DB.Close()
	}
}

func createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_accounts (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL REFERENCES users (username),
			account_number TEXT UNIQUE NOT NULL,
			account_type TEXT NOT NULL,
			balance NUMERIC(14,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			account_id INTEGER NOT NULL REFERENCES user_accounts (id),
			transaction_type TEXT NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			transaction_date TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS client_data (
			id SERIAL PRIMARY KEY,
			query_tag TEXT NOT NULL,
			info TEXT NOT NULL,
			sensitivity_level INTEGER NOT NULL DEFAULT 1,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS query_log (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			query TEXT NOT NULL,
			intent TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
