package db

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

// SampleUserPassword is the password every seeded demo user gets. The seed
// only runs against an empty database; it exists so the service is usable
// locally without a provisioning step.
const SampleUserPassword = "Concierge!Demo1"

type sampleAccount struct {
	username      string
	accountNumber string
	balance       string
	accountType   string
}

type sampleKnowledge struct {
	tag         string
	info        string
	sensitivity int
}

// PopulateSampleData seeds demo users, accounts, transactions, and knowledge
// items. It is a no-op when client_data already has rows.
func PopulateSampleData() error {
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM client_data`).Scan(&count); err != nil {
		return fmt.Errorf("error checking for existing sample data: %v", err)
	}
	if count > 0 {
		return nil
	}

	knowledge := []sampleKnowledge{
		{"budget_advice", "Based on your spending patterns, consider increasing your retirement contributions by 2% to maximize tax benefits", 1},
		{"budget_advice", "A 50/30/20 split between needs, wants, and savings is a reasonable starting point for most budgets", 1},
		{"investment_advice", "Market is up 1.2% today, with technology sector leading gains of 2.5% and healthcare showing strong momentum", 1},
		{"investment_advice", "Diversified index funds typically carry lower fees than actively managed funds over comparable periods", 1},
		{"general_question", "Two-factor authentication adds a second verification step to protect account access", 2},
		{"general_question", "Electronically filed tax returns are typically processed within 2-3 weeks", 3},
	}
	for _, k := range knowledge {
		if _, err := InsertKnowledge(context.Background(), k.tag, k.info, k.sensitivity); err != nil {
			return err
		}
	}

	accounts := []sampleAccount{
		{"johndoe", "1234-5678-9012-3456", "5432.10", "checking"},
		{"janedoe", "2468-1357-9080-7060", "3578.92", "checking"},
		{"bobsmith", "9876-5432-1098-7654", "10250.75", "savings"},
		{"sarahlee", "1357-2468-0909-8080", "25750.45", "investment"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SampleUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing sample password: %v", err)
	}

	accountIDs := map[string]int64{}
	for _, a := range accounts {
		_, err := DB.Exec(
			`INSERT INTO users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
			a.username, string(hash),
		)
		if err != nil {
			return fmt.Errorf("error seeding user %s: %v", a.username, err)
		}

		balance, err := decimal.NewFromString(a.balance)
		if err != nil {
			return fmt.Errorf("error parsing sample balance %s: %v", a.balance, err)
		}

		var id int64
		err = DB.QueryRow(
			`INSERT INTO user_accounts (username, account_number, account_type, balance)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			a.username, a.accountNumber, a.accountType, balance,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("error seeding account for %s: %v", a.username, err)
		}
		accountIDs[a.username+"_"+a.accountType] = id
	}

	if err := seedTransactions(accountIDs); err != nil {
		return err
	}

	logger.Get().Info("Sample data populated")
	return nil
}

func seedTransactions(accountIDs map[string]int64) error {
	type txn struct {
		accountID   int64
		txnType     string
		amount      string
		description string
		category    string
		occurredAt  time.Time
	}

	now := time.Now()
	txns := []txn{}

	if id, ok := accountIDs["johndoe_checking"]; ok {
		for i := 1; i <= 30; i++ {
			date := now.AddDate(0, 0, -i)
			if i%7 == 0 {
				txns = append(txns, txn{id, models.TransactionDebit, "120.50", "Grocery shopping at Whole Foods", "groceries", date})
			}
			if i%14 == 0 {
				txns = append(txns, txn{id, models.TransactionDebit, "85.75", "Dinner at Italian Restaurant", "dining", date})
			}
			if i%5 == 0 {
				txns = append(txns, txn{id, models.TransactionDebit, "4.50", "Coffee at Starbucks", "coffee", date})
			}
		}
		txns = append(txns, txn{id, models.TransactionCredit, "3500.00", "Salary deposit from TechCorp Inc.", "income", now.AddDate(0, 0, -15)})
	}

	if id, ok := accountIDs["janedoe_checking"]; ok {
		for i := 1; i <= 30; i++ {
			date := now.AddDate(0, 0, -i)
			if i%8 == 0 {
				txns = append(txns, txn{id, models.TransactionDebit, "95.20", "Grocery shopping at Trader Joe's", "groceries", date})
			}
			if i%10 == 0 {
				txns = append(txns, txn{id, models.TransactionDebit, "65.30", "Lunch at Sushi Place", "dining", date})
			}
		}
		txns = append(txns, txn{id, models.TransactionCredit, "4200.00", "Salary deposit from HealthCare Ltd.", "income", now.AddDate(0, 0, -12)})
	}

	if id, ok := accountIDs["bobsmith_savings"]; ok {
		txns = append(txns, txn{id, models.TransactionCredit, "12.75", "Interest payment", "interest", now.AddDate(0, 0, -5)})
		txns = append(txns, txn{id, models.TransactionCredit, "500.00", "Transfer from checking account", "transfer", now.AddDate(0, 0, -20)})
	}

	if id, ok := accountIDs["sarahlee_investment"]; ok {
		txns = append(txns, txn{id, models.TransactionCredit, "320.45", "Quarterly dividend payment", "dividend", now.AddDate(0, 0, -10)})
		txns = append(txns, txn{id, models.TransactionDebit, "1000.00", "Purchase of AAPL shares", "investment", now.AddDate(0, 0, -25)})
	}

	for _, t := range txns {
		amount, err := decimal.NewFromString(t.amount)
		if err != nil {
			return fmt.Errorf("error parsing sample amount %s: %v", t.amount, err)
		}
		_, err = DB.Exec(
			`INSERT INTO transactions (account_id, transaction_type, amount, description, category, transaction_date)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.accountID, t.txnType, amount, t.description, t.category, t.occurredAt,
		)
		if err != nil {
			return fmt.Errorf("error seeding transaction: %v", err)
		}
	}
	return nil
}
