package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

// Store is the read surface the resolver needs from the backing database.
type Store interface {
	ListAccounts(ctx context.Context, username string) ([]models.Account, error)
	ListTransactions(ctx context.Context, username string, limit int) ([]models.Transaction, error)
	ListAllTransactions(ctx context.Context, limit int) ([]models.Transaction, error)
	LookupKnowledge(ctx context.Context, tag string) ([]models.KnowledgeItem, error)
}

// Sentinel context strings. A missing or empty result always resolves to one
// of these, never to an empty context the composer would have to special-case.
const (
	AuthRequiredSentinel   = "Authentication is required to access account information."
	NoAccountsSentinel     = "No account information available."
	NoTransactionsSentinel = "No recent transactions found."
)

// ContextResolver decides which data domain a classified query needs and
// issues the minimal reads, enforcing the authorization boundary: account and
// transaction data enter a context only for a present, owning principal.
type ContextResolver struct {
	store Store
	limit int
}

// NewContextResolver builds a resolver fetching at most limit transactions
// per request. The limit must be positive; config validates it at startup.
func NewContextResolver(store Store, limit int) *ContextResolver {
	return &ContextResolver{store: store, limit: limit}
}

// Resolve is total over the intent taxonomy: every intent maps to a context
// for both the authenticated and the anonymous case.
func (r *ContextResolver) Resolve(ctx context.Context, intent models.Intent, principal *models.Principal) (models.Context, error) {
	switch intent {
	case models.IntentAccountBalance:
		return r.resolveAccounts(ctx, principal)
	case models.IntentTransactionHistory, models.IntentSpendingAnalysis:
		return r.resolveTransactions(ctx, principal)
	default:
		return r.resolveKnowledge(ctx, intent)
	}
}

func (r *ContextResolver) resolveAccounts(ctx context.Context, principal *models.Principal) (models.Context, error) {
	if principal == nil {
		return models.TextContext(AuthRequiredSentinel), nil
	}

	accounts, err := r.store.ListAccounts(ctx, principal.Username)
	if err != nil {
		logger.Get().Error("Account lookup failed",
			zap.String("username", principal.Username),
			zap.Error(err))
		return models.EmptyContext(), fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(accounts) == 0 {
		return models.TextContext(NoAccountsSentinel), nil
	}

	lines := make([]string, len(accounts))
	for i, a := range accounts {
		lines[i] = fmt.Sprintf("%s account %s: $%s",
			capitalize(a.AccountType), a.AccountNumber, a.Balance.StringFixed(2))
	}
	return models.TextContext("Account Information:\n" + strings.Join(lines, "\n")), nil
}

// resolveTransactions returns the principal's own recent transactions, or a
// system-wide listing annotated with owner usernames when no principal is
// present. The anonymous system-wide disclosure mirrors long-standing
// behavior and is pending product review; do not tighten it here without one.
func (r *ContextResolver) resolveTransactions(ctx context.Context, principal *models.Principal) (models.Context, error) {
	var (
		transactions []models.Transaction
		err          error
	)
	if principal != nil {
		transactions, err = r.store.ListTransactions(ctx, principal.Username, r.limit)
	} else {
		transactions, err = r.store.ListAllTransactions(ctx, r.limit)
	}
	if err != nil {
		logger.Get().Error("Transaction lookup failed", zap.Error(err))
		return models.EmptyContext(), fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(transactions) == 0 {
		return models.TextContext(NoTransactionsSentinel), nil
	}

	lines := make([]string, len(transactions))
	for i, t := range transactions {
		line := fmt.Sprintf("%s - %s - $%s (%s)",
			t.OccurredAt.Format("2006-01-02"), t.Description, t.Amount.StringFixed(2), t.Type)
		if principal == nil {
			line = fmt.Sprintf("[%s] %s", t.Username, line)
		}
		lines[i] = line
	}
	return models.TextContext("Recent Transactions:\n" + strings.Join(lines, "\n")), nil
}

func (r *ContextResolver) resolveKnowledge(ctx context.Context, intent models.Intent) (models.Context, error) {
	items, err := r.store.LookupKnowledge(ctx, intent.String())
	if err != nil {
		logger.Get().Error("Knowledge lookup failed",
			zap.String("tag", intent.String()),
			zap.Error(err))
		return models.EmptyContext(), fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(items) == 0 {
		return models.EmptyContext(), nil
	}

	// Sensitivity levels are recorded on every row but not filtered here;
	// every matching item is served regardless of level.
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Info
	}
	return models.TextContext(strings.Join(texts, "\n\n")), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
