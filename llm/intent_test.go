package llm

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trywilco/secure-info-concierge/models"
)

type stubCompleter struct {
	reply   string
	err     error
	systems []string
	users   []string
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	s.systems = append(s.systems, system)
	s.users = append(s.users, user)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestClassifyExactLabel(t *testing.T) {
	stub := &stubCompleter{reply: "account_balance"}
	ic := NewIntentClassifier(stub)

	intent := ic.Classify(context.Background(), "what's my balance?")
	assert.Equal(t, models.IntentAccountBalance, intent)
}

func TestClassifyPromptListsEveryLabel(t *testing.T) {
	stub := &stubCompleter{reply: "general_question"}
	ic := NewIntentClassifier(stub)

	ic.Classify(context.Background(), "tell me about two-factor authentication")

	require.Len(t, stub.users, 1)
	for _, intent := range models.IntentTaxonomy {
		assert.Contains(t, stub.users[0], intent.String())
	}
	assert.Contains(t, stub.users[0], "tell me about two-factor authentication")
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	ic := NewIntentClassifier(&stubCompleter{reply: "TRANSACTION_HISTORY"})

	intent := ic.Classify(context.Background(), "show me transactions")
	assert.Equal(t, models.IntentTransactionHistory, intent)
}

func TestClassifyEmbeddedLabel(t *testing.T) {
	ic := NewIntentClassifier(&stubCompleter{reply: "The category is spending_analysis."})

	intent := ic.Classify(context.Background(), "analyze my spending")
	assert.Equal(t, models.IntentSpendingAnalysis, intent)
}

func TestClassifyTieBreaksInTaxonomyOrder(t *testing.T) {
	// A reply naming several labels resolves to the first taxonomy label
	// present, not to any model-stated preference.
	ic := NewIntentClassifier(&stubCompleter{
		reply: "could be transaction_history or account_balance",
	})

	intent := ic.Classify(context.Background(), "ambiguous")
	assert.Equal(t, models.IntentAccountBalance, intent)
}

func TestClassifyNoMatchFallsBackToFirstLabel(t *testing.T) {
	ic := NewIntentClassifier(&stubCompleter{reply: "this query is about the weather"})

	intent := ic.Classify(context.Background(), "will it rain tomorrow")
	assert.Equal(t, models.IntentTaxonomy[0], intent)
}

func TestClassifyErrorReturnsGeneralQuestion(t *testing.T) {
	ic := NewIntentClassifier(&stubCompleter{err: fmt.Errorf("model unavailable")})

	intent := ic.Classify(context.Background(), "what's my balance?")
	assert.Equal(t, models.IntentGeneralQuestion, intent)
}
