package pipeline

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

func TestComposeIncludesFrameAndContext(t *testing.T) {
	stub := &stubCompleter{reply: "Your balance is $5432.10."}
	rc := NewResponseComposer(stub)

	answer := rc.Compose(context.Background(), "what's my balance?",
		models.TextContext("Account Information:\nChecking account 1234: $5432.10"))

	assert.Equal(t, "Your balance is $5432.10.", answer)
	require.Len(t, stub.systems, 1)
	assert.Contains(t, stub.systems[0], "secure financial information concierge")
	assert.Contains(t, stub.systems[0], "Never reveal sensitive information")
	assert.Contains(t, stub.systems[0], "Account Information:")
	assert.Equal(t, "what's my balance?", stub.users[0])
}

func TestComposeOmitsEmptyContext(t *testing.T) {
	stub := &stubCompleter{reply: "Happy to help."}
	rc := NewResponseComposer(stub)

	rc.Compose(context.Background(), "hello", models.EmptyContext())

	require.Len(t, stub.systems, 1)
	assert.NotContains(t, stub.systems[0], "relevant context")
}

func TestComposeRendersStructuredContextDeterministically(t *testing.T) {
	stub := &stubCompleter{reply: "ok"}
	rc := NewResponseComposer(stub)

	fields := map[string]string{"income": "3500.00", "category": "groceries"}
	rc.Compose(context.Background(), "q", models.StructuredContext(fields))

	require.Len(t, stub.systems, 1)
	assert.Contains(t, stub.systems[0], "category: groceries\nincome: 3500.00")
}

func TestComposeFailureReturnsApology(t *testing.T) {
	stub := &stubCompleter{err: fmt.Errorf("deployment quota exceeded")}
	rc := NewResponseComposer(stub)

	answer := rc.Compose(context.Background(), "what's my balance?", models.EmptyContext())

	assert.Contains(t, answer, "I'm sorry, there was an error processing your request")
	assert.Contains(t, answer, "deployment quota exceeded")
	assert.NotContains(t, answer, "what's my balance?", "the apology must not echo user input")
}

func TestComposeBlankCompletionUsesFallback(t *testing.T) {
	rc := NewResponseComposer(&stubCompleter{reply: "   "})

	answer := rc.Compose(context.Background(), "q", models.EmptyContext())
	assert.Equal(t, emptyCompletionFallback, answer)
}
