package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/llm"
	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

const (
	composerFrame = "You are a secure financial information concierge. " +
		"Provide helpful, accurate, and concise responses about financial information. " +
		"Never reveal sensitive information unless explicitly authorized. "

	composerMaxTokens   = 256
	composerTemperature = 0.7

	emptyCompletionFallback = "I'm sorry, I couldn't generate a response. Please try again."
)

// ResponseComposer builds the final prompt from the system frame, the
// resolved context, and the user's sanitized query, and returns the
// completion.
type ResponseComposer struct {
	llm llm.Completer
}

func NewResponseComposer(llm llm.Completer) *ResponseComposer {
	return &ResponseComposer{llm: llm}
}

// Compose always returns user-facing text. A failed generation call yields an
// apology embedding only the opaque error string; the user's text and any
// credential never appear in it.
func (rc *ResponseComposer) Compose(ctx context.Context, query string, queryContext models.Context) string {
	system := composerFrame
	if rendered := renderContext(queryContext); rendered != "" {
		system += "\nHere is the relevant context for the user:\n" + rendered
	}

	answer, err := rc.llm.Complete(ctx, system, query, composerMaxTokens, composerTemperature)
	if err != nil {
		logger.Get().Error("Response composition failed", zap.Error(err))
		return fmt.Sprintf("I'm sorry, there was an error processing your request: %v", err)
	}
	if strings.TrimSpace(answer) == "" {
		return emptyCompletionFallback
	}
	return answer
}

// renderContext handles every context shape explicitly. Structured fields are
// rendered in sorted key order so identical contexts produce identical
// prompts.
func renderContext(c models.Context) string {
	switch c.Kind {
	case models.ContextText:
		return c.Text
	case models.ContextStructured:
		if len(c.Fields) == 0 {
			return ""
		}
		keys := make([]string, 0, len(c.Fields))
		for k := range c.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, len(keys))
		for i, k := range keys {
			lines[i] = fmt.Sprintf("%s: %s", k, c.Fields[k])
		}
		return strings.Join(lines, "\n")
	default:
		return ""
	}
}
