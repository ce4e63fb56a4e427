package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

const classifierSystemPrompt = "You are a helpful assistant that classifies user queries into predefined categories. Respond only with the exact category name."

// IntentClassifier maps free text onto the intent taxonomy with a single-shot
// classification prompt.
type IntentClassifier struct {
	llm Completer
}

func NewIntentClassifier(llm Completer) *IntentClassifier {
	return &IntentClassifier{llm: llm}
}

// Classify returns the intent of the query. It is best effort and never fails
// the request: a generation error yields general_question, and a reply naming
// no label yields the first taxonomy label. When a reply names several labels
// the first one in taxonomy order wins; that is the defined tie-break, not
// model-stated confidence.
func (ic *IntentClassifier) Classify(ctx context.Context, query string) models.Intent {
	labels := make([]string, len(models.IntentTaxonomy))
	for i, intent := range models.IntentTaxonomy {
		labels[i] = intent.String()
	}

	prompt := fmt.Sprintf(
		"Classify the following query into one of these categories: %s\n\nQuery: %s\n\nCategory:",
		strings.Join(labels, ", "), query,
	)

	reply, err := ic.llm.Complete(ctx, classifierSystemPrompt, prompt, 20, 0.3)
	if err != nil {
		logger.Get().Warn("Intent classification failed, using default",
			zap.Error(err))
		return models.IntentGeneralQuestion
	}

	replyLower := strings.ToLower(reply)
	for _, intent := range models.IntentTaxonomy {
		if strings.Contains(replyLower, intent.String()) {
			logger.Get().Debug("Classified intent", zap.String("intent", intent.String()))
			return intent
		}
	}

	logger.Get().Debug("Classifier reply matched no label, using first taxonomy label",
		zap.String("reply", reply))
	return models.IntentTaxonomy[0]
}
