// Package pipeline implements the intent-driven, authorization-scoped
// context-resolution pipeline behind the secure-query endpoints.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trywilco/secure-info-concierge/guard"
	"github.com/trywilco/secure-info-concierge/llm"
	"github.com/trywilco/secure-info-concierge/logger"
	"github.com/trywilco/secure-info-concierge/models"
)

// AuditSink receives one record per handled query. Submission must not block
// request handling; worker.Pool satisfies this.
type AuditSink interface {
	Submit(rec models.QueryRecord) bool
}

// Orchestrator sequences the pipeline for each request:
// sanitize -> screen -> classify -> resolve context -> compose.
// Screening is the only stage that can terminate a request; classification
// and composition degrade to defaults instead.
type Orchestrator struct {
	guard      *guard.Guard
	classifier *llm.IntentClassifier
	resolver   *ContextResolver
	composer   *ResponseComposer
	audit      AuditSink
}

func NewOrchestrator(g *guard.Guard, classifier *llm.IntentClassifier, resolver *ContextResolver, composer *ResponseComposer, audit AuditSink) *Orchestrator {
	return &Orchestrator{
		guard:      g,
		classifier: classifier,
		resolver:   resolver,
		composer:   composer,
		audit:      audit,
	}
}

// Handle runs one query through the pipeline. A nil principal means the
// request is anonymous; the resolver applies the authorization table either
// way. Stages run strictly in sequence and independent requests share no
// mutable state.
func (o *Orchestrator) Handle(ctx context.Context, rawQuery string, principal *models.Principal) (*models.QueryResult, error) {
	query := o.guard.Sanitize(rawQuery)

	if verdict := o.guard.Screen(ctx, query); !verdict.Pass {
		return nil, fmt.Errorf("%w: %s", ErrRejected, verdict.Reason)
	}

	intent := o.classifier.Classify(ctx, query)

	queryContext, err := o.resolver.Resolve(ctx, intent, principal)
	if err != nil {
		return nil, err
	}

	answer := o.composer.Compose(ctx, query, queryContext)

	o.logQuery(query, intent, principal)

	return &models.QueryResult{Answer: answer, Intent: intent}, nil
}

// HandleStrict behaves like Handle but fails with ErrUnauthenticated when no
// principal is present. Strict HTTP surfaces reject missing tokens in
// middleware already; this guards the flow when the orchestrator is invoked
// directly.
func (o *Orchestrator) HandleStrict(ctx context.Context, rawQuery string, principal *models.Principal) (*models.QueryResult, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	return o.Handle(ctx, rawQuery, principal)
}

func (o *Orchestrator) logQuery(query string, intent models.Intent, principal *models.Principal) {
	if o.audit == nil {
		return
	}
	username := models.AnonymousUser
	if principal != nil {
		username = principal.Username
	}
	rec := models.QueryRecord{
		ID:        uuid.New(),
		Username:  username,
		Query:     query,
		Intent:    intent,
		CreatedAt: time.Now(),
	}
	if !o.audit.Submit(rec) {
		logger.Get().Warn("Audit record dropped",
			zap.String("username", username),
			zap.String("intent", intent.String()))
	}
}
