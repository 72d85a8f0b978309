// Package resolver turns a user question into a single resolution: a matched
// FAQ answer, a list of "did you mean" suggestions, an AI answer or an error.
package resolver

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"edunex/internal/db"
	"edunex/internal/models"
)

// FAQStore is the read-only view of the FAQ table the resolver needs.
type FAQStore interface {
	ListFAQs(ctx context.Context) ([]models.FAQ, error)
	GetFAQByPrimaryKeyword(ctx context.Context, key string) (*models.FAQ, error)
}

// Gateway answers a prompt with the selected provider.
type Gateway interface {
	Reply(ctx context.Context, prompt string, provider models.Provider) (string, error)
}

// Gate is consulted right before the AI stage. A non-nil error stops the
// resolution with that error's message.
type Gate func(ctx context.Context, provider models.Provider) error

// Resolver runs the matcher, the composite fallback and the AI gateway in
// that order and stops at the first stage that produces an answer.
type Resolver struct {
	store   FAQStore
	gateway Gateway
	vocab   Vocabulary
	logger  *zap.Logger
}

// New creates a Resolver.
func New(store FAQStore, gateway Gateway, vocab Vocabulary, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, gateway: gateway, vocab: vocab, logger: logger}
}

// Resolve resolves text without an AI gate.
func (r *Resolver) Resolve(ctx context.Context, text string, provider models.Provider) models.Resolution {
	return r.ResolveGated(ctx, text, provider, nil)
}

// ResolveGated resolves text. gate, when non-nil, guards the AI stage only;
// FAQ and composite answers are always served.
//
// Failures never escape as Go errors: every one of them becomes a
// resolution of kind error carrying the failure message.
func (r *Resolver) ResolveGated(ctx context.Context, text string, provider models.Provider, gate Gate) models.Resolution {
	q := Normalize(text)

	faqs, err := r.store.ListFAQs(ctx)
	if err != nil {
		r.logger.Error("failed to load faqs", zap.Error(err))
		return models.Failed(err.Error())
	}

	match := Match(faqs, q)
	// A row with a blank answer cannot answer directly; its phrase still
	// shows up as a suggestion.
	if match.Direct != nil && match.Direct.Answer != "" {
		return models.Matched(match.Direct.Answer)
	}
	if len(match.Suggestions) > 0 {
		return models.Suggested(match.Suggestions)
	}

	if key, ok := r.vocab.CompositeKey(q); ok {
		row, err := r.store.GetFAQByPrimaryKeyword(ctx, key)
		switch {
		case err == nil && row.Answer != "":
			res := models.Matched(row.Answer)
			res.Composite = true
			return res
		case err != nil && !errors.Is(err, db.ErrFAQNotFound):
			// A failed composite lookup falls through to the AI stage.
			r.logger.Warn("composite lookup failed", zap.String("key", key), zap.Error(err))
		}
	}

	if gate != nil {
		if err := gate(ctx, provider); err != nil {
			res := models.Failed(err.Error())
			res.Provider = provider
			res.Blocked = true
			return res
		}
	}

	answer, err := r.gateway.Reply(ctx, text, provider)
	if err != nil {
		res := models.Failed(err.Error())
		res.Provider = provider
		return res
	}
	return models.AIAnswered(answer, provider)
}
