// Package chat drives one chat conversation: it resolves questions, holds
// the "did you mean" confirmation between turns and charges AI answers to
// the conversation's daily usage.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"edunex/internal/models"
	"edunex/internal/resolver"
	"edunex/internal/usage"
)

// Canned replies
const (
	msgFAQUnavailable = "Sorry, I couldn't fetch the FAQ answer."
	msgYesOrNo        = "Please answer yes or no."
)

// Errors returned by the service.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrNotAwaiting  = errors.New("no suggestion is awaiting confirmation")
)

// FAQReader fetches the answer behind a confirmed suggestion.
type FAQReader interface {
	GetFAQByID(ctx context.Context, id int64) (*models.FAQ, error)
}

// Recorder persists resolution outcome counters.
type Recorder interface {
	IncrementResolutionLookup(ctx context.Context, outcome, provider string) error
}

// Service runs chat turns.
type Service struct {
	resolver *resolver.Resolver
	gateway  resolver.Gateway
	faqs     FAQReader
	tracker  *usage.Tracker
	recorder Recorder
	timeout  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// Config holds the collaborators of a Service.
type Config struct {
	Resolver *resolver.Resolver
	Gateway  resolver.Gateway
	FAQs     FAQReader
	Tracker  *usage.Tracker
	Recorder Recorder // optional
	Timeout  time.Duration
	Logger   *zap.Logger
}

// NewService creates a chat Service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: cfg.Resolver,
		gateway:  cfg.Gateway,
		faqs:     cfg.FAQs,
		tracker:  cfg.Tracker,
		recorder: cfg.Recorder,
		timeout:  cfg.Timeout,
		now:      time.Now,
		logger:   logger,
	}
}

// Tracker returns the usage tracker charged by the service.
func (s *Service) Tracker() *usage.Tracker {
	return s.tracker
}

// Resolve runs one stateless resolution for scope. The AI stage is gated by
// and charged to scope's daily usage.
func (s *Service) Resolve(ctx context.Context, scope, text string, provider models.Provider) models.Resolution {
	res := s.resolver.ResolveGated(ctx, text, provider, s.gate(scope))
	if res.Kind == models.KindAI {
		s.tracker.Increment(scope, res.Provider)
	}
	s.record(ctx, res.Outcome(), res.Provider)
	return res
}

// Send handles one user message. While a suggestion is pending the message
// is read as the answer to "did you mean"; otherwise it is resolved.
func (s *Service) Send(ctx context.Context, conv *models.Conversation, text string, provider models.Provider) (models.ChatReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatReply{}, ErrEmptyMessage
	}

	if conv.Expired(s.now(), s.timeout) {
		s.logger.Debug("pending suggestion expired", zap.String("conversation", conv.ID))
		conv.Clear()
	}

	if conv.AwaitingConfirmation && conv.Pending != nil {
		switch ParseAnswer(text) {
		case AnswerYes:
			return s.confirmYes(ctx, conv), nil
		case AnswerNo:
			return s.confirmNo(ctx, conv, provider), nil
		default:
			reply := s.ask(conv.Pending.Label, conv.Pending.FAQID)
			reply.Message.Content += " " + msgYesOrNo
			return reply, nil
		}
	}

	res := s.Resolve(ctx, conv.ID, text, provider)

	switch res.Kind {
	case models.KindSuggestions:
		top, _ := res.Top()
		conv.Await(models.PendingSuggestion{Label: top.Label, FAQID: top.FAQID, OriginalText: text}, s.now())
		return s.ask(top.Label, top.FAQID), nil
	case models.KindMatched:
		return s.answer(res.Answer, "", false), nil
	case models.KindAI:
		return s.answer(res.Answer, res.Provider, true), nil
	default:
		if res.Blocked {
			return s.failure(res.Error, provider), nil
		}
		return s.failure(fmt.Sprintf("Error (%s): %s", provider, res.Error), provider), nil
	}
}

// Confirm answers the pending suggestion explicitly.
func (s *Service) Confirm(ctx context.Context, conv *models.Conversation, yes bool, provider models.Provider) (models.ChatReply, error) {
	if conv.Expired(s.now(), s.timeout) {
		conv.Clear()
	}
	if !conv.AwaitingConfirmation || conv.Pending == nil {
		return models.ChatReply{}, ErrNotAwaiting
	}
	if yes {
		return s.confirmYes(ctx, conv), nil
	}
	return s.confirmNo(ctx, conv, provider), nil
}

func (s *Service) confirmYes(ctx context.Context, conv *models.Conversation) models.ChatReply {
	pending := *conv.Pending
	conv.Clear()

	faq, err := s.faqs.GetFAQByID(ctx, pending.FAQID)
	if err != nil || faq.Answer == "" {
		if err != nil {
			s.logger.Warn("failed to fetch confirmed faq", zap.Int64("faq_id", pending.FAQID), zap.Error(err))
		}
		return s.answer(msgFAQUnavailable, "", false)
	}
	s.record(ctx, models.OutcomeMatched, "")
	return s.answer(faq.Answer, "", false)
}

// confirmNo asks the AI directly: resolving the original text again would
// only produce the same suggestion.
func (s *Service) confirmNo(ctx context.Context, conv *models.Conversation, provider models.Provider) models.ChatReply {
	pending := *conv.Pending
	conv.Clear()

	if err := s.tracker.Check(conv.ID, provider); err != nil {
		s.record(ctx, models.OutcomeQuota, provider)
		return s.failure(err.Error(), provider)
	}

	text, err := s.gateway.Reply(ctx, pending.OriginalText, provider)
	if err != nil {
		s.record(ctx, models.OutcomeError, provider)
		return s.failure(fmt.Sprintf("Error (%s): %s", provider, err.Error()), provider)
	}
	s.tracker.Increment(conv.ID, provider)
	s.record(ctx, models.OutcomeAI, provider)
	return s.answer(text, provider, true)
}

func (s *Service) gate(scope string) resolver.Gate {
	return func(ctx context.Context, p models.Provider) error {
		return s.tracker.Check(scope, p)
	}
}

func (s *Service) record(ctx context.Context, outcome string, provider models.Provider) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.IncrementResolutionLookup(ctx, outcome, string(provider)); err != nil {
		s.logger.Warn("failed to record resolution outcome", zap.String("outcome", outcome), zap.Error(err))
	}
}

func (s *Service) message(content string) models.ChatMessage {
	return models.ChatMessage{
		ID:      uuid.NewString(),
		Role:    models.RoleAssistantMessage,
		Content: content,
		Time:    s.now(),
	}
}

func (s *Service) ask(label string, faqID int64) models.ChatReply {
	return models.ChatReply{
		Message:              s.message(fmt.Sprintf("Did you mean: \"%s\"?", label)),
		AwaitingConfirmation: true,
		Suggestion:           &models.Suggestion{Label: label, FAQID: faqID},
	}
}

func (s *Service) answer(content string, provider models.Provider, usedAI bool) models.ChatReply {
	msg := s.message(content)
	msg.Provider = provider
	msg.UsedAI = usedAI
	return models.ChatReply{Message: msg}
}

func (s *Service) failure(content string, provider models.Provider) models.ChatReply {
	msg := s.message(content)
	msg.Provider = provider
	msg.IsError = true
	return models.ChatReply{Message: msg}
}
