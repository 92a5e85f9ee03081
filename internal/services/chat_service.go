// Package services – ChatService
//
// This file implements ChatService, the campaign assistant. Each call turns a
// visitor question into one completion request: the training-context bundle
// is rendered into a bounded system prompt, the model is asked for a JSON
// reply, and the exchange is stored whatever the outcome.
//
// Upstream failures never reach the client. A missing credential yields a
// "not configured" notice and any completion or parse error yields a fixed
// apology, both with confidence 0.1. Only storage failures are returned.
//
// Observability: Answer and History are OpenTelemetry-instrumented and each
// answer increments chat_answers_total{outcome}.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/mhd0331/JinanCampaign/internal/domain"
	"github.com/mhd0331/JinanCampaign/internal/llm"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/trainingctx"
)

const (
	// FallbackConfidence is attached to every reply that did not come from
	// the model.
	FallbackConfidence = 0.1

	defaultChatTimeout = 20 * time.Second
)

// ChatReply is the answer returned to the chat widget.
type ChatReply struct {
	Response   string  `json:"response"`
	Confidence float64 `json:"confidence"`
	MessageID  string  `json:"messageId"`
}

// ChatService answers visitor questions and keeps their transcripts.
type ChatService struct {
	DB *gorm.DB
	// LLM is nil when no API credential is configured.
	LLM llm.Completer
	// Training supplies the prompt context; nil means an empty bundle.
	Training *trainingctx.Cache

	// Timeout bounds the single completion attempt.
	Timeout time.Duration
	// ContactChannel is quoted in the prompt and fallback replies.
	ContactChannel string
	// IdempotencyTTL bounds how long Remember'd keys replay; 0 means 24h.
	IdempotencyTTL time.Duration
}

// NewChatService wires a ChatService with the default timeout and contact.
func NewChatService(db *gorm.DB, c llm.Completer, cache *trainingctx.Cache) *ChatService {
	return &ChatService{
		DB:             db,
		LLM:            c,
		Training:       cache,
		Timeout:        defaultChatTimeout,
		ContactChannel: DefaultContactChannel,
	}
}

// Answer validates the request, obtains a reply and persists the exchange.
// It returns ErrMissingChatFields for a blank message or session id, and a
// storage error if the exchange could not be written.
func (s *ChatService) Answer(ctx context.Context, message, sessionID string) (*ChatReply, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "Answer",
		trace.WithAttributes(attribute.String("chat.session_id", sessionID)),
	)
	defer span.End()

	message = strings.TrimSpace(message)
	sessionID = strings.TrimSpace(sessionID)
	if message == "" || sessionID == "" {
		return nil, ErrMissingChatFields
	}

	text, confidence, outcome := s.reply(ctx, message)
	chatAnswers.WithLabelValues(outcome).Inc()
	span.SetAttributes(
		attribute.String("chat.outcome", outcome),
		attribute.Float64("chat.confidence", confidence),
	)

	// The exchange is stored even when the caller has gone away.
	m, err := repo.CreateChatMessage(context.WithoutCancel(ctx), s.DB, sessionID, message, text, confidence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist chat message")
		return nil, err
	}
	return &ChatReply{Response: m.AIResponse, Confidence: m.Confidence, MessageID: m.ID}, nil
}

// History returns the transcript of sessionID, oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	tr := otel.Tracer("services/ChatService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(attribute.String("chat.session_id", sessionID)),
	)
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrMissingChatFields
	}
	return repo.ListChatMessages(ctx, s.DB, sessionID)
}

// Message loads one stored exchange. It is used to replay idempotent requests.
func (s *ChatService) Message(ctx context.Context, id string) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ChatScope is the idempotency scope of POST /api/chat.
const ChatScope = "chat"

// Replay returns the reply recorded under an idempotency key, or nil when
// the key is unknown or expired.
func (s *ChatService) Replay(ctx context.Context, key string) (*ChatReply, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, ChatScope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m, err := s.Message(ctx, rec.ResourceID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &ChatReply{Response: m.AIResponse, Confidence: m.Confidence, MessageID: m.ID}, nil
}

// Remember records messageID under an idempotency key. It is best effort:
// a lost race or storage error only costs a future replay, so it is logged.
func (s *ChatService) Remember(ctx context.Context, key, messageID string) {
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if _, err := repo.CreateIdempotency(context.WithoutCancel(ctx), s.DB, ChatScope, key, messageID, ttl); err != nil && !errors.Is(err, repo.ErrDuplicate) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("store chat idempotency key")
	}
}

// reply produces the answer text, its confidence and the outcome label.
func (s *ChatService) reply(ctx context.Context, message string) (string, float64, string) {
	lg := zerolog.Ctx(ctx)
	if s.LLM == nil {
		return s.notConfiguredText(), FallbackConfidence, outcomeUnconfigured
	}

	var bundle trainingctx.Bundle
	if s.Training != nil {
		b, err := s.Training.Get(ctx)
		if err != nil {
			lg.Warn().Err(err).Msg("training context unavailable, answering without it")
		} else {
			bundle = b
		}
	}
	system := BuildSystemPrompt(bundle, s.contact())

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultChatTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.LLM.Complete(cctx, system, message)
	if err != nil {
		lg.Error().Err(err).Msg("chat completion failed")
		return s.fallbackText(), FallbackConfidence, outcomeFallback
	}
	ans, err := llm.ParseAnswer(raw)
	if err != nil {
		lg.Warn().Err(err).Int("raw_len", len(raw)).Msg("chat completion not parseable")
		return s.fallbackText(), FallbackConfidence, outcomeFallback
	}
	return ans.Response, ans.Confidence, outcomeOK
}

func (s *ChatService) contact() string {
	if c := strings.TrimSpace(s.ContactChannel); c != "" {
		return c
	}
	return DefaultContactChannel
}

func (s *ChatService) notConfiguredText() string {
	return "AI 상담 서비스가 현재 설정되지 않았습니다. 직접 " + s.contact() + "로 문의해주세요."
}

func (s *ChatService) fallbackText() string {
	return "죄송합니다. 현재 AI 상담 서비스에 일시적인 문제가 있습니다. 직접 " + s.contact() + "로 문의해주세요."
}
