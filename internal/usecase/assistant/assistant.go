package assistant

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/health-portal/internal/domain/identity"
	"github.com/BruksfildServices01/health-portal/internal/httperr"
	"github.com/BruksfildServices01/health-portal/internal/models"
	"github.com/BruksfildServices01/health-portal/internal/timezone"
)

const (
	// HistoryTurns is how much of the transcript is sent with each message.
	HistoryTurns     = 20
	MaxMessageLength = 2000

	FallbackMessage = "I'm having trouble answering right now. Please try again in a moment, " +
		"and if your symptoms are severe contact a doctor or emergency services."
)

const chatPrompt = "You are a health information assistant for a patient portal. " +
	"Give general, careful guidance in plain language. You are not a doctor: never diagnose, " +
	"never prescribe, and tell the user to seek emergency care for red-flag symptoms."

const symptomPrompt = "You help patients understand symptoms before a consultation. " +
	"List likely common causes, self-care steps and warning signs that need urgent care, " +
	"then suggest which kind of specialist to see. Do not give a diagnosis."

var ErrRateLimited = httperr.ErrRateLimited("rate_limited", "Too many assistant requests. Please wait a minute.")

// TextGenerator produces the assistant reply for a conversation.
type TextGenerator interface {
	Generate(ctx context.Context, system string, turns []models.ChatMessage) (string, error)
}

type ChatStore interface {
	Load(ctx context.Context, userID string) (*models.Chat, error)
	Append(ctx context.Context, userID string, msgs ...models.ChatMessage) error
	Clear(ctx context.Context, userID string) error
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Reply struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

type SymptomInput struct {
	Symptoms []string
	Age      int
	Gender   string
	Duration string
}

type Service struct {
	llm     TextGenerator
	chats   ChatStore
	limiter RateLimiter
}

func NewService(llm TextGenerator, chats ChatStore, limiter RateLimiter) *Service {
	return &Service{
		llm:     llm,
		chats:   chats,
		limiter: limiter,
	}
}

// ======================================================
// CHAT
// ======================================================

func (s *Service) Chat(ctx context.Context, actor identity.Actor, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, httperr.ErrValidation("missing_fields", "message is required.")
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, httperr.ErrValidation("message_too_long", "Messages are limited to 2000 characters.")
	}

	if err := s.allow(ctx, actor); err != nil {
		return nil, err
	}

	chat, err := s.chats.Load(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	userMsg := models.ChatMessage{Role: models.ChatRoleUser, Content: message, CreatedAt: timezone.Now()}
	turns := append(lastTurns(chat.Messages, HistoryTurns-1), userMsg)

	text, err := s.llm.Generate(ctx, chatPrompt, turns)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", actor.UserID).Msg("chatbot generation failed")
		return &Reply{Reply: FallbackMessage, Fallback: true}, nil
	}

	botMsg := models.ChatMessage{Role: models.ChatRoleAssistant, Content: text, CreatedAt: timezone.Now()}
	if err := s.chats.Append(ctx, actor.UserID, userMsg, botMsg); err != nil {
		return nil, fmt.Errorf("save transcript: %w", err)
	}

	return &Reply{Reply: text}, nil
}

func (s *Service) History(ctx context.Context, actor identity.Actor) ([]models.ChatMessage, error) {
	chat, err := s.chats.Load(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return chat.Messages, nil
}

func (s *Service) ClearHistory(ctx context.Context, actor identity.Actor) error {
	return s.chats.Clear(ctx, actor.UserID)
}

// ======================================================
// SYMPTOM CHECKER
// ======================================================

func (s *Service) CheckSymptoms(ctx context.Context, actor identity.Actor, in SymptomInput) (*Reply, error) {
	symptoms := make([]string, 0, len(in.Symptoms))
	for _, sy := range in.Symptoms {
		if sy = strings.TrimSpace(sy); sy != "" {
			symptoms = append(symptoms, sy)
		}
	}
	if len(symptoms) == 0 {
		return nil, httperr.ErrValidation("symptoms_required", "List at least one symptom.")
	}
	if in.Age < 0 || in.Age > 130 {
		return nil, httperr.ErrValidation("invalid_age", "Age must be between 0 and 130.")
	}

	if err := s.allow(ctx, actor); err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Symptoms: %s.", strings.Join(symptoms, ", "))
	if in.Age > 0 {
		fmt.Fprintf(&b, " Age: %d.", in.Age)
	}
	if g := strings.TrimSpace(in.Gender); g != "" {
		fmt.Fprintf(&b, " Gender: %s.", g)
	}
	if d := strings.TrimSpace(in.Duration); d != "" {
		fmt.Fprintf(&b, " Duration: %s.", d)
	}

	text, err := s.llm.Generate(ctx, symptomPrompt, []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: b.String()},
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("user_id", actor.UserID).Msg("symptom check failed")
		return &Reply{Reply: FallbackMessage, Fallback: true}, nil
	}
	return &Reply{Reply: text}, nil
}

// allow fails open: a broken limiter must not take the assistant down.
func (s *Service) allow(ctx context.Context, actor identity.Actor) error {
	if s.limiter == nil {
		return nil
	}
	ok, err := s.limiter.Allow(ctx, "assistant:"+actor.UserID)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rate limiter unavailable")
		return nil
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}

func lastTurns(msgs []models.ChatMessage, n int) []models.ChatMessage {
	if len(msgs) <= n {
		return append([]models.ChatMessage(nil), msgs...)
	}
	return append([]models.ChatMessage(nil), msgs[len(msgs)-n:]...)
}
