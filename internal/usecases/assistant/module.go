package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/repository"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

// Service диалоги пользователя с ассистентом: хранит переписку в БД
// и ведёт серверный тред у провайдера модели
type Service struct {
	ConversationRepo repository.IConversationRepo
	ProfileRepo      repository.IProfileRepo
	Gateway          service.IModelGateway
	AssistantID      string
	Log              *slog.Logger
}

// New создаёт новый usecase ассистента
func New(
	conversationRepo repository.IConversationRepo,
	profileRepo repository.IProfileRepo,
	gateway service.IModelGateway,
	assistantID string,
	log *slog.Logger,
) *Service {
	return &Service{
		ConversationRepo: conversationRepo,
		ProfileRepo:      profileRepo,
		Gateway:          gateway,
		AssistantID:      assistantID,
		Log:              log,
	}
}

// ChatResult ответ ассистента вместе с идентификатором диалога
type ChatResult struct {
	Reply          string    `json:"reply"`
	ConversationID uuid.UUID `json:"conversation_id"`
}

// Chat добавляет реплику пользователя в диалог сессии и возвращает ответ
// ассистента. Новый диалог создаётся автоматически; при первом сообщении
// тред засеивается данными рождения, картой и языковой инструкцией.
func (s *Service) Chat(ctx context.Context, userID uuid.UUID, sessionID, userInput string) (*ChatResult, error) {
	conv, err := s.ConversationRepo.GetActive(ctx, userID, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		conv = &domain.Conversation{
			UserID:      userID,
			SessionID:   sessionID,
			AssistantID: s.AssistantID,
			IsActive:    true,
		}
		if err := s.ConversationRepo.Create(ctx, conv); err != nil {
			return nil, err
		}
	}

	if conv.ThreadID == nil {
		threadID, err := s.openAndSeedThread(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.ConversationRepo.SetThreadID(ctx, conv.ID, threadID); err != nil {
			return nil, err
		}
		conv.ThreadID = &threadID
	}

	if err := s.ConversationRepo.AddMessage(ctx, &domain.ConversationMessage{
		ConversationID: conv.ID,
		Role:           "user",
		Content:        userInput,
	}); err != nil {
		return nil, err
	}

	if err := s.Gateway.Post(ctx, *conv.ThreadID, userInput); err != nil {
		return nil, fmt.Errorf("failed to post message to thread: %w", err)
	}

	reply := s.Gateway.AwaitReply(ctx, *conv.ThreadID)
	replyText := replyToText(reply)

	if err := s.ConversationRepo.AddMessage(ctx, &domain.ConversationMessage{
		ConversationID: conv.ID,
		Role:           "assistant",
		Content:        replyText,
	}); err != nil {
		return nil, err
	}

	return &ChatResult{
		Reply:          replyText,
		ConversationID: conv.ID,
	}, nil
}

// openAndSeedThread создаёт тред и передаёт ассистенту контекст пользователя
func (s *Service) openAndSeedThread(ctx context.Context, userID uuid.UUID) (string, error) {
	threadID, err := s.Gateway.OpenThread(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to open thread: %w", err)
	}

	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		s.Log.Warn("profile missing, thread seeded without birth info", "user_id", userID)
		return threadID, nil
	}

	info := fmt.Sprintf(
		"This is the user's information: Birth Date: %s, Birth Time: %s UTC, Place of Birth: %s, Latitude: %s, Longitude: %s. The responses in this thread should be strictly in %s language.",
		formatDate(profile.DateOfBirth),
		formatTime(profile.TimeOfBirth),
		stringOr(profile.PlaceOfBirth, "unknown"),
		floatOr(profile.Latitude),
		floatOr(profile.Longitude),
		profile.PreferredLanguage,
	)
	if err := s.Gateway.Post(ctx, threadID, info); err != nil {
		return "", fmt.Errorf("failed to seed thread with birth info: %w", err)
	}

	if len(profile.BirthChart) > 0 {
		chartMsg := fmt.Sprintf("This is the user's birth chart: %s", profile.BirthChart)
		if err := s.Gateway.Post(ctx, threadID, chartMsg); err != nil {
			return "", fmt.Errorf("failed to seed thread with birth chart: %w", err)
		}
	}

	return threadID, nil
}

// Messages возвращает переписку активного диалога сессии
func (s *Service) Messages(ctx context.Context, userID uuid.UUID, sessionID string) ([]domain.ConversationMessage, error) {
	conv, err := s.ConversationRepo.GetActive(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.ConversationRepo.ListMessages(ctx, conv.ID)
}

// Reset закрывает активные диалоги пользователя; следующее сообщение
// начнёт новый тред
func (s *Service) Reset(ctx context.Context, userID uuid.UUID) error {
	return s.ConversationRepo.Deactivate(ctx, userID)
}

// replyToText приводит ответ модели к тексту для хранения и выдачи
func replyToText(reply domain.ModelReply) string {
	switch reply.Kind {
	case domain.ReplyStructured:
		return string(reply.Value)
	case domain.ReplyRaw:
		return reply.Text
	default:
		return reply.Reason
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format("15:04")
}

func stringOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func floatOr(f *float64) string {
	if f == nil {
		return "unknown"
	}
	return strconv.FormatFloat(*f, 'f', 4, 64)
}
