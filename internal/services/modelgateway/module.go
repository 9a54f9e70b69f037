package modelgateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/pjogani/vedics-api/internal/adapters/secondary/openai"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/pkg/normalizer"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

const (
	// ApologyText возвращается пользователю, когда генерация не удалась
	ApologyText = "Sorry, I'm having trouble generating your reading. Please try again later."

	pollInterval = 500 * time.Millisecond
	pollBudget   = 60
)

// Service реализует IModelGateway поверх клиента OpenAI.
// Все сбои превращаются в reply с Kind == ReplyUnavailable, сама генерация
// никогда не возвращает ошибку наружу.
type Service struct {
	client *openai.Client
	log    *slog.Logger
}

// New создаёт новый шлюз к языковой модели
func New(client *openai.Client, log *slog.Logger) service.IModelGateway {
	return &Service{
		client: client,
		log:    log,
	}
}

// Complete одиночный запрос без сохранения контекста
func (s *Service) Complete(ctx context.Context, messages []domain.ChatMessage) domain.ModelReply {
	apiMessages := make([]openai.Message, 0, len(messages))
	for _, m := range messages {
		apiMessages = append(apiMessages, openai.Message{Role: m.Role, Content: m.Content})
	}

	text, err := s.client.CreateChatCompletion(ctx, apiMessages)
	if err != nil {
		s.log.Warn("chat completion failed", "error", err)
		return domain.UnavailableReply(ApologyText)
	}

	return normalizer.Normalize(text)
}

// OpenThread создаёт новый тред ассистента
func (s *Service) OpenThread(ctx context.Context) (string, error) {
	return s.client.CreateThread(ctx)
}

// Post добавляет сообщение пользователя в тред. Каждое сообщение получает
// префикс с текущим временем, чтобы ассистент видел хронологию диалога.
func (s *Service) Post(ctx context.Context, threadID, content string) error {
	stamped := time.Now().UTC().Format("2006-01-02 15:04:05") + ": " + content
	return s.client.AddMessage(ctx, threadID, stamped)
}

// AwaitReply запускает ассистента в треде и опрашивает состояние run,
// пока тот не завершится или не исчерпается бюджет попыток
func (s *Service) AwaitReply(ctx context.Context, threadID string) domain.ModelReply {
	run, err := s.client.CreateRun(ctx, threadID)
	if err != nil {
		s.log.Warn("failed to create run", "thread_id", threadID, "error", err)
		return domain.UnavailableReply(ApologyText)
	}

	for attempt := 0; attempt < pollBudget && !run.IsTerminal(); attempt++ {
		select {
		case <-ctx.Done():
			s.log.Warn("run polling cancelled", "thread_id", threadID, "run_id", run.ID)
			return domain.UnavailableReply(ApologyText)
		case <-time.After(pollInterval):
		}

		run, err = s.client.GetRun(ctx, threadID, run.ID)
		if err != nil {
			s.log.Warn("failed to poll run", "thread_id", threadID, "error", err)
			return domain.UnavailableReply(ApologyText)
		}
	}

	if run.Status != openai.RunStatusCompleted {
		s.log.Warn("run did not complete", "thread_id", threadID, "run_id", run.ID, "status", run.Status)
		return domain.UnavailableReply(ApologyText)
	}

	text, err := s.client.LatestAssistantMessage(ctx, threadID)
	if err != nil {
		s.log.Warn("failed to fetch assistant message", "thread_id", threadID, "error", err)
		return domain.UnavailableReply(ApologyText)
	}

	return normalizer.Normalize(text)
}
