package service

import (
	"context"

	"github.com/pjogani/vedics-api/internal/domain"
)

// IModelGateway интерфейс для общения с языковой моделью.
// Методы не возвращают ошибку генерации: при любом сбое возвращается
// reply с Kind == ReplyUnavailable, чтобы вызывающий код всегда имел ответ.
type IModelGateway interface {
	// Complete одиночный запрос без сохранения контекста
	Complete(ctx context.Context, messages []domain.ChatMessage) domain.ModelReply
	// OpenThread создаёт новый тред ассистента
	OpenThread(ctx context.Context) (string, error)
	// Post добавляет сообщение пользователя в тред
	Post(ctx context.Context, threadID, content string) error
	// AwaitReply запускает генерацию в треде и ждёт ответа
	AwaitReply(ctx context.Context, threadID string) domain.ModelReply
}
