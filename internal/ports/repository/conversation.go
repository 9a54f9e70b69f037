package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// IConversationRepo интерфейс для работы с диалогами ассистента
type IConversationRepo interface {
	Create(ctx context.Context, conv *domain.Conversation) error
	GetActive(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error)
	SetThreadID(ctx context.Context, id uuid.UUID, threadID string) error
	Deactivate(ctx context.Context, userID uuid.UUID) error

	AddMessage(ctx context.Context, msg *domain.ConversationMessage) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMessage, error)
}
