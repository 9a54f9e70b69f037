package conversationRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/persistence"
	ports "github.com/pjogani/vedics-api/internal/ports/repository"
)

type conversationColumns struct {
	TableName   string
	ID          string
	UserID      string
	SessionID   string
	ThreadID    string
	AssistantID string
	IsActive    string
	IsDeleted   string
	CreatedAt   string
	UpdatedAt   string
}

type messageColumns struct {
	TableName      string
	ID             string
	ConversationID string
	Role           string
	Content        string
	CreatedAt      string
}

type Repository struct {
	db       persistence.Persistence
	Log      *slog.Logger
	columns  conversationColumns
	messages messageColumns
}

// New создаёт новый репозиторий для работы с диалогами ассистента
func New(db persistence.Persistence, log *slog.Logger) ports.IConversationRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: conversationColumns{
			TableName:   "conversations",
			ID:          "id",
			UserID:      "user_id",
			SessionID:   "session_id",
			ThreadID:    "thread_id",
			AssistantID: "assistant_id",
			IsActive:    "is_active",
			IsDeleted:   "is_deleted",
			CreatedAt:   "created_at",
			UpdatedAt:   "updated_at",
		},
		messages: messageColumns{
			TableName:      "conversation_messages",
			ID:             "id",
			ConversationID: "conversation_id",
			Role:           "role",
			Content:        "content",
			CreatedAt:      "created_at",
		},
	}
}

// allColumns возвращает строку со всеми колонками диалога (9 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.SessionID,
		r.columns.ThreadID,
		r.columns.AssistantID,
		r.columns.IsActive,
		r.columns.IsDeleted,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Create создаёт новый диалог
func (r *Repository) Create(ctx context.Context, conv *domain.Conversation) error {
	now := time.Now().UTC()
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	conv.CreatedAt = now
	conv.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		conv.ID,
		conv.UserID,
		conv.SessionID,
		conv.ThreadID,
		conv.AssistantID,
		conv.IsActive,
		conv.IsDeleted,
		conv.CreatedAt,
		conv.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create conversation",
			"error", err,
			"user_id", conv.UserID,
			"session_id", conv.SessionID)
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	r.Log.Debug("conversation created successfully",
		"id", conv.ID,
		"user_id", conv.UserID)
	return nil
}

// GetActive получает активный диалог пользователя в сессии
func (r *Repository) GetActive(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.Conversation, error) {
	var conv domain.Conversation
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s AND NOT %s ORDER BY %s DESC LIMIT 1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.SessionID,
		r.columns.IsActive,
		r.columns.IsDeleted,
		r.columns.CreatedAt)
	err := r.db.Get(ctx, &conv, query, userID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conversation not found: %w", domain.ErrNotFound)
		}
		r.Log.Error("failed to get active conversation",
			"error", err,
			"user_id", userID,
			"session_id", sessionID)
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

// SetThreadID сохраняет идентификатор треда модели для диалога
func (r *Repository) SetThreadID(ctx context.Context, id uuid.UUID, threadID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		r.columns.TableName,
		r.columns.ThreadID,
		r.columns.UpdatedAt,
		r.columns.ID)
	rows, err := r.db.ExecWithResult(ctx, query, id, threadID, time.Now().UTC())
	if err != nil {
		r.Log.Error("failed to set thread id",
			"error", err,
			"conversation_id", id)
		return fmt.Errorf("failed to set thread id: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("conversation not found: %w", domain.ErrNotFound)
	}
	return nil
}

// Deactivate закрывает все активные диалоги пользователя
func (r *Repository) Deactivate(ctx context.Context, userID uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = $2 WHERE %s = $1 AND %s`,
		r.columns.TableName,
		r.columns.IsActive,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.IsActive)
	if err := r.db.Exec(ctx, query, userID, time.Now().UTC()); err != nil {
		r.Log.Error("failed to deactivate conversations",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to deactivate conversations: %w", err)
	}
	return nil
}

// AddMessage сохраняет сообщение диалога
func (r *Repository) AddMessage(ctx context.Context, msg *domain.ConversationMessage) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	msg.CreatedAt = time.Now().UTC()

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
		r.messages.TableName,
		r.messages.ID,
		r.messages.ConversationID,
		r.messages.Role,
		r.messages.Content,
		r.messages.CreatedAt)
	err := r.db.Exec(ctx, query,
		msg.ID,
		msg.ConversationID,
		msg.Role,
		msg.Content,
		msg.CreatedAt)
	if err != nil {
		r.Log.Error("failed to add conversation message",
			"error", err,
			"conversation_id", msg.ConversationID)
		return fmt.Errorf("failed to add message: %w", err)
	}
	return nil
}

// ListMessages возвращает сообщения диалога в хронологическом порядке
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMessage, error) {
	var messages []domain.ConversationMessage
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s`,
		r.messages.ID,
		r.messages.ConversationID,
		r.messages.Role,
		r.messages.Content,
		r.messages.CreatedAt,
		r.messages.TableName,
		r.messages.ConversationID,
		r.messages.CreatedAt)
	err := r.db.Select(ctx, &messages, query, conversationID)
	if err != nil {
		r.Log.Error("failed to list conversation messages",
			"error", err,
			"conversation_id", conversationID)
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
