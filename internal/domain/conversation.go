package domain

import (
	"time"

	"github.com/google/uuid"
)

// Conversation диалог пользователя с ассистентом. ThreadID - идентификатор
// серверного треда у провайдера модели, появляется при первом сообщении.
type Conversation struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	SessionID   string    `json:"session_id" db:"session_id"`
	ThreadID    *string   `json:"thread_id,omitempty" db:"thread_id"`
	AssistantID string    `json:"assistant_id" db:"assistant_id"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsDeleted   bool      `json:"-" db:"is_deleted"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ConversationMessage сообщение диалога (реплика пользователя или ассистента)
type ConversationMessage struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ConversationID uuid.UUID `json:"conversation_id" db:"conversation_id"`
	Role           string    `json:"role" db:"role"` // "user" | "assistant"
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
