package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIRequestLog запись об исходящем запросе к внешнему сервису (геокодер).
// Append-only таблица для диагностики.
type APIRequestLog struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Service      string    `json:"service" db:"service"`
	Query        string    `json:"query" db:"query"`
	Found        bool      `json:"found" db:"found"`
	DurationMs   int64     `json:"duration_ms" db:"duration_ms"`
	ErrorMessage *string   `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
