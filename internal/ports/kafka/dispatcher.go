package kafka

import (
	"context"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// IDispatcher интерфейс для постановки фоновых задач генерации чтений
type IDispatcher interface {
	// DispatchMissingReadings ставит задачу досоздать недостающие
	// долгосрочные чтения пользователя
	DispatchMissingReadings(ctx context.Context, userID uuid.UUID) error
	// DispatchRegenerate ставит задачу перегенерировать одно чтение
	DispatchRegenerate(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) error
	// Close закрывает producer
	Close() error
}
