package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// IReadingRepo интерфейс для работы с сохранёнными чтениями
type IReadingRepo interface {
	Create(ctx context.Context, reading *domain.Reading) error
	GetLiveByUserAndType(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) (*domain.Reading, error)
	// ListLiveLongTerm возвращает живые долгосрочные чтения пользователя
	ListLiveLongTerm(ctx context.Context, userID uuid.UUID) ([]domain.Reading, error)
	// ListLiveTypes возвращает типы, по которым у пользователя есть живое чтение
	ListLiveTypes(ctx context.Context, userID uuid.UUID) ([]domain.ReadingType, error)
	SoftDeleteLive(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) error
	// SoftDeleteAllGenerated помечает удалёнными все чтения пользователя
	SoftDeleteAllGenerated(ctx context.Context, userID uuid.UUID) error
}
