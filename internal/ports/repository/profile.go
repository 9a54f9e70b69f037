package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// IProfileRepo интерфейс для работы с астрологическими профилями пользователей
type IProfileRepo interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	SetLongTermStatus(ctx context.Context, userID uuid.UUID, status domain.ReadingStatus) error
	// TryMarkPending атомарно переводит статус в pending; false, если статус уже pending
	TryMarkPending(ctx context.Context, userID uuid.UUID) (bool, error)
	// ListWithBirthData возвращает профили, по которым можно строить чтения
	ListWithBirthData(ctx context.Context) ([]domain.Profile, error)
}
