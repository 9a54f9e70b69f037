package repository

import (
	"context"

	"github.com/pjogani/vedics-api/internal/domain"
)

// IRequestLogRepo интерфейс журнала обращений к внешним API
type IRequestLogRepo interface {
	Create(ctx context.Context, entry *domain.APIRequestLog) error
	ListRecent(ctx context.Context, service string, limit int) ([]domain.APIRequestLog, error)
}
