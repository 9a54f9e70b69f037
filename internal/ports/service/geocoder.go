package service

import (
	"context"

	"github.com/pjogani/vedics-api/internal/domain"
)

// IGeocoderService интерфейс для перевода места рождения в координаты
type IGeocoderService interface {
	// Geocode возвращает координаты места; found == false, если место
	// не удалось распознать
	Geocode(ctx context.Context, place string) (lat, lon float64, found bool, err error)
	// RecentRequests возвращает последние обращения к внешнему геокодеру
	RecentRequests(ctx context.Context, limit int) ([]domain.APIRequestLog, error)
}
