package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

const chartCacheTTL = 24 * time.Hour

func chartCacheKey(userID uuid.UUID) string {
	return "profiles:chart:" + userID.String()
}

// GetChart возвращает рассчитанную натальную карту пользователя.
// Карта кешируется в Redis на сутки; при отсутствии данных рождения
// возвращается ErrNotFound.
func (s *Service) GetChart(ctx context.Context, userID uuid.UUID) (domain.ChartJSON, error) {
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, chartCacheKey(userID)); err == nil && cached != "" {
			return domain.ChartJSON(cached), nil
		}
	}

	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(profile.BirthChart) == 0 {
		return nil, fmt.Errorf("birth chart is not computed: %w", domain.ErrNotFound)
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, chartCacheKey(userID), string(profile.BirthChart), chartCacheTTL); err != nil {
			s.Log.Warn("failed to cache birth chart", "user_id", userID, "error", err)
		}
	}

	return profile.BirthChart, nil
}

// invalidateChartCache сбрасывает кеш карты после изменения профиля
func (s *Service) invalidateChartCache(ctx context.Context, userID uuid.UUID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, chartCacheKey(userID)); err != nil {
		s.Log.Warn("failed to invalidate chart cache", "user_id", userID, "error", err)
	}
}

// ReadingStatus возвращает статус фоновой генерации долгосрочных прогнозов
func (s *Service) ReadingStatus(ctx context.Context, userID uuid.UUID) (domain.ReadingStatus, error) {
	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return profile.LongTermStatus, nil
}
