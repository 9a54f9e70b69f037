package readings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// TodayReading возвращает дневное чтение пользователя. Чтение, созданное
// до начала текущих суток UTC, считается устаревшим и перегенерируется
// одиночным запросом: вызов идёт из обработчика HTTP, тредовый опрос
// здесь недопустим.
func (s *Service) TodayReading(ctx context.Context, userID uuid.UUID) (*domain.Reading, error) {
	reading, err := s.readingRepo.GetLiveByUserAndType(ctx, userID, domain.ReadingToday)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if reading != nil && sameUTCDay(reading.CreatedAt, time.Now()) {
		return reading, nil
	}

	return s.GenerateReadingDirect(ctx, userID, domain.ReadingToday)
}

// GenerateDailyForAllUsers генерирует дневное чтение всем пользователям
// с заполненными данными рождения; возвращает количество успешных генераций
func (s *Service) GenerateDailyForAllUsers(ctx context.Context) (int, error) {
	profiles, err := s.profileRepo.ListWithBirthData(ctx)
	if err != nil {
		return 0, err
	}

	var generated int
	for _, profile := range profiles {
		if ctx.Err() != nil {
			return generated, ctx.Err()
		}
		if _, err := s.GenerateReading(ctx, profile.UserID, domain.ReadingToday); err != nil {
			s.log.Warn("failed to generate daily reading",
				"user_id", profile.UserID,
				"error", err)
			continue
		}
		generated++
	}

	s.log.Info("daily readings generated",
		"total_profiles", len(profiles),
		"generated", generated)
	return generated, nil
}

// sameUTCDay проверяет, что оба момента приходятся на одни сутки UTC
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
