package readings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
)

// RunMissingReadings генерирует недостающие долгосрочные чтения пользователя.
// Конкурирующие запуски схлопываются: статус переводится в pending одним
// атомарным UPDATE, второй запуск увидит rows == 0 и выйдет.
func (s *Service) RunMissingReadings(ctx context.Context, userID uuid.UUID) error {
	missing, err := s.MissingLongTermTypes(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve missing readings: %w", err)
	}
	if len(missing) == 0 {
		s.log.Debug("no missing long term readings", "user_id", userID)
		return nil
	}

	acquired, err := s.profileRepo.TryMarkPending(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to acquire pending status: %w", err)
	}
	if !acquired {
		s.log.Info("long term generation already pending, skipping", "user_id", userID)
		return nil
	}

	var failed int
	for _, readingType := range missing {
		if _, err := s.GenerateReading(ctx, userID, readingType); err != nil {
			failed++
			s.log.Warn("failed to generate long term reading",
				"user_id", userID,
				"reading_type", readingType,
				"error", err)
		}
	}

	if err := s.profileRepo.SetLongTermStatus(ctx, userID, domain.ReadingStatusCompleted); err != nil {
		return fmt.Errorf("failed to complete long term status: %w", err)
	}

	s.log.Info("long term readings generated",
		"user_id", userID,
		"requested", len(missing),
		"failed", failed)
	return nil
}

// RegenerateReading принудительно перегенерирует одно чтение
func (s *Service) RegenerateReading(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) error {
	if !readingType.IsValid() {
		return fmt.Errorf("unknown reading type: %s", readingType)
	}
	_, err := s.GenerateReading(ctx, userID, readingType)
	return err
}
