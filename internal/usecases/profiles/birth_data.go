package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/pkg/ephemeris"
)

// GetOrCreate возвращает профиль пользователя, создавая пустой при первом
// обращении
func (s *Service) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.ProfileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	profile = &domain.Profile{
		UserID:            userID,
		PreferredLanguage: "English",
		LongTermStatus:    domain.ReadingStatusIdle,
	}
	if err := s.ProfileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// UpdateBirthData применяет изменения данных рождения. При смене даты,
// времени или места заново геокодируется место и пересчитывается карта;
// при любом значимом изменении прежние прогнозы помечаются удалёнными,
// статус переводится в reeval и ставится фоновая задача генерации.
func (s *Service) UpdateBirthData(ctx context.Context, userID uuid.UUID, in domain.BirthData) (*domain.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	chartInvalidated, readingsInvalidated := profile.ApplyBirthData(in)

	if chartInvalidated {
		s.resolveChart(ctx, profile)
	}

	if err := s.ProfileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.invalidateChartCache(ctx, userID)

	if readingsInvalidated {
		if err := s.ReadingRepo.SoftDeleteAllGenerated(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to invalidate readings: %w", err)
		}
		if err := s.ProfileRepo.SetLongTermStatus(ctx, userID, domain.ReadingStatusReeval); err != nil {
			return nil, fmt.Errorf("failed to mark profile for reevaluation: %w", err)
		}
		profile.LongTermStatus = domain.ReadingStatusReeval

		if s.Dispatcher != nil {
			if err := s.Dispatcher.DispatchMissingReadings(ctx, userID); err != nil {
				// генерация догонит по расписанию или при следующем запросе
				s.Log.Warn("failed to dispatch reading generation",
					"user_id", userID,
					"error", err)
			}
		}
	}

	return profile, nil
}

// resolveChart геокодирует место рождения и пересчитывает карту.
// Нераспознанное место оставляет координаты пустыми, карта не считается.
func (s *Service) resolveChart(ctx context.Context, profile *domain.Profile) {
	if profile.PlaceOfBirth == nil || *profile.PlaceOfBirth == "" {
		return
	}

	lat, lon, found, err := s.Geocoder.Geocode(ctx, *profile.PlaceOfBirth)
	if err != nil {
		s.Log.Warn("geocoding failed",
			"user_id", profile.UserID,
			"place", *profile.PlaceOfBirth,
			"error", err)
		return
	}
	if !found {
		s.Log.Warn("place of birth not recognized",
			"user_id", profile.UserID,
			"place", *profile.PlaceOfBirth)
		return
	}

	profile.Latitude = &lat
	profile.Longitude = &lon

	birthUTC, ok := profile.BirthDateTimeUTC()
	if !ok {
		return
	}

	chart := ephemeris.ComputeChart(birthUTC, lat, lon)
	chartJSON, err := chart.JSON()
	if err != nil {
		s.Log.Error("failed to serialize birth chart",
			"user_id", profile.UserID,
			"error", err)
		return
	}

	now := time.Now().UTC()
	profile.BirthChart = chartJSON
	profile.ChartComputedAt = &now
}
