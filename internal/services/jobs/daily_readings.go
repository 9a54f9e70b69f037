package jobs

import (
	"context"
	"log/slog"
	"time"

	readingsUsecase "github.com/pjogani/vedics-api/internal/usecases/readings"
)

const dailyReadingsJobName = "daily-readings"

// DailyReadings джоба пересчёта прогноза на день для всех профилей
// с данными рождения, каждый день в 05:00 UTC
type DailyReadings struct {
	readingsService *readingsUsecase.Service
	log             *slog.Logger
}

// NewDailyReadings создаёт новую джобу генерации дневных прогнозов
func NewDailyReadings(readingsService *readingsUsecase.Service, log *slog.Logger) *DailyReadings {
	return &DailyReadings{
		readingsService: readingsService,
		log:             log,
	}
}

func (j *DailyReadings) Name() string {
	return dailyReadingsJobName
}

// NextRun вычисляет следующее время запуска
func (j *DailyReadings) NextRun(now time.Time) time.Time {
	nowUTC := now.UTC()

	next := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 5, 0, 0, 0, time.UTC)
	if next.Before(nowUTC) || next.Equal(nowUTC) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run генерирует дневные прогнозы для всех пользователей
func (j *DailyReadings) Run(ctx context.Context) error {
	generated, err := j.readingsService.GenerateDailyForAllUsers(ctx)
	if err != nil {
		return err
	}

	j.log.Info("daily readings generated", "count", generated)
	return nil
}
