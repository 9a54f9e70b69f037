package profiles

import (
	"log/slog"

	"github.com/pjogani/vedics-api/internal/ports/cache"
	"github.com/pjogani/vedics-api/internal/ports/kafka"
	"github.com/pjogani/vedics-api/internal/ports/repository"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

// Service бизнес-логика профилей: данные рождения, расчёт карты,
// инвалидация прогнозов при изменениях
type Service struct {
	ProfileRepo repository.IProfileRepo
	ReadingRepo repository.IReadingRepo
	Geocoder    service.IGeocoderService
	Dispatcher  kafka.IDispatcher
	Cache       cache.Cache
	Log         *slog.Logger
}

// New создаёт новый usecase профилей
func New(
	profileRepo repository.IProfileRepo,
	readingRepo repository.IReadingRepo,
	geocoder service.IGeocoderService,
	dispatcher kafka.IDispatcher,
	c cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		ProfileRepo: profileRepo,
		ReadingRepo: readingRepo,
		Geocoder:    geocoder,
		Dispatcher:  dispatcher,
		Cache:       c,
		Log:         log,
	}
}
