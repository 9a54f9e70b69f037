package geocoder

import (
	"context"
	"log/slog"
	"strings"
	"time"

	geocoderAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/geocoder"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/repository"
	"github.com/pjogani/vedics-api/internal/ports/service"
)

const serviceName = "nominatim"

// Service реализует IGeocoderService: локальный разбор координат, затем
// Nominatim с повторной попыткой по первой части адреса. Каждое внешнее
// обращение записывается в журнал запросов.
type Service struct {
	client     *geocoderAdapter.Client
	requestLog repository.IRequestLogRepo
	log        *slog.Logger
}

// New создаёт новый сервис геокодирования
func New(client *geocoderAdapter.Client, requestLog repository.IRequestLogRepo, log *slog.Logger) service.IGeocoderService {
	return &Service{
		client:     client,
		requestLog: requestLog,
		log:        log,
	}
}

// Geocode переводит место рождения в координаты. Строки вида "48.85, 2.35"
// разбираются локально без обращения к внешнему API. Нераспознанное место
// возвращается как found == false, координаты при этом не подменяются.
func (s *Service) Geocode(ctx context.Context, place string) (lat, lon float64, found bool, err error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return 0, 0, false, nil
	}

	if lat, lon, ok := domain.ParseCoordinates(place); ok {
		return lat, lon, true, nil
	}

	lat, lon, found, err = s.search(ctx, place)
	if err != nil || found {
		return lat, lon, found, err
	}

	// вторая попытка: только первая часть адреса ("Mumbai, India" -> "Mumbai")
	if idx := strings.Index(place, ","); idx > 0 {
		firstPart := strings.TrimSpace(place[:idx])
		if firstPart != "" && firstPart != place {
			return s.search(ctx, firstPart)
		}
	}

	return 0, 0, false, nil
}

// RecentRequests возвращает последние обращения к Nominatim из журнала
func (s *Service) RecentRequests(ctx context.Context, limit int) ([]domain.APIRequestLog, error) {
	return s.requestLog.ListRecent(ctx, serviceName, limit)
}

// search обращается к Nominatim и журналирует результат
func (s *Service) search(ctx context.Context, query string) (lat, lon float64, found bool, err error) {
	start := time.Now()
	lat, lon, found, err = s.client.Search(ctx, query)
	durationMs := time.Since(start).Milliseconds()

	entry := &domain.APIRequestLog{
		Service:    serviceName,
		Query:      query,
		Found:      found,
		DurationMs: durationMs,
	}
	if err != nil {
		msg := err.Error()
		entry.ErrorMessage = &msg
	}

	if logErr := s.requestLog.Create(ctx, entry); logErr != nil {
		s.log.Warn("failed to record geocoder request", "error", logErr, "query", query)
	}

	return lat, lon, found, err
}
