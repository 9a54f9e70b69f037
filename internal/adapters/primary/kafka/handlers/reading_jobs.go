package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"log/slog"

	"github.com/google/uuid"

	kafkaAdapter "github.com/pjogani/vedics-api/internal/adapters/secondary/kafka"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/usecases/readings"
)

// ReadingJobsHandler обрабатывает задания на генерацию прогнозов из Kafka
type ReadingJobsHandler struct {
	readings *readings.Service
	log      *slog.Logger
}

// NewReadingJobsHandler создаёт новый обработчик заданий
func NewReadingJobsHandler(readingsService *readings.Service, log *slog.Logger) *ReadingJobsHandler {
	return &ReadingJobsHandler{
		readings: readingsService,
		log:      log,
	}
}

// HandleMessage разбирает задание и запускает генерацию.
// Неразбираемое или неизвестное задание пропускается как бизнес-ошибка,
// чтобы не блокировать партицию бесконечными ретраями.
func (h *ReadingJobsHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var job kafkaAdapter.ReadingJob
	if err := json.Unmarshal(value, &job); err != nil {
		h.log.Error("failed to unmarshal reading job", "error", err, "key", key)
		return domain.WrapBusinessError(fmt.Errorf("malformed reading job: %w", err))
	}

	userID, err := uuid.Parse(job.UserID)
	if err != nil {
		h.log.Error("invalid user_id in reading job", "error", err, "user_id", job.UserID)
		return domain.WrapBusinessError(fmt.Errorf("invalid user_id: %w", err))
	}

	h.log.Info("reading job received",
		"action", job.Action,
		"user_id", userID,
		"reading_type", job.ReadingType,
	)

	switch job.Action {
	case kafkaAdapter.ActionGenerateMissing:
		return h.readings.RunMissingReadings(ctx, userID)
	case kafkaAdapter.ActionRegenerateReading:
		return h.readings.RegenerateReading(ctx, userID, domain.ReadingType(job.ReadingType))
	default:
		h.log.Warn("unknown reading job action", "action", job.Action, "user_id", userID)
		return domain.WrapBusinessError(fmt.Errorf("unknown action: %s", job.Action))
	}
}
