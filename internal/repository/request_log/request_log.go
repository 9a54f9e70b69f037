package requestLogRepo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/persistence"
	ports "github.com/pjogani/vedics-api/internal/ports/repository"
)

type requestLogColumns struct {
	TableName    string
	ID           string
	Service      string
	Query        string
	Found        string
	DurationMs   string
	ErrorMessage string
	CreatedAt    string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns requestLogColumns
}

// New создаёт новый репозиторий журнала обращений к внешним API
func New(db persistence.Persistence, log *slog.Logger) ports.IRequestLogRepo {
	return &Repository{
		db:  db,
		Log: log,
		columns: requestLogColumns{
			TableName:    "api_request_logs",
			ID:           "id",
			Service:      "service",
			Query:        "query",
			Found:        "found",
			DurationMs:   "duration_ms",
			ErrorMessage: "error_message",
			CreatedAt:    "created_at",
		},
	}
}

// allColumns возвращает строку со всеми колонками (7 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.Service,
		r.columns.Query,
		r.columns.Found,
		r.columns.DurationMs,
		r.columns.ErrorMessage,
		r.columns.CreatedAt)
}

// Create записывает обращение к внешнему API
func (r *Repository) Create(ctx context.Context, entry *domain.APIRequestLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Service,
		entry.Query,
		entry.Found,
		entry.DurationMs,
		entry.ErrorMessage,
		entry.CreatedAt)
	if err != nil {
		r.Log.Error("failed to create api request log",
			"error", err,
			"service", entry.Service)
		return fmt.Errorf("failed to create api request log: %w", err)
	}
	return nil
}

// ListRecent возвращает последние обращения к сервису
func (r *Repository) ListRecent(ctx context.Context, service string, limit int) ([]domain.APIRequestLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []domain.APIRequestLog
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC LIMIT $2`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.Service,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &entries, query, service, limit)
	if err != nil {
		r.Log.Error("failed to list api request logs",
			"error", err,
			"service", service)
		return nil, fmt.Errorf("failed to list api request logs: %w", err)
	}
	return entries, nil
}
