package readingRepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pjogani/vedics-api/internal/domain"
	"github.com/pjogani/vedics-api/internal/ports/persistence"
	ports "github.com/pjogani/vedics-api/internal/ports/repository"
)

type readingColumns struct {
	TableName   string
	ID          string
	UserID      string
	ReadingType string
	Content     string
	IsDeleted   string
	CreatedAt   string
	UpdatedAt   string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns readingColumns
}

// New создаёт новый репозиторий для работы с чтениями
func New(db persistence.Persistence, log *slog.Logger) ports.IReadingRepo {
	cols := readingColumns{
		TableName:   "readings",
		ID:          "id",
		UserID:      "user_id",
		ReadingType: "reading_type",
		Content:     "content",
		IsDeleted:   "is_deleted",
		CreatedAt:   "created_at",
		UpdatedAt:   "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (7 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.ReadingType,
		r.columns.Content,
		r.columns.IsDeleted,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Create сохраняет новое чтение
func (r *Repository) Create(ctx context.Context, reading *domain.Reading) error {
	now := time.Now().UTC()
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}
	reading.CreatedAt = now
	reading.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		reading.ID,
		reading.UserID,
		reading.ReadingType,
		reading.Content,
		reading.IsDeleted,
		reading.CreatedAt,
		reading.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create reading",
			"error", err,
			"user_id", reading.UserID,
			"reading_type", reading.ReadingType)
		return fmt.Errorf("failed to create reading: %w", err)
	}
	r.Log.Debug("reading created successfully",
		"id", reading.ID,
		"user_id", reading.UserID,
		"reading_type", reading.ReadingType)
	return nil
}

// GetLiveByUserAndType получает живое чтение пользователя по типу
func (r *Repository) GetLiveByUserAndType(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) (*domain.Reading, error) {
	var reading domain.Reading
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND NOT %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.ReadingType,
		r.columns.IsDeleted)
	err := r.db.Get(ctx, &reading, query, userID, readingType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reading not found: %w", domain.ErrNotFound)
		}
		r.Log.Error("failed to get reading",
			"error", err,
			"user_id", userID,
			"reading_type", readingType)
		return nil, fmt.Errorf("failed to get reading: %w", err)
	}
	return &reading, nil
}

// ListLiveLongTerm возвращает живые долгосрочные чтения пользователя
func (r *Repository) ListLiveLongTerm(ctx context.Context, userID uuid.UUID) ([]domain.Reading, error) {
	var readings []domain.Reading
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s <> $2 AND NOT %s ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID,
		r.columns.ReadingType,
		r.columns.IsDeleted,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &readings, query, userID, domain.ReadingToday)
	if err != nil {
		r.Log.Error("failed to list long term readings",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list long term readings: %w", err)
	}
	return readings, nil
}

// ListLiveTypes возвращает типы, по которым у пользователя есть живое чтение
func (r *Repository) ListLiveTypes(ctx context.Context, userID uuid.UUID) ([]domain.ReadingType, error) {
	var types []domain.ReadingType
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND NOT %s`,
		r.columns.ReadingType,
		r.columns.TableName,
		r.columns.UserID,
		r.columns.IsDeleted)
	err := r.db.Select(ctx, &types, query, userID)
	if err != nil {
		r.Log.Error("failed to list reading types",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list reading types: %w", err)
	}
	return types, nil
}

// SoftDeleteLive помечает удалённым живое чтение пользователя по типу
func (r *Repository) SoftDeleteLive(ctx context.Context, userID uuid.UUID, readingType domain.ReadingType) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $3 WHERE %s = $1 AND %s = $2 AND NOT %s`,
		r.columns.TableName,
		r.columns.IsDeleted,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.ReadingType,
		r.columns.IsDeleted)
	if err := r.db.Exec(ctx, query, userID, readingType, time.Now().UTC()); err != nil {
		r.Log.Error("failed to soft delete reading",
			"error", err,
			"user_id", userID,
			"reading_type", readingType)
		return fmt.Errorf("failed to soft delete reading: %w", err)
	}
	return nil
}

// SoftDeleteAllGenerated помечает удалёнными все чтения пользователя.
// Используется при смене данных рождения или языка.
func (r *Repository) SoftDeleteAllGenerated(ctx context.Context, userID uuid.UUID) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE, %s = $2 WHERE %s = $1 AND NOT %s`,
		r.columns.TableName,
		r.columns.IsDeleted,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.IsDeleted)
	if err := r.db.Exec(ctx, query, userID, time.Now().UTC()); err != nil {
		r.Log.Error("failed to soft delete readings",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to soft delete readings: %w", err)
	}
	r.Log.Debug("all readings soft deleted", "user_id", userID)
	return nil
}
