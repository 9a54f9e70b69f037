package profileRepo

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

type profileColumns struct {
	TableName         string
	ID                string
	UserID            string
	DateOfBirth       string
	TimeOfBirth       string
	PlaceOfBirth      string
	Latitude          string
	Longitude         string
	PreferredLanguage string
	BirthChart        string
	ChartComputedAt   string
	LongTermStatus    string
	CreatedAt         string
	UpdatedAt         string
}

type Repository struct {
	db      persistence.Persistence
	Log     *slog.Logger
	columns profileColumns
}

// New создаёт новый репозиторий для работы с профилями
func New(db persistence.Persistence, log *slog.Logger) ports.IProfileRepo {
	cols := profileColumns{
		TableName:         "profiles",
		ID:                "id",
		UserID:            "user_id",
		DateOfBirth:       "date_of_birth",
		TimeOfBirth:       "time_of_birth",
		PlaceOfBirth:      "place_of_birth",
		Latitude:          "latitude",
		Longitude:         "longitude",
		PreferredLanguage: "preferred_language",
		BirthChart:        "birth_chart",
		ChartComputedAt:   "chart_computed_at",
		LongTermStatus:    "long_term_status",
		CreatedAt:         "created_at",
		UpdatedAt:         "updated_at",
	}
	return &Repository{
		db:      db,
		Log:     log,
		columns: cols,
	}
}

// allColumns возвращает строку со всеми колонками (13 колонок)
func (r *Repository) allColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		r.columns.ID,
		r.columns.UserID,
		r.columns.DateOfBirth,
		r.columns.TimeOfBirth,
		r.columns.PlaceOfBirth,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.PreferredLanguage,
		r.columns.BirthChart,
		r.columns.ChartComputedAt,
		r.columns.LongTermStatus,
		r.columns.CreatedAt,
		r.columns.UpdatedAt)
}

// Create создаёт новый профиль
func (r *Repository) Create(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.columns.TableName,
		r.allColumns())
	err := r.db.Exec(ctx, query,
		profile.ID,
		profile.UserID,
		profile.DateOfBirth,
		profile.TimeOfBirth,
		profile.PlaceOfBirth,
		profile.Latitude,
		profile.Longitude,
		profile.PreferredLanguage,
		profile.BirthChart,
		profile.ChartComputedAt,
		profile.LongTermStatus,
		profile.CreatedAt,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to create profile",
			"error", err,
			"user_id", profile.UserID)
		return fmt.Errorf("failed to create profile: %w", err)
	}
	r.Log.Debug("profile created successfully",
		"id", profile.ID,
		"user_id", profile.UserID)
	return nil
}

// GetByUserID получает профиль по идентификатору пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.UserID)
	err := r.db.Get(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.Log.Warn("profile not found", "user_id", userID)
			return nil, fmt.Errorf("profile not found: %w", domain.ErrNotFound)
		}
		r.Log.Error("failed to get profile",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update обновляет профиль целиком
func (r *Repository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10, %s = $11 WHERE %s = $1`,
		r.columns.TableName,
		r.columns.DateOfBirth,
		r.columns.TimeOfBirth,
		r.columns.PlaceOfBirth,
		r.columns.Latitude,
		r.columns.Longitude,
		r.columns.PreferredLanguage,
		r.columns.BirthChart,
		r.columns.ChartComputedAt,
		r.columns.LongTermStatus,
		r.columns.UpdatedAt,
		r.columns.UserID)
	rows, err := r.db.ExecWithResult(ctx, query,
		profile.UserID,
		profile.DateOfBirth,
		profile.TimeOfBirth,
		profile.PlaceOfBirth,
		profile.Latitude,
		profile.Longitude,
		profile.PreferredLanguage,
		profile.BirthChart,
		profile.ChartComputedAt,
		profile.LongTermStatus,
		profile.UpdatedAt)
	if err != nil {
		r.Log.Error("failed to update profile",
			"error", err,
			"user_id", profile.UserID)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found: %w", domain.ErrNotFound)
	}
	r.Log.Debug("profile updated successfully", "user_id", profile.UserID)
	return nil
}

// SetLongTermStatus выставляет статус генерации долгосрочных чтений
func (r *Repository) SetLongTermStatus(ctx context.Context, userID uuid.UUID, status domain.ReadingStatus) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1`,
		r.columns.TableName,
		r.columns.LongTermStatus,
		r.columns.UpdatedAt,
		r.columns.UserID)
	rows, err := r.db.ExecWithResult(ctx, query, userID, status, time.Now().UTC())
	if err != nil {
		r.Log.Error("failed to set long term status",
			"error", err,
			"user_id", userID,
			"status", status)
		return fmt.Errorf("failed to set long term status: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("profile not found: %w", domain.ErrNotFound)
	}
	return nil
}

// TryMarkPending атомарно переводит статус в pending. Возвращает false,
// если статус уже pending: конкурирующий запуск генерации схлопывается.
func (r *Repository) TryMarkPending(ctx context.Context, userID uuid.UUID) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1 AND %s <> $2`,
		r.columns.TableName,
		r.columns.LongTermStatus,
		r.columns.UpdatedAt,
		r.columns.UserID,
		r.columns.LongTermStatus)
	rows, err := r.db.ExecWithResult(ctx, query, userID, domain.ReadingStatusPending, time.Now().UTC())
	if err != nil {
		r.Log.Error("failed to mark long term status pending",
			"error", err,
			"user_id", userID)
		return false, fmt.Errorf("failed to mark pending: %w", err)
	}
	return rows > 0, nil
}

// ListWithBirthData возвращает профили с достаточными данными для чтений
func (r *Repository) ListWithBirthData(ctx context.Context) ([]domain.Profile, error) {
	var profiles []domain.Profile
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL ORDER BY %s`,
		r.allColumns(),
		r.columns.TableName,
		r.columns.DateOfBirth,
		r.columns.PlaceOfBirth,
		r.columns.CreatedAt)
	err := r.db.Select(ctx, &profiles, query)
	if err != nil {
		r.Log.Error("failed to list profiles with birth data", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
