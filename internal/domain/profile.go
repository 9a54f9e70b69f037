package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReadingStatus статус фоновой генерации долгосрочных прогнозов для профиля
type ReadingStatus string

const (
	ReadingStatusIdle      ReadingStatus = "idle"      // генерация не запускалась
	ReadingStatusPending   ReadingStatus = "pending"   // пачка прогнозов генерируется
	ReadingStatusCompleted ReadingStatus = "completed" // последняя пачка завершена
	ReadingStatusReeval    ReadingStatus = "reeval"    // данные рождения изменились, нужна повторная генерация
)

// IsValid проверяет, является ли статус валидным
func (s ReadingStatus) IsValid() bool {
	switch s {
	case ReadingStatusIdle, ReadingStatusPending, ReadingStatusCompleted, ReadingStatusReeval:
		return true
	default:
		return false
	}
}

// Profile профиль пользователя с данными рождения и рассчитанной картой.
// Владелец (учётная запись) живёт во внешнем сервисе, здесь только user_id.
type Profile struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	UserID            uuid.UUID     `json:"user_id" db:"user_id"`
	DateOfBirth       *time.Time    `json:"date_of_birth,omitempty" db:"date_of_birth"`
	TimeOfBirth       *time.Time    `json:"time_of_birth,omitempty" db:"time_of_birth"`
	PlaceOfBirth      *string       `json:"place_of_birth,omitempty" db:"place_of_birth"`
	Latitude          *float64      `json:"latitude,omitempty" db:"latitude"`
	Longitude         *float64      `json:"longitude,omitempty" db:"longitude"`
	PreferredLanguage string        `json:"preferred_language" db:"preferred_language"`
	BirthChart        ChartJSON     `json:"birth_chart,omitempty" db:"birth_chart"` // JSONB, nil пока карта не рассчитана
	ChartComputedAt   *time.Time    `json:"chart_computed_at,omitempty" db:"chart_computed_at"`
	LongTermStatus    ReadingStatus `json:"long_term_status" db:"long_term_status"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// BirthDateTimeUTC собирает дату и время рождения в один момент UTC.
// Возвращает false, если дата или время не заданы.
func (p *Profile) BirthDateTimeUTC() (time.Time, bool) {
	if p.DateOfBirth == nil || p.TimeOfBirth == nil {
		return time.Time{}, false
	}
	d := p.DateOfBirth.UTC()
	t := p.TimeOfBirth.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), true
}

// HasCoordinates проверяет, известны ли координаты места рождения
func (p *Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// BirthData изменяемые пользователем поля профиля. nil-поле означает "не менять".
type BirthData struct {
	DateOfBirth       *time.Time
	TimeOfBirth       *time.Time
	PlaceOfBirth      *string
	PreferredLanguage *string
}

// ApplyBirthData применяет изменения к профилю как чистый переход состояния.
// Возвращает chartInvalidated (дата/время/место изменились - карта больше не
// актуальна, поля карты и координат очищаются) и readingsInvalidated (любое из
// четырёх полей изменилось - долгосрочные прогнозы устарели). Пересчёт карты и
// инвалидация прогнозов выполняются вызывающим кодом явно, не как side effect
// записи в БД.
func (p *Profile) ApplyBirthData(in BirthData) (chartInvalidated, readingsInvalidated bool) {
	if in.DateOfBirth != nil && !equalTimePtr(p.DateOfBirth, in.DateOfBirth) {
		p.DateOfBirth = in.DateOfBirth
		chartInvalidated = true
	}
	if in.TimeOfBirth != nil && !equalTimePtr(p.TimeOfBirth, in.TimeOfBirth) {
		p.TimeOfBirth = in.TimeOfBirth
		chartInvalidated = true
	}
	if in.PlaceOfBirth != nil && (p.PlaceOfBirth == nil || *p.PlaceOfBirth != *in.PlaceOfBirth) {
		p.PlaceOfBirth = in.PlaceOfBirth
		chartInvalidated = true
	}
	if in.PreferredLanguage != nil && p.PreferredLanguage != *in.PreferredLanguage {
		p.PreferredLanguage = *in.PreferredLanguage
		readingsInvalidated = true
	}
	if chartInvalidated {
		p.BirthChart = nil
		p.ChartComputedAt = nil
		p.Latitude = nil
		p.Longitude = nil
		readingsInvalidated = true
	}
	return chartInvalidated, readingsInvalidated
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// ParseCoordinates разбирает место рождения в формате "lat,lon".
// Возвращает false, если текст не является парой координат.
func ParseCoordinates(place string) (lat, lon float64, ok bool) {
	parts := strings.SplitN(place, ",", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
