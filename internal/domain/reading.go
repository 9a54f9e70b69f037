package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReadingType тип прогноза. Закрытое перечисление: каждому типу соответствует
// ровно один промпт-шаблон.
type ReadingType string

const (
	ReadingToday         ReadingType = "today_reading"
	ReadingPersonality   ReadingType = "core_personality_and_life_path"
	ReadingCareer        ReadingType = "career_success_and_wealth"
	ReadingRelationships ReadingType = "relationships_love_and_marriage"
	ReadingHealth        ReadingType = "health_and_wellbeing"
	ReadingChallenges    ReadingType = "challenges_and_remedies"
	ReadingLifePeriods   ReadingType = "major_life_periods"
)

// LongTermReadingTypes возвращает все долгосрочные типы прогнозов
// (генерируются пачкой фоновым воркером, дневной прогноз сюда не входит)
func LongTermReadingTypes() []ReadingType {
	return []ReadingType{
		ReadingPersonality,
		ReadingCareer,
		ReadingRelationships,
		ReadingHealth,
		ReadingChallenges,
		ReadingLifePeriods,
	}
}

// AllReadingTypes возвращает все типы прогнозов, включая дневной
func AllReadingTypes() []ReadingType {
	return append(LongTermReadingTypes(), ReadingToday)
}

// String возвращает строковое представление типа
func (t ReadingType) String() string {
	return string(t)
}

// IsValid проверяет, является ли тип валидным
func (t ReadingType) IsValid() bool {
	switch t {
	case ReadingToday, ReadingPersonality, ReadingCareer, ReadingRelationships,
		ReadingHealth, ReadingChallenges, ReadingLifePeriods:
		return true
	default:
		return false
	}
}

// IsLongTerm проверяет, относится ли тип к долгосрочным прогнозам
func (t ReadingType) IsLongTerm() bool {
	return t.IsValid() && t != ReadingToday
}

// Reading сгенерированный прогноз пользователя.
// Content - структурированный JSON либо {"raw": "<текст>"} при неудачном
// разборе ответа модели. Строки не удаляются физически: при устаревании
// (смена данных рождения, повторная генерация) помечаются is_deleted.
type Reading struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	ReadingType ReadingType     `json:"reading_type" db:"reading_type"`
	Content     json.RawMessage `json:"content" db:"content"`
	IsDeleted   bool            `json:"-" db:"is_deleted"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
