package domain

import "encoding/json"

// ChartJSON - JSON представление натальной карты
// Используется для хранения в БД (JSONB) и передачи в промпт модели
type ChartJSON []byte

// MarshalJSON отдаёт карту как вложенный JSON, а не base64
func (c ChartJSON) MarshalJSON() ([]byte, error) {
	if len(c) == 0 {
		return []byte("null"), nil
	}
	return c, nil
}

// UnmarshalJSON сохраняет вложенный JSON как есть
func (c *ChartJSON) UnmarshalJSON(data []byte) error {
	*c = append((*c)[0:0], data...)
	return nil
}

// ChartPoint точка эклиптики (градус + знак зодиака)
type ChartPoint struct {
	Degree float64 `json:"degree"`
	Sign   string  `json:"sign"`
}

// PlanetPosition позиция планеты в натальной карте
type PlanetPosition struct {
	LongitudeDeg float64 `json:"longitude_deg"`
	Sign         string  `json:"sign"`
}

// Chart натальная карта: асцендент, планеты и куспиды домов.
// Неизменяема после расчёта для тройки (дата-время, широта, долгота).
type Chart struct {
	Ascendant ChartPoint                `json:"ascendant"`
	Planets   map[string]PlanetPosition `json:"planets"`
	Houses    map[string]ChartPoint     `json:"houses"`
}

// JSON сериализует карту для хранения в JSONB
func (c *Chart) JSON() (ChartJSON, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return ChartJSON(data), nil
}

// ParseChart разбирает JSONB представление карты
func ParseChart(data ChartJSON) (*Chart, error) {
	var chart Chart
	if err := json.Unmarshal(data, &chart); err != nil {
		return nil, err
	}
	return &chart, nil
}
