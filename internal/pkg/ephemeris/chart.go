package ephemeris

import (
	"math"
	"time"

	"github.com/pjogani/vedics-api/internal/domain"
)

// round2 округляет до двух знаков после запятой
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeChart строит натальную карту: позиции десяти тел, асцендент и
// куспиды двенадцати домов. Функция чистая и детерминированная, момент
// времени интерпретируется в UTC.
func ComputeChart(utc time.Time, lat, lon float64) *domain.Chart {
	d := daysSinceEpoch(utc)

	planets := make(map[string]domain.PlanetPosition, len(PlanetNames))
	for name, deg := range geocentricLongitudes(d) {
		planets[name] = domain.PlanetPosition{
			LongitudeDeg: round2(deg),
			Sign:         SignForLongitude(deg),
		}
	}

	asc := Ascendant(utc, lat, lon)

	houses := make(map[string]domain.ChartPoint, 12)
	for num, deg := range HouseCusps(utc, lat, lon) {
		houses[num] = domain.ChartPoint{
			Degree: round2(deg),
			Sign:   SignForLongitude(deg),
		}
	}

	return &domain.Chart{
		Ascendant: domain.ChartPoint{
			Degree: round2(asc),
			Sign:   SignForLongitude(asc),
		},
		Planets: planets,
		Houses:  houses,
	}
}
