package ephemeris

import (
	"math"
	"time"
)

// наклон эклиптики к экватору (эпоха J2000)
const obliquity = 23.4392911

// gmstHours среднее гринвичское звёздное время в часах
func gmstHours(t time.Time) float64 {
	j2000 := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
	D := t.UTC().Sub(j2000).Hours() / 24
	gmst := math.Mod(18.697374558+24.06570982441908*D, 24)
	if gmst < 0 {
		gmst += 24
	}
	return gmst
}

// Ascendant эклиптическая долгота асцендента для места наблюдения
func Ascendant(t time.Time, lat, lon float64) float64 {
	lst := localSiderealDeg(t, lon)
	asc := atan2d(
		cosd(obliquity)*sind(lst)-tand(lat)*sind(obliquity),
		cosd(lst),
	)
	return NormalizeDegrees(asc)
}

// Midheaven эклиптическая долгота средней точки неба (MC)
func Midheaven(t time.Time, lon float64) float64 {
	lst := localSiderealDeg(t, lon)
	mc := atan2d(sind(lst), cosd(lst)*cosd(obliquity))
	return NormalizeDegrees(mc)
}

// localSiderealDeg местное звёздное время в градусах
func localSiderealDeg(t time.Time, lon float64) float64 {
	lstHours := math.Mod(gmstHours(t)+lon/15, 24)
	if lstHours < 0 {
		lstHours += 24
	}
	return lstHours * 15
}

// HouseCusps приближённые куспиды двенадцати домов (упрощённый Плацидус):
// угловые дома берутся из асцендента и MC, промежуточные равными дугами,
// дома 4-9 противоположны домам 10, 11, 12, 1, 2, 3
func HouseCusps(t time.Time, lat, lon float64) map[string]float64 {
	asc := Ascendant(t, lat, lon)
	mc := Midheaven(t, lon)

	cusps := map[string]float64{
		"1":  asc,
		"2":  NormalizeDegrees(asc + 30),
		"3":  NormalizeDegrees(asc + 60),
		"10": mc,
		"11": NormalizeDegrees(mc + 60),
		"12": NormalizeDegrees(mc + 30),
	}
	cusps["4"] = NormalizeDegrees(cusps["10"] + 180)
	cusps["5"] = NormalizeDegrees(cusps["11"] + 180)
	cusps["6"] = NormalizeDegrees(cusps["12"] + 180)
	cusps["7"] = NormalizeDegrees(cusps["1"] + 180)
	cusps["8"] = NormalizeDegrees(cusps["2"] + 180)
	cusps["9"] = NormalizeDegrees(cusps["3"] + 180)

	return cusps
}
