package ephemeris

import "math"

// Signs двенадцать знаков зодиака, сектор 0 начинается с 0° эклиптики
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignForLongitude возвращает знак зодиака для эклиптической долготы.
// Сектора фиксированные по 30°: floor(lon/30) mod 12.
func SignForLongitude(deg float64) string {
	deg = NormalizeDegrees(deg)
	return Signs[int(deg/30)%12]
}

// NormalizeDegrees приводит угол к диапазону [0, 360)
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// тригонометрия в градусах

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

func tand(deg float64) float64 { return math.Tan(deg * math.Pi / 180) }

func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }
