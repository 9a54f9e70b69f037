package ephemeris

import (
	"math"
	"time"
)

// Встроенная низкоточная аналитическая эфемерида: средние кеплеровы элементы
// с вековыми скоростями и основными возмущениями (схема Шлютера). Точность
// порядка угловых минут для планет и ~2' для Луны - достаточно для
// определения знака зодиака; это приближение, а не полноценная эфемерида.

// epoch - d = 0.0 соответствует 1999-12-31 00:00 UT
var epoch = time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)

// daysSinceEpoch возвращает количество суток (с дробной частью) от эпохи
func daysSinceEpoch(t time.Time) float64 {
	return t.UTC().Sub(epoch).Hours() / 24
}

// elements средние орбитальные элементы тела на момент d
type elements struct {
	N float64 // долгота восходящего узла
	i float64 // наклонение
	w float64 // аргумент перигелия
	a float64 // большая полуось
	e float64 // эксцентриситет
	M float64 // средняя аномалия
}

func mercuryElements(d float64) elements {
	return elements{
		N: 48.3313 + 3.24587e-5*d,
		i: 7.0047 + 5.00e-8*d,
		w: 29.1241 + 1.01444e-5*d,
		a: 0.387098,
		e: 0.205635 + 5.59e-10*d,
		M: 168.6562 + 4.0923344368*d,
	}
}

func venusElements(d float64) elements {
	return elements{
		N: 76.6799 + 2.46590e-5*d,
		i: 3.3946 + 2.75e-8*d,
		w: 54.8910 + 1.38374e-5*d,
		a: 0.723330,
		e: 0.006773 - 1.302e-9*d,
		M: 48.0052 + 1.6021302244*d,
	}
}

func marsElements(d float64) elements {
	return elements{
		N: 49.5574 + 2.11081e-5*d,
		i: 1.8497 - 1.78e-8*d,
		w: 286.5016 + 2.92961e-5*d,
		a: 1.523688,
		e: 0.093405 + 2.516e-9*d,
		M: 18.6021 + 0.5240207766*d,
	}
}

func jupiterElements(d float64) elements {
	return elements{
		N: 100.4542 + 2.76854e-5*d,
		i: 1.3030 - 1.557e-7*d,
		w: 273.8777 + 1.64505e-5*d,
		a: 5.20256,
		e: 0.048498 + 4.469e-9*d,
		M: 19.8950 + 0.0830853001*d,
	}
}

func saturnElements(d float64) elements {
	return elements{
		N: 113.6634 + 2.38980e-5*d,
		i: 2.4886 - 1.081e-7*d,
		w: 339.3939 + 2.97661e-5*d,
		a: 9.55475,
		e: 0.055546 - 9.499e-9*d,
		M: 316.9670 + 0.0334442282*d,
	}
}

func uranusElements(d float64) elements {
	return elements{
		N: 74.0005 + 1.3978e-5*d,
		i: 0.7733 + 1.9e-8*d,
		w: 96.6612 + 3.0565e-5*d,
		a: 19.18171 - 1.55e-8*d,
		e: 0.047318 + 7.45e-9*d,
		M: 142.5905 + 0.011725806*d,
	}
}

func neptuneElements(d float64) elements {
	return elements{
		N: 131.7806 + 3.0173e-5*d,
		i: 1.7700 - 2.55e-7*d,
		w: 272.8461 - 6.027e-6*d,
		a: 30.05826 + 3.313e-8*d,
		e: 0.008606 + 2.15e-9*d,
		M: 260.2471 + 0.005995147*d,
	}
}

func moonElements(d float64) elements {
	return elements{
		N: 125.1228 - 0.0529538083*d,
		i: 5.1454,
		w: 318.0634 + 0.1643573223*d,
		a: 60.2666, // в радиусах Земли
		e: 0.054900,
		M: 115.3654 + 13.0649929509*d,
	}
}

// solveKepler решает уравнение Кеплера итерациями Ньютона.
// M и результат в градусах; сходимость до 0.0001°.
func solveKepler(M, e float64) float64 {
	E := M + e*(180/math.Pi)*sind(M)*(1+e*cosd(M))
	for iter := 0; iter < 20; iter++ {
		delta := (E - e*(180/math.Pi)*sind(E) - M) / (1 - e*cosd(E))
		E -= delta
		if math.Abs(delta) < 0.0001 {
			break
		}
	}
	return E
}

// heliocentric возвращает гелиоцентрические эклиптические координаты тела
func heliocentric(el elements) (x, y, z float64) {
	M := NormalizeDegrees(el.M)
	E := solveKepler(M, el.e)

	xv := el.a * (cosd(E) - el.e)
	yv := el.a * math.Sqrt(1-el.e*el.e) * sind(E)

	v := atan2d(yv, xv)
	r := math.Sqrt(xv*xv + yv*yv)

	x = r * (cosd(el.N)*cosd(v+el.w) - sind(el.N)*sind(v+el.w)*cosd(el.i))
	y = r * (sind(el.N)*cosd(v+el.w) + cosd(el.N)*sind(v+el.w)*cosd(el.i))
	z = r * sind(v+el.w) * sind(el.i)
	return x, y, z
}

// sunState геоцентрическая позиция Солнца: эклиптическая долгота и
// прямоугольные координаты (для перевода гелиоцентрических позиций планет
// в геоцентрические)
func sunState(d float64) (lon, xs, ys float64) {
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	M := NormalizeDegrees(356.0470 + 0.9856002585*d)

	E := M + e*(180/math.Pi)*sind(M)*(1+e*cosd(M))
	xv := cosd(E) - e
	yv := math.Sqrt(1-e*e) * sind(E)

	v := atan2d(yv, xv)
	r := math.Sqrt(xv*xv + yv*yv)

	lon = NormalizeDegrees(v + w)
	return lon, r * cosd(lon), r * sind(lon)
}

// moonLongitude геоцентрическая эклиптическая долгота Луны с основными
// возмущениями (эвекция, вариация, годичное неравенство и др.)
func moonLongitude(d float64) float64 {
	el := moonElements(d)
	x, y, _ := heliocentric(el) // для Луны координаты уже геоцентрические
	lon := atan2d(y, x)

	// аргументы возмущений
	ws := 282.9404 + 4.70935e-5*d
	Ms := NormalizeDegrees(356.0470 + 0.9856002585*d)
	Ls := Ms + ws            // средняя долгота Солнца
	Lm := el.M + el.w + el.N // средняя долгота Луны
	D := Lm - Ls             // средняя элонгация
	F := Lm - el.N           // аргумент широты

	Mm := el.M
	lon += -1.274*sind(Mm-2*D) +
		0.658*sind(2*D) -
		0.186*sind(Ms) -
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) -
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	return NormalizeDegrees(lon)
}

// plutoHeliocentric позиция Плутона по тригонометрическому ряду
// (валидно примерно для 1880-2100 гг.)
func plutoHeliocentric(d float64) (x, y, z float64) {
	S := 50.03 + 0.033459652*d
	P := 238.95 + 0.003968789*d

	lonecl := 238.9508 + 0.00400703*d -
		19.799*sind(P) + 19.848*cosd(P) +
		0.897*sind(2*P) - 4.956*cosd(2*P) +
		0.610*sind(3*P) + 1.211*cosd(3*P) -
		0.341*sind(4*P) - 0.190*cosd(4*P) +
		0.128*sind(5*P) - 0.034*cosd(5*P) -
		0.038*sind(6*P) + 0.031*cosd(6*P) +
		0.020*sind(S-P) - 0.010*cosd(S-P)

	latecl := -3.9082 -
		5.453*sind(P) - 14.975*cosd(P) +
		3.527*sind(2*P) + 1.673*cosd(2*P) -
		1.051*sind(3*P) + 0.328*cosd(3*P) +
		0.179*sind(4*P) - 0.292*cosd(4*P) +
		0.019*sind(5*P) + 0.100*cosd(5*P) -
		0.031*sind(6*P) - 0.026*cosd(6*P) +
		0.011*cosd(S-P)

	r := 40.72 +
		6.68*sind(P) + 6.90*cosd(P) -
		1.18*sind(2*P) - 0.03*cosd(2*P) +
		0.15*sind(3*P) - 0.14*cosd(3*P)

	x = r * cosd(lonecl) * cosd(latecl)
	y = r * sind(lonecl) * cosd(latecl)
	z = r * sind(latecl)
	return x, y, z
}

// jupiterPerturbations возмущения долготы Юпитера от Сатурна
func jupiterPerturbations(Mj, Ms float64) float64 {
	return -0.332*sind(2*Mj-5*Ms-67.6) -
		0.056*sind(2*Mj-2*Ms+21) +
		0.042*sind(3*Mj-5*Ms+21) -
		0.036*sind(Mj-2*Ms) +
		0.022*cosd(Mj-Ms) +
		0.023*sind(2*Mj-3*Ms+52) -
		0.016*sind(Mj-5*Ms-69)
}

// saturnPerturbations возмущения долготы Сатурна от Юпитера
func saturnPerturbations(Mj, Ms float64) float64 {
	return 0.812*sind(2*Mj-5*Ms-67.6) -
		0.229*cosd(2*Mj-4*Ms-2) +
		0.119*sind(Mj-2*Ms-3) +
		0.046*sind(2*Mj-6*Ms-69) +
		0.014*sind(Mj-3*Ms+32)
}

// uranusPerturbations возмущения долготы Урана от Юпитера и Сатурна
func uranusPerturbations(Mj, Ms, Mu float64) float64 {
	return 0.040*sind(Ms-2*Mu+6) +
		0.035*sind(Ms-3*Mu+33) -
		0.015*sind(Mj-Mu+20)
}

// PlanetNames десять опорных тел карты в каноническом порядке
var PlanetNames = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

// geocentricLongitudes возвращает геоцентрические эклиптические долготы
// всех десяти тел на момент d
func geocentricLongitudes(d float64) map[string]float64 {
	sunLon, xs, ys := sunState(d)

	Mj := NormalizeDegrees(jupiterElements(d).M)
	Ms := NormalizeDegrees(saturnElements(d).M)
	Mu := NormalizeDegrees(uranusElements(d).M)

	fromHelio := func(x, y float64) float64 {
		return NormalizeDegrees(atan2d(y+ys, x+xs))
	}

	longitudes := map[string]float64{
		"Sun":  sunLon,
		"Moon": moonLongitude(d),
	}

	for name, el := range map[string]elements{
		"Mercury": mercuryElements(d),
		"Venus":   venusElements(d),
		"Mars":    marsElements(d),
		"Neptune": neptuneElements(d),
	} {
		x, y, _ := heliocentric(el)
		longitudes[name] = fromHelio(x, y)
	}

	// для Юпитера, Сатурна и Урана возмущения добавляются к гелиоцентрической
	// долготе до перевода в геоцентрическую
	withPerturbation := func(el elements, dlon float64) float64 {
		x, y, z := heliocentric(el)
		r := math.Sqrt(x*x + y*y + z*z)
		lon := atan2d(y, x) + dlon
		lat := atan2d(z, math.Sqrt(x*x+y*y))
		xh := r * cosd(lon) * cosd(lat)
		yh := r * sind(lon) * cosd(lat)
		return fromHelio(xh, yh)
	}

	longitudes["Jupiter"] = withPerturbation(jupiterElements(d), jupiterPerturbations(Mj, Ms))
	longitudes["Saturn"] = withPerturbation(saturnElements(d), saturnPerturbations(Mj, Ms))
	longitudes["Uranus"] = withPerturbation(uranusElements(d), uranusPerturbations(Mj, Ms, Mu))

	px, py, _ := plutoHeliocentric(d)
	longitudes["Pluto"] = fromHelio(px, py)

	return longitudes
}
