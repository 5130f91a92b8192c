package skytransform

import "math"

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Equatorial is a right ascension/declination pair, in radians.
type Equatorial struct {
	RA, Dec float64
}

// vec3 is a direction cosine triple on the unit sphere.
type vec3 struct{ X, Y, Z float64 }

func toVec3(e Equatorial) vec3 {
	ct := math.Cos(e.Dec)
	return vec3{X: ct * math.Cos(e.RA), Y: ct * math.Sin(e.RA), Z: math.Sin(e.Dec)}
}

func fromVec3(v vec3) Equatorial {
	ra := math.Atan2(v.Y, v.X)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(clamp(v.Z, -1, 1))
	return Equatorial{RA: ra, Dec: dec}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Precess rotates an equatorial position from equinox1 to equinox2
// (both Julian years, e.g. 2000.0) using the rigorous IAU precession
// rotation matrix.
func Precess(e Equatorial, equinox1, equinox2 float64) Equatorial {
	const sec2rad = degToRad / 3600

	t := 1e-3 * (equinox2 - equinox1)
	st := 1e-3 * (equinox1 - 2000)

	A := sec2rad * t * (23062.181 + st*(139.656+0.0139*st) + t*(30.188-0.344*st+17.998*t))
	B := sec2rad*t*t*(79.280+0.410*st+0.205*t) + A
	C := sec2rad * t * (20043.109 - st*(85.33+0.217*st) + t*(-42.665-0.217*st-41.833*t))

	sina, sinb, sinc := math.Sin(A), math.Sin(B), math.Sin(C)
	cosa, cosb, cosc := math.Cos(A), math.Cos(B), math.Cos(C)

	x := toVec3(e)
	r1 := vec3{cosa*cosb*cosc - sina*sinb, sina*cosb + cosa*sinb*cosc, cosa * sinc}
	r2 := vec3{-cosa*sinb - sina*cosb*cosc, cosa*cosb - sina*sinb*cosc, -sina * sinc}
	r3 := vec3{-cosb * sinc, -sinb * sinc, cosc}

	x2 := vec3{
		X: r1.X*x.X + r2.X*x.Y + r3.X*x.Z,
		Y: r1.Y*x.X + r2.Y*x.Y + r3.Y*x.Z,
		Z: r1.Z*x.X + r2.Z*x.Y + r3.Z*x.Z,
	}
	return fromVec3(x2)
}

// nutation series coefficients (Meeus, 1980 IAU theory, truncated to
// the 63 largest terms of the lunisolar series).
var nutD = []float64{0, -2, 0, 0, 0, 0, -2, 0, 0, -2, -2, -2, 0, 2, 0, 2, 0, 0, -2, 0, 2, 0, 0, -2, 0, -2, 0, 0, 2,
	-2, 0, -2, 0, 0, 2, 2, 0, -2, 0, 2, 2, -2, -2, 2, 2, 0, -2, -2, 0, -2, -2, 0, -1, -2, 1, 0, 0, -1, 0, 0,
	2, 0, 2}
var nutM = []float64{0, 0, 0, 0, 1, 0, 1, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 2, 1, 0, -1, 0, 0, 0, 1, 1, -1, 0,
	0, 0, 0, 0, 0, -1, -1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, -1, 1, -1, -1, 0, -1}
var nutMp = []float64{0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 1, 0, -1, 0, 1, -1, -1, 1, 2, -2, 0, 2, 2, 1, 0, 0, -1, 0, -1,
	0, 0, 1, 0, 2, -1, 1, 0, 1, 0, 0, 1, 2, 1, -2, 0, 1, 0, 0, 2, 2, 0, 1, 1, 0, 0, 1, -2, 1, 1, 1, -1, 3, 0}
var nutF = []float64{0, 2, 2, 0, 0, 0, 2, 2, 2, 2, 0, 2, 2, 0, 0, 2, 0, 2, 0, 2, 2, 2, 0, 2, 2, 2, 2, 0, 0, 2, 0, 0,
	0, -2, 2, 2, 2, 0, 2, 2, 0, 2, 2, 0, 0, 0, 2, 0, 2, 0, 2, -2, 0, 0, 0, 2, 2, 0, 0, 2, 2, 2, 2}
var nutOm = []float64{1, 2, 2, 2, 0, 0, 2, 1, 2, 2, 0, 1, 2, 0, 1, 2, 1, 1, 0, 1, 2, 2, 0, 2, 0, 0, 1, 0, 1, 2, 1,
	1, 1, 0, 1, 2, 2, 0, 2, 1, 0, 2, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 2, 0, 0, 2, 2, 2, 2}
var nutSinLng = []float64{-171996, -13187, -2274, 2062, 1426, 712, -517, -386, -301, 217,
	-158, 129, 123, 63, 63, -59, -58, -51, 48, 46, -38, -31, 29, 29, 26, -22,
	21, 17, 16, -16, -15, -13, -12, 11, -10, -8, 7, -7, -7, -7,
	6, 6, 6, -6, -6, 5, -5, -5, -5, 4, 4, 4, -4, -4, -4, 3, -3, -3, -3, -3, -3, -3, -3}
var nutSinDelta = []float64{-174.2, -1.6, -0.2, 0.2, -3.4, 0.1, 1.2, -0.4, 0, -0.5, 0, 0.1,
	0, 0, 0.1, 0, -0.1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -0.1, 0, 0.1}
var nutCosLng = []float64{92025, 5736, 977, -895, 54, -7, 224, 200, 129, -95, 0, -70, -53, 0,
	-33, 26, 32, 27, 0, -24, 16, 13, 0, -12, 0, 0, -10, 0, -8, 7, 9, 7, 6, 0, 5, 3, -3, 0, 3, 3,
	0, -3, -3, 3, 3, 0, 3, 3, 3}
var nutCosDelta = []float64{8.9, -3.1, -0.5, 0.5, -0.1, 0.0, -0.6, 0.0, -0.1, 0.3}

func poly4(x float64, c [4]float64) float64 {
	return c[0] + x*(c[1]+x*(c[2]+x*c[3]))
}

func nutTermAt(tbl []float64, n int) float64 {
	if n >= len(tbl) {
		return 0
	}
	return tbl[n]
}

// Nutate applies IAU-1980 nutation to an equatorial position at
// Julian Date jd.
func Nutate(e Equatorial, jd float64) Equatorial {
	t := (jd - j2000) / 36525

	d := fmodulo(poly4(t, [4]float64{297.85036, 445267.111480, -0.0019142, 1. / 189474})*degToRad, 2*math.Pi)
	m := fmodulo(poly4(t, [4]float64{357.52772, 35999.050340, -0.0001603, -1. / 3e5})*degToRad, 2*math.Pi)
	mp := fmodulo(poly4(t, [4]float64{134.96298, 477198.867398, 0.0086972, 1. / 5.625e4})*degToRad, 2*math.Pi)
	f := fmodulo(poly4(t, [4]float64{93.27191, 483202.017538, -0.0036825, -1. / 3.27270e5})*degToRad, 2*math.Pi)
	omega := fmodulo(poly4(t, [4]float64{125.04452, -1934.136261, 0.0020708, 1. / 4.5e5})*degToRad, 2*math.Pi)

	var dPsi, dEps float64
	for n := 0; n < len(nutD); n++ {
		arg := nutD[n]*d + nutM[n]*m + nutMp[n]*mp + nutF[n]*f + nutOm[n]*omega
		sarg, carg := math.Sin(arg), math.Cos(arg)
		dPsi += 0.0001 * (nutTermAt(nutSinDelta, n)*t + nutSinLng[n]) * sarg
		dEps += 0.0001 * (nutTermAt(nutCosDelta, n)*t + nutTermAt(nutCosLng, n)) * carg
	}

	eps0 := 23.4392911*3600 - 46.8150*t - 0.00059*t*t + 0.001813*t*t*t
	eps := (eps0 + dEps) / 3600 * degToRad

	ce, se := math.Cos(eps), math.Sin(eps)
	const d2as = math.Pi / (180 * 3600)

	p1 := toVec3(e)
	p2 := vec3{
		X: p1.X - (p1.Y*ce+p1.Z*se)*dPsi*d2as,
		Y: p1.Y + (p1.X*ce*dPsi-p1.Z*dEps)*d2as,
		Z: p1.Z + (p1.X*se*dPsi+p1.Y*dEps)*d2as,
	}
	return fromVec3(p2)
}

// AltAz converts an hour angle ha (radians) and declination dec
// (radians) to altitude and azimuth (radians) for an observer at
// latitude lat (radians). Azimuth is measured from north, increasing
// eastward (the convention used by the original diagnostic).
func AltAz(ha, dec, lat float64) (alt, az float64) {
	alt = math.Asin(math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha))
	az = math.Acos((math.Sin(dec) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat)))
	if math.Sin(ha) > 0 {
		az = 2*math.Pi - az
	}
	return alt, az
}
