// Package skytransform implements the small set of classical
// spherical-astronomy transforms the diagnostic binary exercises:
// Julian date conversion, Greenwich (mean and apparent) sidereal
// time, IAU-1980 nutation, rigorous precession, and the
// equatorial-to-horizontal (altitude/azimuth) transform.
package skytransform

import "math"

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

// GregorianToJulian converts a Gregorian calendar date (UTC) to a
// Julian Date, following the standard algorithm valid for dates after
// 4801 BC.
func GregorianToJulian(year, month, day int, hour, minute, second float64) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	jd := math.Floor(365.25*float64(y+4716)) + math.Floor(30.6001*float64(m+1)) + float64(day) + float64(b) - 1524.5
	jd += (hour + minute/60 + second/3600) / 24
	return jd
}

// fmodulo reduces x into [0, y).
func fmodulo(x, y float64) float64 {
	r := math.Mod(x, y)
	if r < 0 {
		r += y
	}
	return r
}

// GMST returns Greenwich Mean Sidereal Time, in hours, for the given
// Julian Date.
func GMST(jd float64) float64 {
	jd0 := math.Floor(jd+0.5) - 0.5
	h := (jd - jd0) * 24
	d := jd - j2000
	d0 := jd0 - j2000
	t := d / 36525
	res := 6.697374558 + 0.06570982441908*d0 + 1.00273790935*h + 0.000026*t*t
	return fmodulo(res, 24)
}

// GAST returns Greenwich Apparent Sidereal Time, in hours, for the
// given Julian Date: GMST corrected for the equation of the equinoxes
// (the nutation-in-longitude term projected onto the equator).
func GAST(jd float64) float64 {
	gmst := GMST(jd)
	d := jd - j2000
	omega := (125.04 - 0.052954*d) * degToRad
	l := (280.47 + 0.98565*d) * degToRad
	eps := (23.4393 - 0.0000004*d) * degToRad
	dpsi := -0.000319*math.Sin(omega) - 0.000024*math.Sin(2*l)
	res := gmst + dpsi*math.Cos(eps)
	return fmodulo(res, 24)
}

// HourAngle returns the hour angle (radians) of an object at right
// ascension ra (radians) for an observer at longitude lon (radians,
// east positive) when Greenwich sidereal time is gast hours.
func HourAngle(gast, lon, ra float64) float64 {
	return fmodulo(gast*15*degToRad+lon-ra, 2*math.Pi)
}
