package skytransform

import (
	"math"
	"testing"
)

func TestGregorianToJulianKnownEpoch(t *testing.T) {
	got := GregorianToJulian(2000, 1, 1, 12, 0, 0)
	if math.Abs(got-j2000) > 1e-6 {
		t.Errorf("GregorianToJulian(2000,1,1,12,0,0) = %v, want %v", got, j2000)
	}
}

func TestGMSTInRange(t *testing.T) {
	jd := GregorianToJulian(2016, 11, 1, 8, 53, 1)
	g := GMST(jd)
	if g < 0 || g >= 24 {
		t.Errorf("GMST() = %v, want in [0,24)", g)
	}
}

func TestPrecessIdentityAtSameEquinox(t *testing.T) {
	e := Equatorial{RA: 1.0, Dec: 0.3}
	got := Precess(e, 2000, 2000)
	if math.Abs(got.RA-e.RA) > 1e-9 || math.Abs(got.Dec-e.Dec) > 1e-9 {
		t.Errorf("Precess same-equinox = %+v, want %+v", got, e)
	}
}

func TestNutatePreservesUnitSphere(t *testing.T) {
	e := Equatorial{RA: 0.6, Dec: -0.2}
	jd := GregorianToJulian(2016, 11, 1, 8, 53, 1)
	got := Nutate(e, jd)
	v := toVec3(got)
	n := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if math.Abs(n-1) > 1e-9 {
		t.Errorf("Nutate result not on unit sphere: |v|=%v", n)
	}
}

func TestAltAzZenith(t *testing.T) {
	lat := 0.5
	alt, _ := AltAz(0, lat, lat)
	if math.Abs(alt-math.Pi/2) > 1e-9 {
		t.Errorf("AltAz at zero hour angle, dec=lat: alt = %v, want pi/2", alt)
	}
}
