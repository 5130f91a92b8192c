package skytransform

import (
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// TestGMSTAgainstReference validates GMST against go-satellite's
// GSTimeFromDate, which implements the same IAU-82 model.
func TestGMSTAgainstReference(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
	}{
		{name: "J2000.0 epoch", time: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)},
		{name: "Vallado example date", time: time.Date(2004, 4, 6, 7, 51, 28, 0, time.UTC)},
		{name: "recent date", time: time.Date(2026, 2, 6, 4, 1, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd := GregorianToJulian(tt.time.Year(), int(tt.time.Month()), tt.time.Day(),
				float64(tt.time.Hour()), float64(tt.time.Minute()), float64(tt.time.Second()))
			ourRad := GMST(jd) * 15 * degToRad

			// go-satellite's GSTimeFromDate returns GMST in radians.
			ref := satellite.GSTimeFromDate(
				tt.time.Year(), int(tt.time.Month()), tt.time.Day(),
				tt.time.Hour(), tt.time.Minute(), tt.time.Second(),
			)

			diff := math.Abs(ourRad - ref)
			if diff > 1e-6 {
				t.Errorf("GMST(%v) = %.12f rad, go-satellite = %.12f rad (diff=%.2e)", tt.time, ourRad, ref, diff)
			}
		})
	}
}
