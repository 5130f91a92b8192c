// Command skyview is a standalone diagnostic: it runs one position
// through Julian-date conversion, precession, and the equatorial-to-
// horizontal transform, and prints each intermediate value. It has no
// relation to the planner binary beyond sharing internal/skytransform.
package main

import (
	"fmt"
	"math"

	"github.com/fiberplan/fiberplan/internal/skytransform"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
	j2000    = 2451545.0
)

func main() {
	jd := skytransform.GregorianToJulian(2016, 11, 1, 8, 53, 1)
	fmt.Printf("jd=%v\n", jd)

	// Subaru Telescope, Mauna Kea.
	lat := (19 + 49./60 + 32./3600) * degToRad
	lon := -(155 + 28./60 + 34./3600) * degToRad

	pos := skytransform.Equatorial{RA: 34.0 * degToRad, Dec: -4.5 * degToRad}
	fmt.Printf("ra=%v dec=%v (%v %v deg)\n", pos.RA, pos.Dec, pos.RA*radToDeg, pos.Dec*radToDeg)

	gast := skytransform.GAST(jd)

	equinox2 := 2000 + (jd-j2000)/365.25
	precessed := skytransform.Precess(pos, 2000, equinox2)
	fmt.Printf("precessed to %.4f: ra=%v dec=%v (%v %v deg)\n", equinox2,
		precessed.RA, precessed.Dec, precessed.RA*radToDeg, precessed.Dec*radToDeg)

	ha := skytransform.HourAngle(gast, lon, precessed.RA)
	fmt.Printf("hour angle [hours]: %v\n", ha*radToDeg/15)

	alt, az := skytransform.AltAz(ha, precessed.Dec, lat)
	fmt.Printf("altitude=%v deg, azimuth=%v deg\n", alt*radToDeg, az*radToDeg)
}
