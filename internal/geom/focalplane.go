// Package geom computes the deterministic focal-plane geometry of the
// fiber positioner array — fiber and blocking-dot centers from a fiber
// identifier — and the RA/DEC-to-focal-plane projection used to bring a
// target catalog into the same planar frame under a given telescope
// pointing and position angle.
package geom

import "math"

// NumFields, ModulesPerField, and CobrasPerModule describe the fiber
// positioner array: 3 fields of 14 modules of 57 cobras each.
const (
	NumFields        = 3
	ModulesPerField  = 14
	CobrasPerModule  = 57
	NumFibers        = NumFields * ModulesPerField * CobrasPerModule
	cobrasPerField   = ModulesPerField * CobrasPerModule
	dotYOffset       = 1.19
	fieldScale       = 8.0
	vspace           = 0.8660254037844386 // cos(30 deg) == sqrt(0.75)
)

// Vec2 is a planar point, in whatever frame the caller is working in
// (millimeters on the focal plane, or degrees of RA/DEC before
// ToFocalPlaneOne is applied).
type Vec2 struct {
	X, Y float64
}

// rotate applies the standard 2D rotation (x,y) <- (c*x-s*y, s*x+c*y).
func rotate(p Vec2, s, c float64) Vec2 {
	return Vec2{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// FiberPos returns the patrol-center position of fiber id, in
// millimeters on the focal plane. id must be in [0, NumFibers).
func FiberPos(id int) Vec2 {
	field := id / cobrasPerField
	id -= field * cobrasPerField
	module := id / CobrasPerModule
	cobra := id - module*CobrasPerModule

	p := Vec2{
		Y: 0.5 + float64(module) - 0.5*float64(cobra),
		X: -vspace * (1 + 2*float64(module) + float64(cobra&1)),
	}
	switch field {
	case 1:
		p = rotate(p, -vspace, -0.5)
	case 2:
		p = rotate(p, vspace, -0.5)
	}
	p.X *= fieldScale
	p.Y *= fieldScale
	return p
}

// DotPos returns the center of the blocking dot associated with fiber
// id — the fiber's patrol center shifted by +1.19mm in y.
func DotPos(id int) Vec2 {
	p := FiberPos(id)
	p.Y += dotYOffset
	return p
}

// Pointing is a unit vector on the celestial sphere, expressed in the
// same Cartesian frame used internally by ToFocalPlaneOne: z toward the
// telescope boresight.
type Pointing struct {
	X, Y, Z float64
}

// normalize returns p scaled to unit length, or p unchanged if it is
// (numerically) the zero vector.
func (p Pointing) normalize() Pointing {
	n := math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	if n == 0 {
		return p
	}
	return Pointing{p.X / n, p.Y / n, p.Z / n}
}

func dot(a, b Pointing) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func sub(a, b Pointing) Pointing { return Pointing{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

func scale(a Pointing, s float64) Pointing { return Pointing{a.X * s, a.Y * s, a.Z * s} }

func cross(a, b Pointing) Pointing {
	return Pointing{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// RADecToPointing converts RA/DEC in degrees to a unit pointing vector.
func RADecToPointing(raDeg, decDeg float64) Pointing {
	theta := (90 - decDeg) * math.Pi / 180 // colatitude
	phi := raDeg * math.Pi / 180
	st, ct := math.Sin(theta), math.Cos(theta)
	sp, cp := math.Sin(phi), math.Cos(phi)
	return Pointing{X: st * cp, Y: st * sp, Z: ct}
}

// PointingToRADec is the inverse of RADecToPointing, returning degrees.
func PointingToRADec(p Pointing) (raDeg, decDeg float64) {
	theta := math.Acos(clamp(p.Z, -1, 1))
	phi := math.Atan2(p.Y, p.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi * 180 / math.Pi, 90 - theta*180/math.Pi
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

// distortionCoeffs are the radial-distortion polynomial coefficients
// for the RA/DEC-to-focal-plane projection (a0 is an additive offset,
// unused beyond preserving the documented interface).
const (
	distA0 = 0.0
	distA1 = -320.0
	distA2 = -13.7
	distA3 = -7.45
)

// ToFocalPlaneOne projects a single RA/DEC position (degrees) onto the
// focal plane (millimeters) given the telescope pointing direction,
// position angle psi (radians), and elevation. elevation is accepted
// but unused — it is part of the interface contract for a future,
// more complete atmospheric/optical model.
func ToFocalPlaneOne(raDeg, decDeg float64, center Pointing, psi, elevation float64) Vec2 {
	_ = elevation

	z := center.normalize()
	sky := Pointing{0, 0, 1}
	x := sub(sky, scale(z, dot(z, sky)))
	x = x.normalize()
	y := cross(z, x)

	p := RADecToPointing(raDeg, decDeg)

	xp := sub(p, scale(y, dot(p, y)))
	yp := sub(p, scale(x, dot(p, x)))

	alpha := math.Atan2(dot(xp, x), dot(xp, z)) * 180 / math.Pi
	beta := math.Atan2(dot(yp, y), dot(yp, z)) * 180 / math.Pi

	cpsi, spsi := math.Cos(psi), math.Sin(psi)
	rotated := rotate(Vec2{X: alpha, Y: beta}, spsi, cpsi)

	rsq := rotated.X*rotated.X + rotated.Y*rotated.Y
	return Vec2{
		X: (distA3*rsq*rsq+distA2*rsq+distA1)*rotated.X + distA0,
		Y: (-distA3*rsq*rsq-distA2*rsq-distA1)*rotated.Y + distA0,
	}
}

// TangentAxes builds an orthonormal pair (ex, ey) tangent to the unit
// sphere at center, used to parameterize small angular offsets around
// a nominal pointing. Falls back to (1,0,0) when center sits at a
// celestial pole, where the natural z x ẑ construction degenerates.
func TangentAxes(center Pointing) (ex, ey Pointing) {
	vdx := cross(center, Pointing{0, 0, 1})
	if vdx.X == 0 && vdx.Y == 0 && vdx.Z == 0 {
		vdx = Pointing{1, 0, 0}
	} else {
		vdx = vdx.normalize()
	}
	vdy := cross(center, vdx)
	return vdx, vdy
}

// Displace returns the unit pointing obtained by moving center by dx
// along ex and dy along ey (both in radians), then renormalizing onto
// the unit sphere.
func Displace(center, ex, ey Pointing, dx, dy float64) Pointing {
	return Pointing{
		X: center.X + ex.X*dx + ey.X*dy,
		Y: center.Y + ex.Y*dx + ey.Y*dy,
		Z: center.Z + ex.Z*dx + ey.Z*dy,
	}.normalize()
}
