// Package raster provides a uniform-grid spatial index over planar
// positions, supporting radius queries with deterministic result order.
package raster

// Vec2 is a point in the focal plane (or in RA/DEC degrees, before
// geom.ToFocalPlaneOne is applied).
type Vec2 struct {
	X, Y float64
}

// DistSq returns the squared Euclidean distance between a and b.
func (a Vec2) DistSq(b Vec2) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Raster buckets a fixed set of points into an nx*ny uniform grid to
// answer "all points within radius r of c" queries in expected O(1).
type Raster struct {
	x0, y0, x1, y1 float64
	idx, idy       float64
	nx, ny         int
	data           [][]int
	loc            []Vec2
}

// New builds a Raster over loc with nx bins in x and ny bins in y.
// The bounding box of loc is inflated by 1e-9 along any degenerate
// dimension so that a single point (or a vertical/horizontal line of
// points) still produces a valid grid.
func New(loc []Vec2, nx, ny int) *Raster {
	if nx <= 0 || ny <= 0 {
		panic("raster: bad array sizes")
	}
	if len(loc) == 0 {
		panic("raster: input array too small")
	}

	x0, x1 := loc[0].X, loc[0].X
	y0, y1 := loc[0].Y, loc[0].Y
	for _, p := range loc[1:] {
		if p.X < x0 {
			x0 = p.X
		}
		if p.X > x1 {
			x1 = p.X
		}
		if p.Y < y0 {
			y0 = p.Y
		}
		if p.Y > y1 {
			y1 = p.Y
		}
	}
	if x0 == x1 {
		x1 += 1e-9
	}
	if y0 == y1 {
		y1 += 1e-9
	}

	r := &Raster{
		x0: x0, y0: y0, x1: x1, y1: y1,
		idx: float64(nx) / (x1 - x0),
		idy: float64(ny) / (y1 - y0),
		nx:  nx, ny: ny,
		data: make([][]int, nx*ny),
		loc:  loc,
	}
	for i, p := range loc {
		r.data[r.cellIndex(p)] = append(r.data[r.cellIndex(p)], i)
	}
	return r
}

func (r *Raster) binX(x float64) int {
	b := int((x - r.x0) * r.idx)
	if b < 0 {
		return 0
	}
	if b > r.nx-1 {
		return r.nx - 1
	}
	return b
}

func (r *Raster) binY(y float64) int {
	b := int((y - r.y0) * r.idy)
	if b < 0 {
		return 0
	}
	if b > r.ny-1 {
		return r.ny - 1
	}
	return b
}

func (r *Raster) cellIndex(p Vec2) int {
	return r.binX(p.X) + r.nx*r.binY(p.Y)
}

// Query returns the indices of all points within Euclidean distance
// rad of center, in deterministic cell-major, then insertion, order.
func (r *Raster) Query(center Vec2, rad float64) []int {
	var res []int
	if center.X < r.x0-rad || center.X > r.x1+rad ||
		center.Y < r.y0-rad || center.Y > r.y1+rad {
		return res
	}
	rsq := rad * rad
	i0, i1 := r.binX(center.X-rad), r.binX(center.X+rad)
	j0, j1 := r.binY(center.Y-rad), r.binY(center.Y+rad)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, k := range r.data[i+r.nx*j] {
				if center.DistSq(r.loc[k]) <= rsq {
					res = append(res, k)
				}
			}
		}
	}
	return res
}

// AnyIn reports whether any indexed point lies within rad of center.
// Short-circuits on the first hit.
func (r *Raster) AnyIn(center Vec2, rad float64) bool {
	if center.X < r.x0-rad || center.X > r.x1+rad ||
		center.Y < r.y0-rad || center.Y > r.y1+rad {
		return false
	}
	rsq := rad * rad
	i0, i1 := r.binX(center.X-rad), r.binX(center.X+rad)
	j0, j1 := r.binY(center.Y-rad), r.binY(center.Y+rad)
	for j := j0; j <= j1; j++ {
		for i := i0; i <= i1; i++ {
			for _, k := range r.data[i+r.nx*j] {
				if center.DistSq(r.loc[k]) <= rsq {
					return true
				}
			}
		}
	}
	return false
}
