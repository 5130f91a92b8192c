package planner

import (
	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/incidence"
	"github.com/fiberplan/fiberplan/internal/raster"
)

// fiberRaster indexes all fiber patrol centers, built once since the
// fiber array geometry is fixed for the life of the process.
var fiberRaster = buildFiberRaster()

func buildFiberRaster() *raster.Raster {
	locs := make([]raster.Vec2, geom.NumFibers)
	for f := 0; f < geom.NumFibers; f++ {
		p := geom.FiberPos(f)
		locs[f] = raster.Vec2{X: p.X, Y: p.Y}
	}
	return raster.New(locs, 100, 100)
}

// observabilitySafety is the default safety margin added to the
// patrol radius when deciding whether a target is worth considering
// for assignment at all.
const observabilitySafety = incidence.RMax

// observable reports whether pos lies within rmax+safety of any
// fiber's patrol center.
func observable(pos geom.Vec2) bool {
	return fiberRaster.AnyIn(raster.Vec2{X: pos.X, Y: pos.Y}, incidence.RMax+observabilitySafety)
}
