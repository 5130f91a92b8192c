// Package report formats planner output: the per-exposure report
// file and the per-exposure progress line written to stdout.
package report

import (
	"fmt"
	"io"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
)

// Exposure is the subset of a planned exposure needed to render its
// report block and progress line.
type Exposure struct {
	N                      int
	CenterRADeg, CenterDecDeg float64
	PosAngDeg              float64
	Duration               float64
	TargetIdx, FiberIdx    []int
}

// WriteExposure appends one exposure's report block to w: a header
// line naming the exposure's duration and pointing, followed by one
// row per assignment giving the catalog id, 1-based fiber number, and
// the target's sky position.
func WriteExposure(w io.Writer, exp Exposure, targets []model.Target) error {
	if _, err := fmt.Fprintf(w, "Exposure %d: duration %gs, RA: %g, DEC %g PA: %g\n",
		exp.N, exp.Duration, exp.CenterRADeg, exp.CenterDecDeg, exp.PosAngDeg); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  Target     Fiber        RA       DEC\n"); err != nil {
		return err
	}
	for i, ti := range exp.TargetIdx {
		fiber := exp.FiberIdx[i]
		t := targets[ti]
		if _, err := fmt.Fprintf(w, "%9d  %9d  %8g  %8g\n", t.ID, fiber+1, t.Pos.X, t.Pos.Y); err != nil {
			return err
		}
	}
	return nil
}

// Progress writes the §6 stdout progress stream: a header line, then
// one exposure-summary line plus a pointing line per exposure.
type Progress struct {
	w             io.Writer
	headerWritten bool
}

// NewProgress returns a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// Line emits the running totals for one exposure: its index, the
// fraction of fibers used, the accumulated coverage fraction, and the
// total exposure time so far, followed by the pointing actually used.
func (p *Progress) Line(cnt int, fiberFraction, coverageFraction, totalTime float64, raDeg, decDeg, posAngDeg float64) error {
	if !p.headerWritten {
		if _, err := fmt.Fprintln(p.w, "tile # | fiber allocation fraction | total observation fraction | time"); err != nil {
			return err
		}
		p.headerWritten = true
	}
	if _, err := fmt.Fprintf(p.w, "%d %g %g %g\n", cnt, fiberFraction, coverageFraction, totalTime); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%g %g %g\n", raDeg, decDeg, posAngDeg)
	return err
}

// CenterRADec is a convenience conversion from a pointing vector to
// the RA/DEC degrees used in report and progress output.
func CenterRADec(c geom.Pointing) (raDeg, decDeg float64) {
	return geom.PointingToRADec(c)
}
