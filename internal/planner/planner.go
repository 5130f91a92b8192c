// Package planner implements the exposure evaluator and the outer
// planning loop: picking the best dithered pointing for each exposure
// and stripping observed time from the catalog until it is exhausted
// or the coverage threshold is met.
package planner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/fiberplan/fiberplan/internal/assign"
	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
	"github.com/fiberplan/fiberplan/internal/report"
)

// fieldAcceptanceRadius is the focal-plane distance (mm) beyond which
// a target is outside the instrument's field and dropped up front.
const fieldAcceptanceRadius = 190.0

// Config holds the parameters of one planning run, mirroring the
// configuration surface in full.
type Config struct {
	Assigner assign.Kind

	// RADeg, DecDeg is the nominal pointing center, in degrees.
	RADeg, DecDeg float64
	// PosAngDeg is the nominal position angle, in degrees.
	PosAngDeg float64
	// DPosAngDeg is the position-angle dither half-width, in degrees.
	DPosAngDeg float64
	// NPosAng is the position-angle grid count.
	NPosAng int
	// DPtgDeg is the pointing dither half-width, in degrees.
	DPtgDeg float64
	// NPtg is the pointing grid count per axis.
	NPtg int

	// Fract is the coverage-fraction termination threshold.
	Fract float64

	// Workers bounds the goroutine fan-out used by the dither search.
	// Zero means runtime.GOMAXPROCS(0).
	Workers int
}

// Exposure is one planned exposure: the pointing and angle it was
// taken at, its duration, the assignments chosen, and the running
// coverage fractions after this exposure was applied.
type Exposure struct {
	N        int
	Center   geom.Pointing
	PosAng   float64 // radians
	Duration float64
	Result   model.ExposureResult

	// FiberFraction is the fraction of fibers assigned in this exposure.
	FiberFraction float64
	// CoverageFraction is the accumulated observed-time fraction
	// (acc/ttime) across all exposures up to and including this one.
	CoverageFraction float64
}

// SingleExposure runs the full §4.7 evaluator: transform targets into
// the focal plane under (center, posAng), restrict to observable
// positions, run the assigner, and translate the result back to
// original catalog indices.
func SingleExposure(targets []model.Target, center geom.Pointing, posAng float64, kind assign.Kind) model.ExposureResult {
	transformed := model.Clone(targets)
	for i := range transformed {
		transformed[i].Pos = geom.ToFocalPlaneOne(targets[i].Pos.X, targets[i].Pos.Y, center, posAng, 0)
	}

	var restricted []model.Target
	origIdx := make([]int, 0, len(transformed))
	for i, t := range transformed {
		if observable(t.Pos) {
			restricted = append(restricted, t)
			origIdx = append(origIdx, i)
		}
	}

	res := assign.Run(kind, restricted)
	for i, t := range res.TargetIdx {
		res.TargetIdx[i] = origIdx[t]
	}
	return res
}

type candidate struct {
	idx, idy, ida int
	center        geom.Pointing
	posAng        float64
}

// OptimalExposure runs the §4.8 dithered search: a grid of candidate
// pointings and position angles around (c0, psi0Deg), each evaluated
// independently, keeping the candidate with the most assignments
// (ties broken by scan order: idx outer, idy middle, ida inner).
// Candidates are evaluated concurrently across up to workers
// goroutines; the result-selection reduction preserves the
// scan-order tie-break regardless of completion order.
func OptimalExposure(ctx context.Context, targets []model.Target, c0 geom.Pointing, psi0Deg float64, cfg Config, workers int) (geom.Pointing, float64, model.ExposureResult) {
	ex, ey := geom.TangentAxes(c0)
	psi0 := psi0Deg * math.Pi / 180
	dptg := cfg.DPtgDeg * math.Pi / 180
	dposang := cfg.DPosAngDeg * math.Pi / 180
	nptg := cfg.NPtg
	nposang := cfg.NPosAng

	candidates := make([]candidate, 0, nptg*nptg*nposang)
	for idx := 0; idx < nptg; idx++ {
		dx := -dptg + 2*dptg*(float64(idx)+0.5)/float64(nptg)
		for idy := 0; idy < nptg; idy++ {
			dy := -dptg + 2*dptg*(float64(idy)+0.5)/float64(nptg)
			cand := geom.Displace(c0, ex, ey, dx, dy)
			for ida := 0; ida < nposang; ida++ {
				da := -dposang + 2*dposang*(float64(ida)+0.5)/float64(nposang)
				candidates = append(candidates, candidate{
					idx: idx, idy: idy, ida: ida,
					center: cand,
					posAng: psi0 + da,
				})
			}
		}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]model.ExposureResult, len(candidates))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				c := candidates[i]
				results[i] = SingleExposure(targets, c.center, c.posAng, cfg.Assigner)
			}
		}()
	}
	for i := range candidates {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	best := -1
	for i := range candidates {
		if best == -1 || results[i].Len() > results[best].Len() {
			best = i
		}
	}
	if best == -1 {
		return c0, psi0, model.ExposureResult{}
	}
	return candidates[best].center, candidates[best].posAng, results[best]
}

// Run executes the §4.9 outer planning loop: repeatedly finds the
// best dithered exposure, records it, strips observed time from the
// catalog, and terminates on an empty result or coverage threshold.
// Each completed exposure is appended to reportOut (if non-nil) and
// summarized on progressOut (if non-nil) as it is produced.
func Run(ctx context.Context, targets []model.Target, cfg Config, reportOut io.Writer, progressOut io.Writer, onExposure func(Exposure), log *slog.Logger) ([]Exposure, error) {
	var progress *report.Progress
	if progressOut != nil {
		progress = report.NewProgress(progressOut)
	}
	c0 := geom.RADecToPointing(cfg.RADeg, cfg.DecDeg)
	psi0 := cfg.PosAngDeg

	filtered := make([]model.Target, 0, len(targets))
	for _, t := range targets {
		fp := geom.ToFocalPlaneOne(t.Pos.X, t.Pos.Y, c0, psi0*math.Pi/180, 0)
		if fp.X*fp.X+fp.Y*fp.Y < fieldAcceptanceRadius*fieldAcceptanceRadius {
			filtered = append(filtered, t)
		}
	}

	ttime := 0.0
	for _, t := range filtered {
		ttime += t.Time
	}
	if ttime == 0 {
		return nil, nil
	}

	var acc, time2 float64
	var cnt int
	var exposures []Exposure

	for {
		if err := ctx.Err(); err != nil {
			return exposures, err
		}

		center, posAng, res := OptimalExposure(ctx, filtered, c0, psi0, cfg, cfg.Workers)
		if res.Len() == 0 {
			break
		}

		dur := math.Inf(1)
		for _, ti := range res.TargetIdx {
			if filtered[ti].Time < dur {
				dur = filtered[ti].Time
			}
		}

		acc += float64(res.Len()) * dur
		time2 += dur
		cnt++

		raDeg, decDeg := report.CenterRADec(center)
		posAngDeg := posAng * 180 / math.Pi
		fiberFraction := float64(res.Len()) / float64(geom.NumFibers)
		coverageFraction := acc / ttime

		exp := Exposure{
			N: cnt, Center: center, PosAng: posAng, Duration: dur, Result: res,
			FiberFraction: fiberFraction, CoverageFraction: coverageFraction,
		}
		exposures = append(exposures, exp)

		log.Info("exposure planned",
			"n", cnt,
			"assigned", res.Len(),
			"fiber_fraction", fiberFraction,
			"coverage_fraction", coverageFraction,
			"total_exposure_time", time2,
		)
		if reportOut != nil {
			rec := report.Exposure{
				N: cnt, CenterRADeg: raDeg, CenterDecDeg: decDeg, PosAngDeg: posAngDeg,
				Duration: dur, TargetIdx: res.TargetIdx, FiberIdx: res.FiberIdx,
			}
			if err := report.WriteExposure(reportOut, rec, filtered); err != nil {
				return exposures, fmt.Errorf("planner: writing exposure %d: %w", cnt, err)
			}
		}
		if progress != nil {
			if err := progress.Line(cnt, fiberFraction, coverageFraction, time2, raDeg, decDeg, posAngDeg); err != nil {
				return exposures, fmt.Errorf("planner: writing progress for exposure %d: %w", cnt, err)
			}
		}
		if onExposure != nil {
			onExposure(exp)
		}

		if acc/ttime > cfg.Fract {
			break
		}

		assigned := make(map[int]bool, res.Len())
		for _, ti := range res.TargetIdx {
			assigned[ti] = true
		}
		kept := filtered[:0]
		for i, t := range filtered {
			if assigned[i] {
				t.Time -= dur
				if t.Time <= 1e-7 {
					continue
				}
			}
			kept = append(kept, t)
		}
		filtered = kept
	}

	return exposures, nil
}
