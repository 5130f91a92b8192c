package report

import (
	"strings"
	"testing"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
)

func TestWriteExposureFormat(t *testing.T) {
	targets := []model.Target{
		{ID: 7, Pos: geom.Vec2{X: 10.5, Y: 20.25}, Time: 100, Priority: 1},
	}
	exp := Exposure{
		N: 1, CenterRADeg: 10, CenterDecDeg: 20, PosAngDeg: 0,
		Duration: 42, TargetIdx: []int{0}, FiberIdx: []int{99},
	}

	var buf strings.Builder
	if err := WriteExposure(&buf, exp, targets); err != nil {
		t.Fatalf("WriteExposure() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "Exposure 1: duration 42s, RA: 10, DEC 20 PA: 0\n") {
		t.Errorf("unexpected header line: %q", out)
	}
	if !strings.Contains(out, "Target") || !strings.Contains(out, "Fiber") {
		t.Errorf("missing column header: %q", out)
	}
	// Fiber is reported 1-based.
	if !strings.Contains(out, "100") {
		t.Errorf("expected 1-based fiber number 100 in output: %q", out)
	}
}

func TestProgressHeaderWrittenOnce(t *testing.T) {
	var buf strings.Builder
	p := NewProgress(&buf)

	if err := p.Line(1, 0.1, 0.2, 5, 10, 20, 0); err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if err := p.Line(2, 0.3, 0.4, 10, 11, 21, 1); err != nil {
		t.Fatalf("Line() error = %v", err)
	}

	out := buf.String()
	if strings.Count(out, "tile #") != 1 {
		t.Errorf("expected header exactly once, got %d: %q", strings.Count(out, "tile #"), out)
	}
}
