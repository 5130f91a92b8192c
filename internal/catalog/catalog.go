// Package catalog parses the ASCII target catalog format: one record
// per line, "#" comments, "ID<int> x y time priority" fields.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fiberplan/fiberplan/internal/geom"
	"github.com/fiberplan/fiberplan/internal/model"
)

// Parse reads targets from r, logging and skipping any malformed
// line rather than failing the whole catalog.
func Parse(r io.Reader, log *slog.Logger) ([]model.Target, error) {
	var targets []model.Target
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		t, err := parseLine(line)
		if err != nil {
			log.Warn("skipping malformed catalog line", "line", lineNo, "text", line, "error", err)
			continue
		}
		targets = append(targets, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return targets, nil
}

func parseLine(line string) (model.Target, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return model.Target{}, fmt.Errorf("want 5 fields, got %d", len(fields))
	}

	idField := fields[0]
	if !strings.HasPrefix(idField, "ID") {
		return model.Target{}, fmt.Errorf("identifier %q missing ID prefix", idField)
	}
	id, err := strconv.Atoi(idField[2:])
	if err != nil {
		return model.Target{}, fmt.Errorf("identifier %q: %w", idField, err)
	}

	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return model.Target{}, fmt.Errorf("x %q: %w", fields[1], err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return model.Target{}, fmt.Errorf("y %q: %w", fields[2], err)
	}
	t, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return model.Target{}, fmt.Errorf("time %q: %w", fields[3], err)
	}
	if t <= 0 {
		return model.Target{}, fmt.Errorf("time %v must be positive", t)
	}
	pri, err := strconv.Atoi(fields[4])
	if err != nil {
		return model.Target{}, fmt.Errorf("priority %q: %w", fields[4], err)
	}

	return model.Target{
		ID:       id,
		Pos:      geom.Vec2{X: x, Y: y},
		Time:     t,
		Priority: pri,
	}, nil
}
