package catalog

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestParseValidRecords(t *testing.T) {
	in := `# comment line
ID1 10.0 20.0 100.0 1
ID2 11.5 -5.25 50 2  # trailing comment

ID3 0 0 1 0
`
	targets, err := Parse(strings.NewReader(in), testLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(targets) != 3 {
		t.Fatalf("len(targets) = %d, want 3", len(targets))
	}
	if targets[0].ID != 1 || targets[0].Pos.X != 10.0 || targets[0].Pos.Y != 20.0 || targets[0].Time != 100.0 || targets[0].Priority != 1 {
		t.Errorf("targets[0] = %+v", targets[0])
	}
	if targets[1].ID != 2 || targets[1].Priority != 2 {
		t.Errorf("targets[1] = %+v", targets[1])
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	in := `ID1 10.0 20.0 100.0 1
BADLINE missing fields
ID2 1 2 3 4 5 6
ID3 1 2 -5 1
ID4 5.0 6.0 10.0 2
`
	targets, err := Parse(strings.NewReader(in), testLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("len(targets) = %d, want 2 (only ID1 and ID4 valid): %+v", len(targets), targets)
	}
}

func TestParseEmptyInput(t *testing.T) {
	targets, err := Parse(strings.NewReader(""), testLogger())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("len(targets) = %d, want 0", len(targets))
	}
}
