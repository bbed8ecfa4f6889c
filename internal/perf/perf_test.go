package perf

import (
	"strings"
	"testing"
)

const sampleLog = `
2026/03/01 12:00:01 Found 4 window(s)
2026/03/01 12:00:01 Completed: arrange in 4.20ms (moved 4 of 4)
2026/03/01 12:00:05 Completed: arrange in 6.80ms (moved 3 of 4)
2026/03/01 12:00:09 Completed: arrange in 5.00ms (moved 4 of 4)
2026/03/01 12:00:12 Completed: keep-on-screen in 0.45ms
2026/03/01 12:00:30 Completed: config reload in 120.00ms
not a timing line
`

func TestParseCollectsOperations(t *testing.T) {
	rep, err := Parse(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if rep.Empty() {
		t.Fatal("report is empty")
	}
	if got := rep.TotalCalls(); got != 5 {
		t.Errorf("TotalCalls = %d, want 5", got)
	}

	ops := rep.Operations()
	if len(ops) != 3 {
		t.Fatalf("got %d operations, want 3", len(ops))
	}
	// Sorted slowest first.
	if ops[0].Operation != "config reload" {
		t.Errorf("slowest = %q, want config reload", ops[0].Operation)
	}
	if ops[len(ops)-1].Operation != "keep-on-screen" {
		t.Errorf("fastest = %q, want keep-on-screen", ops[len(ops)-1].Operation)
	}
}

func TestStatsValues(t *testing.T) {
	rep, err := Parse(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var arrange Stats
	found := false
	for _, s := range rep.Operations() {
		if s.Operation == "arrange" {
			arrange = s
			found = true
		}
	}
	if !found {
		t.Fatal("arrange not found")
	}
	if arrange.Count != 3 {
		t.Errorf("Count = %d, want 3", arrange.Count)
	}
	if !approx(arrange.Mean, 16.0/3) {
		t.Errorf("Mean = %v, want %v", arrange.Mean, 16.0/3)
	}
	if !approx(arrange.Median, 5.0) {
		t.Errorf("Median = %v, want 5.0", arrange.Median)
	}
	if !approx(arrange.Min, 4.2) || !approx(arrange.Max, 6.8) {
		t.Errorf("range = %v-%v, want 4.2-6.8", arrange.Min, arrange.Max)
	}
	if arrange.StdDev <= 0 {
		t.Errorf("StdDev = %v, want > 0", arrange.StdDev)
	}
	if arrange.P95 < arrange.Median || arrange.P95 > arrange.Max {
		t.Errorf("P95 = %v outside [median, max]", arrange.P95)
	}
}

func TestBottlenecks(t *testing.T) {
	rep, err := Parse(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	slow := rep.Bottlenecks()
	if len(slow) != 1 || slow[0].Operation != "config reload" {
		t.Errorf("Bottlenecks = %+v, want only config reload", slow)
	}
}

func TestParseEmptyInput(t *testing.T) {
	rep, err := Parse(strings.NewReader("nothing here\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !rep.Empty() {
		t.Error("expected empty report")
	}

	var sb strings.Builder
	rep.Render(&sb)
	if !strings.Contains(sb.String(), "no timing data") {
		t.Errorf("Render = %q, want no-data notice", sb.String())
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		ms   float64
		want string
	}{
		{0.45, "450.0µs"},
		{4.2, "4.20ms"},
		{999.9, "999.90ms"},
		{1500, "1.50s"},
	}
	for _, c := range cases {
		if got := FormatTime(c.ms); got != c.want {
			t.Errorf("FormatTime(%v) = %q, want %q", c.ms, got, c.want)
		}
	}
}

func TestRenderIncludesOperations(t *testing.T) {
	rep, err := Parse(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var sb strings.Builder
	rep.Render(&sb)
	out := sb.String()
	for _, want := range []string{"arrange", "keep-on-screen", "config reload", "Overall"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render missing %q", want)
		}
	}
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
