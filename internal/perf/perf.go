// Package perf parses daemon timing logs and summarizes operation
// latency. The daemon logs completed operations as
// "Completed: <name> in <duration>ms"; this package aggregates those
// lines into per-operation statistics.
package perf

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
)

var completedPattern = regexp.MustCompile(`Completed: (.*?) in ([0-9.]+)ms`)

// Stats holds latency statistics for one operation, in milliseconds.
type Stats struct {
	Operation string
	Count     int
	Mean      float64
	Median    float64
	P95       float64
	Min       float64
	Max       float64
	Total     float64
	StdDev    float64
}

// Report aggregates parsed timing samples across operations.
type Report struct {
	samples map[string][]float64
}

// Parse scans log lines from r and collects timing samples.
func Parse(r io.Reader) (*Report, error) {
	rep := &Report{samples: make(map[string][]float64)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		m := completedPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		ms, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		rep.samples[m[1]] = append(rep.samples[m[1]], ms)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rep, nil
}

// Empty reports whether no timing samples were found.
func (r *Report) Empty() bool {
	return len(r.samples) == 0
}

// TotalCalls returns the number of samples across all operations.
func (r *Report) TotalCalls() int {
	n := 0
	for _, s := range r.samples {
		n += len(s)
	}
	return n
}

// TotalTime returns the summed duration of all samples in milliseconds.
func (r *Report) TotalTime() float64 {
	t := 0.0
	for _, s := range r.samples {
		for _, ms := range s {
			t += ms
		}
	}
	return t
}

// Operations returns per-operation statistics sorted by mean latency,
// slowest first.
func (r *Report) Operations() []Stats {
	out := make([]Stats, 0, len(r.samples))
	for op, times := range r.samples {
		out = append(out, compute(op, times))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

// Bottlenecks returns operations whose mean latency exceeds 100ms.
func (r *Report) Bottlenecks() []Stats {
	var out []Stats
	for _, s := range r.Operations() {
		if s.Mean > 100 {
			out = append(out, s)
		}
	}
	return out
}

func compute(op string, times []float64) Stats {
	s := Stats{
		Operation: op,
		Count:     len(times),
		Min:       times[0],
		Max:       times[0],
	}
	for _, t := range times {
		s.Total += t
		if t < s.Min {
			s.Min = t
		}
		if t > s.Max {
			s.Max = t
		}
	}
	s.Mean = s.Total / float64(s.Count)

	sorted := append([]float64(nil), times...)
	sort.Float64s(sorted)
	s.Median = percentile(sorted, 0.5)
	s.P95 = percentile(sorted, 0.95)

	if s.Count > 1 {
		var sq float64
		for _, t := range times {
			d := t - s.Mean
			sq += d * d
		}
		s.StdDev = math.Sqrt(sq / float64(s.Count-1))
	}
	return s
}

// percentile interpolates linearly over an already sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FormatTime renders a millisecond duration in the most readable unit.
func FormatTime(ms float64) string {
	switch {
	case ms < 1:
		return strconv.FormatFloat(ms*1000, 'f', 1, 64) + "µs"
	case ms < 1000:
		return strconv.FormatFloat(ms, 'f', 2, 64) + "ms"
	default:
		return strconv.FormatFloat(ms/1000, 'f', 2, 64) + "s"
	}
}
