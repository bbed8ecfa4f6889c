package perf

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	opStyle     = lipgloss.NewStyle().Bold(true)
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// rating buckets mirror the latency expectations of interactive
// window management: anything over a frame or two is noticeable.
func rating(ms float64) string {
	switch {
	case ms < 10:
		return goodStyle.Render("excellent")
	case ms < 50:
		return okStyle.Render("good")
	case ms < 100:
		return warnStyle.Render("moderate")
	case ms < 500:
		return warnStyle.Render("slow")
	default:
		return badStyle.Render("very slow")
	}
}

// Render writes a human-readable analysis of the report to w.
func (r *Report) Render(w io.Writer) {
	if r.Empty() {
		fmt.Fprintln(w, warnStyle.Render("no timing data found"))
		return
	}

	fmt.Fprintln(w, headerStyle.Render("Performance Analysis"))
	fmt.Fprintln(w)

	ops := r.Operations()
	limit := len(ops)
	if limit > 15 {
		limit = 15
	}
	for i, s := range ops[:limit] {
		fmt.Fprintf(w, "%2d. %s\n", i+1, opStyle.Render(s.Operation))
		fmt.Fprintf(w, "    calls  %d\n", s.Count)
		fmt.Fprintf(w, "    avg    %10s  %s\n", FormatTime(s.Mean), rating(s.Mean))
		fmt.Fprintf(w, "    median %10s   p95 %s\n", FormatTime(s.Median), FormatTime(s.P95))
		fmt.Fprintf(w, "    range  %10s - %s\n", FormatTime(s.Min), FormatTime(s.Max))
		if s.StdDev > 0 {
			fmt.Fprintf(w, "    stddev %10s\n", FormatTime(s.StdDev))
		}
		fmt.Fprintf(w, "    total  %10s\n\n", FormatTime(s.Total))
	}

	totalTime := r.TotalTime()
	totalCalls := r.TotalCalls()
	fmt.Fprintln(w, headerStyle.Render("Overall"))
	fmt.Fprintf(w, "    operations %d unique, %d calls\n", len(ops), totalCalls)
	fmt.Fprintf(w, "    total time %s\n", FormatTime(totalTime))
	fmt.Fprintf(w, "    avg call   %s\n", FormatTime(totalTime/float64(totalCalls)))

	if slow := r.Bottlenecks(); len(slow) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Bottlenecks (avg > 100ms)"))
		for _, s := range slow {
			share := s.Total / totalTime * 100
			fmt.Fprintf(w, "    %s  avg %s, total %s (%.1f%% of total)\n",
				badStyle.Render(s.Operation), FormatTime(s.Mean), FormatTime(s.Total), share)
		}
	}
}
