// Package layout computes target rectangles for a batch of windows on a
// screen. Every mode is a pure function of (window count, screen,
// options); the package holds no mutable state.
package layout

import (
	"fmt"
	"sort"
)

// Mode identifies a layout strategy. The set is closed: Compute rejects
// anything not listed here.
type Mode string

// Basic partitioning modes.
const (
	ModeGrid       Mode = "grid"
	ModeHorizontal Mode = "horizontal" // equal-width columns
	ModeVertical   Mode = "vertical"   // equal-height rows
	ModeCascade    Mode = "cascade"
	ModeFibonacci  Mode = "fibonacci" // golden-ratio master-stack
	ModeFocus      Mode = "focus"     // 2:1 master-stack
)

// Adaptive modes.
const (
	ModeMultiTask Mode = "multi-task"
)

// Constraint solver modes.
const (
	ModeProjection Mode = "projection"
	ModeBarrier    Mode = "barrier"
	ModeActiveSet  Mode = "active-set"
	ModeRelaxation Mode = "relaxation"
	ModePivot      Mode = "pivot"
)

// Workspace profile modes. Each maps to an entry in the profile table.
const (
	ModeReading        Mode = "reading"
	ModeCoding         Mode = "coding"
	ModeCommunication  Mode = "communication"
	ModeWriting        Mode = "writing"
	ModeResearch       Mode = "research"
	ModeDesign         Mode = "design"
	ModeDevOps         Mode = "devops"
	ModeStreaming      Mode = "streaming"
	ModeTrading        Mode = "trading"
	ModeMusic          Mode = "music"
	ModeVideoEditing   Mode = "video-editing"
	ModeDataScience    Mode = "data-science"
	ModePresentation   Mode = "presentation"
	ModeSupport        Mode = "support"
	ModeGamingHub      Mode = "gaming-hub"
	ModeUltrawideDev   Mode = "ultrawide-dev"
	ModeUltrawideMedia Mode = "ultrawide-media"
)

// Modes returns every valid mode, sorted by family then name. Used by
// the CLI, TUI, IPC and MCP listings.
func Modes() []Mode {
	basic := []Mode{ModeGrid, ModeHorizontal, ModeVertical, ModeCascade, ModeFibonacci, ModeFocus}
	adaptive := []Mode{ModeMultiTask}
	solvers := []Mode{ModeProjection, ModeBarrier, ModeActiveSet, ModeRelaxation, ModePivot}

	profiles := make([]Mode, 0, len(profileTable))
	for m := range profileTable {
		profiles = append(profiles, m)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i] < profiles[j] })

	out := make([]Mode, 0, len(basic)+len(profiles)+len(solvers)+len(adaptive))
	out = append(out, basic...)
	out = append(out, profiles...)
	out = append(out, solvers...)
	out = append(out, adaptive...)
	return out
}

// Valid reports whether m names a known mode.
func Valid(m Mode) bool {
	switch m {
	case ModeGrid, ModeHorizontal, ModeVertical, ModeCascade, ModeFibonacci, ModeFocus,
		ModeMultiTask,
		ModeProjection, ModeBarrier, ModeActiveSet, ModeRelaxation, ModePivot:
		return true
	}
	_, ok := profileTable[m]
	return ok
}

// Family classifies a mode for display purposes.
func Family(m Mode) string {
	switch m {
	case ModeGrid, ModeHorizontal, ModeVertical, ModeCascade, ModeFibonacci, ModeFocus:
		return "basic"
	case ModeProjection, ModeBarrier, ModeActiveSet, ModeRelaxation, ModePivot:
		return "solver"
	case ModeMultiTask:
		return "adaptive"
	}
	if _, ok := profileTable[m]; ok {
		return "profile"
	}
	return "unknown"
}

// ParseMode validates a mode name from user input.
func ParseMode(name string) (Mode, error) {
	m := Mode(name)
	if !Valid(m) {
		return "", fmt.Errorf("unknown layout mode: %q", name)
	}
	return m, nil
}
