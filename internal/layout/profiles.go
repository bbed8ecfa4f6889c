package layout

import (
	"fmt"
	"strings"

	"github.com/bivex/wic/internal/geometry"
)

// Axis selects the direction role slots are laid out along.
type Axis string

const (
	AxisColumns Axis = "columns" // slots split the width
	AxisRows    Axis = "rows"    // slots split the height
)

// Slot is one role-proportioned region of a workspace profile.
type Slot struct {
	Name string
	Frac float64 // fraction of the profile axis
}

// SingleStyle controls the explicit single-window degeneracy of a
// profile: the full usable area, or a centered working rect.
type SingleStyle string

const (
	SingleFull     SingleStyle = "full"
	SingleCentered SingleStyle = "centered"
)

// centeredSingleFrac sizes the single-window rect for profiles that
// degenerate to a centered placement.
const centeredSingleFrac = 0.82

// Profile is a role-proportioned layout preset. All profiles are
// executed by the same apply func; the table below is the only thing
// that distinguishes them.
type Profile struct {
	Axis      Axis
	Slots     []Slot
	Single    SingleStyle
	Ultrawide bool // delegate to Focus below the ultrawide threshold
}

// profileTable maps profile modes to their slot definitions. Fractions
// per profile sum to 1.
var profileTable = map[Mode]Profile{
	ModeReading: {
		Axis:   AxisColumns,
		Single: SingleCentered,
		Slots:  []Slot{{"reader", 0.65}, {"notes", 0.35}},
	},
	ModeCoding: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"editor", 0.5}, {"preview", 0.3}, {"console", 0.2}},
	},
	ModeCommunication: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"chat", 0.6}, {"mail", 0.4}},
	},
	ModeWriting: {
		Axis:   AxisColumns,
		Single: SingleCentered,
		Slots:  []Slot{{"draft", 0.7}, {"reference", 0.3}},
	},
	ModeResearch: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"paper", 0.45}, {"browser", 0.35}, {"notes", 0.2}},
	},
	ModeDesign: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"canvas", 0.6}, {"palette", 0.25}, {"inspector", 0.15}},
	},
	ModeDevOps: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"editor", 0.4}, {"terminal", 0.35}, {"dashboards", 0.25}},
	},
	ModeStreaming: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"scene", 0.55}, {"chat", 0.25}, {"controls", 0.2}},
	},
	ModeTrading: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"charts", 0.4}, {"orderbook", 0.35}, {"news", 0.25}},
	},
	ModeMusic: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"daw", 0.6}, {"mixer", 0.25}, {"library", 0.15}},
	},
	ModeVideoEditing: {
		Axis:   AxisRows,
		Single: SingleFull,
		Slots:  []Slot{{"preview", 0.55}, {"timeline", 0.3}, {"bins", 0.15}},
	},
	ModeDataScience: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"notebook", 0.45}, {"plots", 0.3}, {"terminal", 0.25}},
	},
	ModePresentation: {
		Axis:   AxisColumns,
		Single: SingleCentered,
		Slots:  []Slot{{"slides", 0.7}, {"notes", 0.3}},
	},
	ModeSupport: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"tickets", 0.5}, {"docs", 0.3}, {"chat", 0.2}},
	},
	ModeGamingHub: {
		Axis:   AxisColumns,
		Single: SingleFull,
		Slots:  []Slot{{"game", 0.65}, {"chat", 0.35}},
	},
	ModeUltrawideDev: {
		Axis:      AxisColumns,
		Single:    SingleCentered,
		Ultrawide: true,
		Slots:     []Slot{{"reference", 0.25}, {"editor", 0.5}, {"terminal", 0.25}},
	},
	ModeUltrawideMedia: {
		Axis:      AxisColumns,
		Single:    SingleCentered,
		Ultrawide: true,
		Slots:     []Slot{{"playlist", 0.2}, {"player", 0.6}, {"chat", 0.2}},
	},
}

// LookupProfile exposes the builtin profile table, for introspection
// and for merging user-defined profiles in config.
func LookupProfile(m Mode) (Profile, bool) {
	p, ok := profileTable[m]
	return p, ok
}

// ComputeProfile lays out n windows using an ad-hoc profile (usually a
// user-defined one from config), honoring the ultrawide delegation the
// same way builtin profile modes do.
func ComputeProfile(p Profile, n int, screen geometry.Screen, opts Options) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	if p.Ultrawide && screen.Usable.AspectRatio() < ultrawideAspectThreshold {
		return Compute(ModeFocus, n, screen, opts)
	}
	return p.apply(n, screen.Usable)
}

// apply lays out n windows: the first windows fill the role slots (with
// fractions renormalized when fewer windows than slots), and windows
// beyond the last slot stack inside the last slot's rect, equally
// dividing its cross-axis.
func (p Profile) apply(n int, r geometry.Rect) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		if p.Single == SingleCentered {
			return []geometry.Rect{geometry.Centered(r.Width*centeredSingleFrac, r.Height*centeredSingleFrac, r)}
		}
		return []geometry.Rect{r}
	}

	slots := p.Slots
	if len(slots) == 0 {
		return columnsLayout(n, r)
	}
	if n < len(slots) {
		slots = slots[:n]
	}

	var total float64
	for _, s := range slots {
		total += s.Frac
	}
	if total <= 0 {
		return columnsLayout(n, r)
	}

	slotRects := make([]geometry.Rect, len(slots))
	offset := 0.0
	for i, s := range slots {
		frac := s.Frac / total
		if p.Axis == AxisRows {
			h := r.Height * frac
			slotRects[i] = geometry.Rect{X: r.X, Y: r.Y + offset, Width: r.Width, Height: h}
			offset += h
		} else {
			w := r.Width * frac
			slotRects[i] = geometry.Rect{X: r.X + offset, Y: r.Y, Width: w, Height: r.Height}
			offset += w
		}
	}

	out := make([]geometry.Rect, n)
	copy(out, slotRects)
	if n <= len(slots) {
		return out
	}

	// Overflow windows share the last slot, stacking along its
	// cross-axis together with the window that owns the slot.
	last := slotRects[len(slotRects)-1]
	overflow := n - len(slots) + 1
	stack := stackWithin(last, overflow, p.Axis)
	for i := 0; i < overflow; i++ {
		out[len(slots)-1+i] = stack[i]
	}
	return out
}

// stackWithin divides r into count pieces along the cross-axis of axis.
func stackWithin(r geometry.Rect, count int, axis Axis) []geometry.Rect {
	if axis == AxisRows {
		return columnsLayout(count, r)
	}
	return rowsLayout(count, r)
}

func (p Profile) describe() string {
	names := make([]string, len(p.Slots))
	for i, s := range p.Slots {
		names[i] = fmt.Sprintf("%s %d%%", s.Name, int(s.Frac*100+0.5))
	}
	return "profile: " + strings.Join(names, " / ")
}
