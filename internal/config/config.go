// Package config loads and validates the wic configuration file.
// All values end up as plain parameters passed into the layout engine;
// the engine itself holds no settings state.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bivex/wic/internal/layout"
)

// Padding bounds. Values outside the range are clamped, not rejected,
// so a hand-edited config never breaks the daemon.
const (
	DefaultPadding = 10.0
	MinPadding     = 5.0
	MaxPadding     = 30.0
)

// Margins are per-application frame adjustments applied on top of the
// computed target rect.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}

// SlotSpec mirrors layout.Slot in YAML form.
type SlotSpec struct {
	Name string  `yaml:"name"`
	Frac float64 `yaml:"frac"`
}

// ProfileSpec defines a user profile in the config file. It compiles to
// a layout.Profile and behaves exactly like the builtin ones.
type ProfileSpec struct {
	Axis      string     `yaml:"axis"`   // "columns" (default) or "rows"
	Single    string     `yaml:"single"` // "full" (default) or "centered"
	Ultrawide bool       `yaml:"ultrawide"`
	Slots     []SlotSpec `yaml:"slots"`
}

// Hotkeys holds the global key bindings registered by the daemon.
type Hotkeys struct {
	Arrange      string `yaml:"arrange"`
	Undo         string `yaml:"undo"`
	KeepOnScreen string `yaml:"keep_on_screen"`
	CycleMode    string `yaml:"cycle_mode"`
}

// Config is the root of the YAML file.
type Config struct {
	DefaultMode string                 `yaml:"default_mode"`
	Padding     float64                `yaml:"padding"`
	MinWidth    float64                `yaml:"min_width"`
	MinHeight   float64                `yaml:"min_height"`
	Tolerance   float64                `yaml:"overlap_tolerance"`
	Hotkeys     Hotkeys                `yaml:"hotkeys"`
	AppMargins  map[string]Margins     `yaml:"app_margins,omitempty"`
	Profiles    map[string]ProfileSpec `yaml:"profiles,omitempty"`

	path string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultMode: string(layout.ModeGrid),
		Padding:     DefaultPadding,
		MinWidth:    layout.DefaultMinWidth,
		MinHeight:   layout.DefaultMinHeight,
		Tolerance:   layout.DefaultTolerance,
		Hotkeys: Hotkeys{
			Arrange:      "Mod4-space",
			Undo:         "Mod4-z",
			KeepOnScreen: "Mod4-k",
			CycleMode:    "Mod4-Tab",
		},
	}
}

// Validate normalizes the config in place and reports the first
// unrecoverable problem. Out-of-range numbers are clamped; unknown
// modes and malformed profiles are errors.
func (c *Config) Validate() error {
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.Padding < MinPadding {
		c.Padding = MinPadding
	}
	if c.Padding > MaxPadding {
		c.Padding = MaxPadding
	}
	if c.MinWidth <= 0 {
		c.MinWidth = layout.DefaultMinWidth
	}
	if c.MinHeight <= 0 {
		c.MinHeight = layout.DefaultMinHeight
	}
	if c.Tolerance <= 0 {
		c.Tolerance = layout.DefaultTolerance
	}
	if c.DefaultMode == "" {
		c.DefaultMode = string(layout.ModeGrid)
	}

	for name, spec := range c.Profiles {
		if _, err := compileProfile(name, spec); err != nil {
			return err
		}
	}

	if _, _, err := c.ResolveMode(c.DefaultMode); err != nil {
		return fmt.Errorf("default_mode: %w", err)
	}
	return nil
}

// Options converts the config into engine options.
func (c *Config) Options() layout.Options {
	return layout.Options{
		Padding:   c.Padding,
		MinWidth:  c.MinWidth,
		MinHeight: c.MinHeight,
		Tolerance: c.Tolerance,
	}
}

// ResolveMode maps a user-facing mode name to either a builtin mode or
// a compiled user profile. User profiles shadow nothing: a name that
// collides with a builtin mode is rejected at validation time.
func (c *Config) ResolveMode(name string) (layout.Mode, *layout.Profile, error) {
	if spec, ok := c.Profiles[name]; ok {
		if layout.Valid(layout.Mode(name)) {
			return "", nil, fmt.Errorf("profile %q shadows a builtin mode", name)
		}
		p, err := compileProfile(name, spec)
		if err != nil {
			return "", nil, err
		}
		return "", &p, nil
	}
	m, err := layout.ParseMode(name)
	if err != nil {
		return "", nil, err
	}
	return m, nil, nil
}

// ModeNames returns every selectable mode name: builtins first, then
// user profiles, each sorted.
func (c *Config) ModeNames() []string {
	out := make([]string, 0, len(c.Profiles)+32)
	for _, m := range layout.Modes() {
		out = append(out, string(m))
	}
	custom := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	return append(out, custom...)
}

// GetMargins returns the per-application margin adjustments for an
// app identifier, or zero margins when none are configured. Matching
// is case-insensitive.
func (c *Config) GetMargins(appID string) Margins {
	if m, ok := c.AppMargins[appID]; ok {
		return m
	}
	lower := strings.ToLower(appID)
	for k, m := range c.AppMargins {
		if strings.ToLower(k) == lower {
			return m
		}
	}
	return Margins{}
}

func compileProfile(name string, spec ProfileSpec) (layout.Profile, error) {
	if len(spec.Slots) == 0 {
		return layout.Profile{}, fmt.Errorf("profile %q: at least one slot is required", name)
	}

	p := layout.Profile{
		Axis:      layout.AxisColumns,
		Single:    layout.SingleFull,
		Ultrawide: spec.Ultrawide,
	}
	switch spec.Axis {
	case "", string(layout.AxisColumns):
	case string(layout.AxisRows):
		p.Axis = layout.AxisRows
	default:
		return layout.Profile{}, fmt.Errorf("profile %q: unknown axis %q", name, spec.Axis)
	}
	switch spec.Single {
	case "", string(layout.SingleFull):
	case string(layout.SingleCentered):
		p.Single = layout.SingleCentered
	default:
		return layout.Profile{}, fmt.Errorf("profile %q: unknown single style %q", name, spec.Single)
	}

	var total float64
	for i, s := range spec.Slots {
		if s.Frac <= 0 {
			return layout.Profile{}, fmt.Errorf("profile %q: slot %d has non-positive fraction", name, i)
		}
		total += s.Frac
		p.Slots = append(p.Slots, layout.Slot{Name: s.Name, Frac: s.Frac})
	}
	if total > 1.001 {
		return layout.Profile{}, fmt.Errorf("profile %q: slot fractions sum to %.3f (max 1)", name, total)
	}
	return p, nil
}
