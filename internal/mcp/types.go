package mcp

// ListModesInput is the input for the list_modes tool.
type ListModesInput struct{}

// ModeInfo describes a single selectable mode.
type ModeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom"`
}

// ListModesOutput is the output for the list_modes tool.
type ListModesOutput struct {
	Modes       []ModeInfo `json:"modes"`
	DefaultMode string     `json:"default_mode"`
	ActiveMode  string     `json:"active_mode,omitempty"`
}

// ArrangeInput is the input for the arrange tool.
type ArrangeInput struct {
	Mode string `json:"mode,omitempty" jsonschema:"Mode to arrange with (default: the daemon's active mode)"`
}

// ArrangeOutput is the output for the arrange tool.
type ArrangeOutput struct {
	Mode string `json:"mode"`
}

// SetDefaultModeInput is the input for the set_default_mode tool.
type SetDefaultModeInput struct {
	Mode       string `json:"mode" jsonschema:"required,Mode to persist as default_mode in the config file"`
	ArrangeNow bool   `json:"arrange_now,omitempty" jsonschema:"When true, arrange the active display immediately"`
}

// SetDefaultModeOutput is the output for the set_default_mode tool.
type SetDefaultModeOutput struct {
	Mode string `json:"mode"`
}

// GetMonitorsInput is the input for the get_monitors tool.
type GetMonitorsInput struct{}

// MonitorInfo describes a single monitor.
type MonitorInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	UsableWidth  int    `json:"usable_width"`
	UsableHeight int    `json:"usable_height"`
}

// GetMonitorsOutput is the output for the get_monitors tool.
type GetMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	DaemonRunning bool   `json:"daemon_running"`
	ActiveMode    string `json:"active_mode,omitempty"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// UndoInput is the input for the undo tool.
type UndoInput struct{}

// UndoOutput is the output for the undo tool.
type UndoOutput struct {
	Undone bool `json:"undone"`
}

// PreviewModeInput is the input for the preview_mode tool.
type PreviewModeInput struct {
	Mode        string  `json:"mode" jsonschema:"required,Mode to preview"`
	WindowCount int     `json:"window_count,omitempty" jsonschema:"Number of windows to lay out (default: 4)"`
	Width       float64 `json:"width,omitempty" jsonschema:"Simulated usable width in pixels (default: 1920)"`
	Height      float64 `json:"height,omitempty" jsonschema:"Simulated usable height in pixels (default: 1040)"`
}

// PreviewRect is one computed window frame.
type PreviewRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PreviewModeOutput is the output for the preview_mode tool.
type PreviewModeOutput struct {
	Mode    string        `json:"mode"`
	Windows []PreviewRect `json:"windows"`
}
