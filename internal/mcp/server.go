// Package mcp exposes the arrangement engine and daemon to MCP clients
// over stdio transport. Arrangement tools talk to the daemon via IPC;
// preview_mode runs the engine in-process and works without a daemon.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/geometry"
	"github.com/bivex/wic/internal/ipc"
	"github.com/bivex/wic/internal/layout"
)

const (
	ServerName    = "wic"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for window arrangement.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	client    *ipc.Client
}

// NewServer creates a new MCP server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_modes",
		Description: "List all selectable arrangement modes (builtin modes and user-defined profiles) with the configured default and, when the daemon is running, the active mode.",
	}, s.handleListModes)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "arrange",
		Description: "Arrange all windows on the active display. Pass a mode to switch the daemon's active mode first; omit it to reuse the current one. Requires the daemon.",
	}, s.handleArrange)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_default_mode",
		Description: "Persist a mode as default_mode in the config file, optionally arranging the active display immediately. Requires the daemon.",
	}, s.handleSetDefaultMode)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_monitors",
		Description: "List connected monitors with their full and usable frames. Requires the daemon.",
	}, s.handleGetMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report daemon status: active mode, window count on the active display, and uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo",
		Description: "Restore windows on the active display to their geometry before the last arrangement. Requires the daemon.",
	}, s.handleUndo)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview_mode",
		Description: "Compute the window frames a mode would produce on a simulated display without moving anything. Works without the daemon.",
	}, s.handlePreviewMode)
}

func (s *Server) handleListModes(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListModesInput) (*mcpsdk.CallToolResult, ListModesOutput, error) {
	out := ListModesOutput{DefaultMode: s.config.DefaultMode}

	for _, name := range s.config.ModeNames() {
		info := ModeInfo{Name: name}
		if layout.Valid(layout.Mode(name)) {
			info.Description = layout.Describe(layout.Mode(name))
		} else {
			info.Custom = true
		}
		out.Modes = append(out.Modes, info)
	}

	// Daemon state is optional here; the mode list is config-derived.
	if data, err := s.client.ListModes(); err == nil {
		out.ActiveMode = data.ActiveMode
		out.DefaultMode = data.DefaultMode
	}

	return nil, out, nil
}

func (s *Server) handleArrange(_ context.Context, _ *mcpsdk.CallToolRequest, args ArrangeInput) (*mcpsdk.CallToolResult, ArrangeOutput, error) {
	if args.Mode != "" {
		if _, _, err := s.config.ResolveMode(args.Mode); err != nil {
			return nil, ArrangeOutput{}, err
		}
	}

	if err := s.client.Arrange(args.Mode); err != nil {
		return nil, ArrangeOutput{}, err
	}

	mode := args.Mode
	if mode == "" {
		if status, err := s.client.GetStatus(); err == nil {
			mode = status.ActiveMode
		}
	}
	return nil, ArrangeOutput{Mode: mode}, nil
}

func (s *Server) handleSetDefaultMode(_ context.Context, _ *mcpsdk.CallToolRequest, args SetDefaultModeInput) (*mcpsdk.CallToolResult, SetDefaultModeOutput, error) {
	if args.Mode == "" {
		return nil, SetDefaultModeOutput{}, fmt.Errorf("mode is required")
	}
	if err := s.client.SetDefaultMode(args.Mode, args.ArrangeNow); err != nil {
		return nil, SetDefaultModeOutput{}, err
	}
	return nil, SetDefaultModeOutput{Mode: args.Mode}, nil
}

func (s *Server) handleGetMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetMonitorsInput) (*mcpsdk.CallToolResult, GetMonitorsOutput, error) {
	data, err := s.client.GetMonitors()
	if err != nil {
		return nil, GetMonitorsOutput{}, err
	}

	out := GetMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			ID:           m.ID,
			Name:         m.Name,
			X:            m.X,
			Y:            m.Y,
			Width:        m.Width,
			Height:       m.Height,
			UsableWidth:  m.UsableWidth,
			UsableHeight: m.UsableHeight,
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		// Not running is a valid answer, not a tool failure.
		return nil, GetStatusOutput{DaemonRunning: false}, nil
	}
	return nil, GetStatusOutput{
		DaemonRunning: status.DaemonRunning,
		ActiveMode:    status.ActiveMode,
		WindowCount:   status.WindowCount,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleUndo(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndoInput) (*mcpsdk.CallToolResult, UndoOutput, error) {
	if err := s.client.Undo(); err != nil {
		return nil, UndoOutput{}, err
	}
	return nil, UndoOutput{Undone: true}, nil
}

func (s *Server) handlePreviewMode(_ context.Context, _ *mcpsdk.CallToolRequest, args PreviewModeInput) (*mcpsdk.CallToolResult, PreviewModeOutput, error) {
	if args.Mode == "" {
		return nil, PreviewModeOutput{}, fmt.Errorf("mode is required")
	}

	n := args.WindowCount
	if n < 1 {
		n = 4
	}
	w := args.Width
	if w <= 0 {
		w = 1920
	}
	h := args.Height
	if h <= 0 {
		h = 1040
	}

	mode, profile, err := s.config.ResolveMode(args.Mode)
	if err != nil {
		return nil, PreviewModeOutput{}, err
	}

	screen := geometry.Screen{
		Full:   geometry.Rect{Width: w, Height: h},
		Usable: geometry.Rect{Width: w, Height: h},
	}

	var rects []geometry.Rect
	if profile != nil {
		rects = layout.ComputeProfile(*profile, n, screen, s.config.Options())
	} else {
		rects = layout.Compute(mode, n, screen, s.config.Options())
	}

	out := PreviewModeOutput{Mode: args.Mode, Windows: make([]PreviewRect, 0, len(rects))}
	for _, r := range rects {
		out.Windows = append(out.Windows, PreviewRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
	}
	return nil, out, nil
}
