package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/control"
	"github.com/bivex/wic/internal/platform"
	"github.com/bivex/wic/internal/runtimepath"
)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	controller   *control.Controller
	backend      platform.Backend
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(cfg *config.Config, controller *control.Controller, backend platform.Backend, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		controller: controller,
		backend:    backend,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetMonitors:
		return s.handleGetMonitors()
	case CommandListModes:
		return s.handleListModes()
	case CommandArrange:
		return s.handleArrange(req.Payload)
	case CommandSetDefaultMode:
		return s.handleSetDefaultMode(req.Payload)
	case CommandUndo:
		return s.handleUndo()
	case CommandKeepOnScreen:
		return s.handleKeepOnScreen()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	newCfg, err := config.Load()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to reload config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	s.controller.UpdateConfig(newCfg)

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	windowCount := 0
	if display, err := s.backend.ActiveDisplay(); err == nil {
		for _, st := range s.controller.DisplayStates() {
			if st.DisplayID == display.ID {
				windowCount = st.WindowCount
				break
			}
		}
	}

	status := StatusData{
		ActiveMode:    s.controller.ActiveMode(),
		WindowCount:   windowCount,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

// handleGetMonitors returns information about all monitors
func (s *Server) handleGetMonitors() *Response {
	displays, err := s.backend.Displays()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to get monitors: %v", err))
	}

	monitorInfos := make([]MonitorInfo, len(displays))
	for i, d := range displays {
		monitorInfos[i] = MonitorInfo{
			ID:           d.ID,
			Name:         d.Name,
			X:            d.Bounds.X,
			Y:            d.Bounds.Y,
			Width:        d.Bounds.Width,
			Height:       d.Bounds.Height,
			UsableX:      d.Usable.X,
			UsableY:      d.Usable.Y,
			UsableWidth:  d.Usable.Width,
			UsableHeight: d.Usable.Height,
		}
	}

	data := MonitorsData{
		Monitors: monitorInfos,
	}

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleListModes() *Response {
	s.cfgMu.RLock()
	data := ModesData{
		Modes:       s.cfg.ModeNames(),
		DefaultMode: s.cfg.DefaultMode,
		ActiveMode:  s.controller.ActiveMode(),
	}
	s.cfgMu.RUnlock()

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleArrange(payload json.RawMessage) *Response {
	var req ArrangePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewErrorResponse(fmt.Sprintf("Invalid arrange payload: %v", err))
		}
	}

	if req.Mode != "" {
		if err := s.controller.SetActiveMode(req.Mode); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to set active mode: %v", err))
		}
	}

	if err := s.controller.ArrangeActiveDisplay(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to arrange: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSetDefaultMode(payload json.RawMessage) *Response {
	var req SetDefaultModePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set default payload: %v", err))
	}
	if req.Mode == "" {
		return NewErrorResponse("mode is required")
	}

	s.cfgMu.RLock()
	cur := s.cfg
	s.cfgMu.RUnlock()

	if _, _, err := cur.ResolveMode(req.Mode); err != nil {
		return NewErrorResponse(fmt.Sprintf("Unknown mode: %s", req.Mode))
	}

	// The controller reads this config concurrently; swap in a
	// modified copy instead of writing to the shared struct.
	newCfg := *cur
	newCfg.DefaultMode = req.Mode
	if err := newCfg.Save(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to save config: %v", err))
	}

	s.cfgMu.Lock()
	s.cfg = &newCfg
	s.cfgMu.Unlock()
	s.controller.UpdateConfig(&newCfg)

	_ = s.controller.SetActiveMode(req.Mode)
	if req.ArrangeNow {
		if err := s.controller.ArrangeActiveDisplay(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to arrange with default mode: %v", err))
		}
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleUndo() *Response {
	if err := s.controller.Undo(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to undo: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleKeepOnScreen() *Response {
	corrected, err := s.controller.KeepOnScreen()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to correct windows: %v", err))
	}

	resp, _ := NewOKResponse(CorrectedData{Corrected: corrected})
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig updates the config (thread-safe)
func (s *Server) UpdateConfig(cfg *config.Config) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	s.cfg = cfg
}
