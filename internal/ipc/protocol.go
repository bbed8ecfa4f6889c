package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload         CommandType = "RELOAD"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandGetMonitors    CommandType = "GET_MONITORS"
	CommandListModes      CommandType = "LIST_MODES"
	CommandArrange        CommandType = "ARRANGE"
	CommandSetDefaultMode CommandType = "SET_DEFAULT_MODE"
	CommandUndo           CommandType = "UNDO"
	CommandKeepOnScreen   CommandType = "KEEP_ON_SCREEN"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveMode    string `json:"active_mode"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	UsableX      int    `json:"usable_x"`
	UsableY      int    `json:"usable_y"`
	UsableWidth  int    `json:"usable_width"`
	UsableHeight int    `json:"usable_height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ModesData represents the data returned by LIST_MODES
type ModesData struct {
	Modes       []string `json:"modes"`
	DefaultMode string   `json:"default_mode"`
	ActiveMode  string   `json:"active_mode"`
}

// ArrangePayload selects the mode for an ARRANGE command. An empty mode
// keeps the daemon's active mode.
type ArrangePayload struct {
	Mode string `json:"mode,omitempty"`
}

// SetDefaultModePayload is the payload for SET_DEFAULT_MODE.
type SetDefaultModePayload struct {
	Mode       string `json:"mode"`
	ArrangeNow bool   `json:"arrange_now,omitempty"`
}

// CorrectedData is returned by KEEP_ON_SCREEN.
type CorrectedData struct {
	Corrected int `json:"corrected"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
