package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/bivex/wic/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	req := &Request{
		Command: CommandReload,
	}

	_, err := c.sendRequest(req)
	return err
}

// Undo sends an UNDO command to the daemon.
func (c *Client) Undo() error {
	req := &Request{
		Command: CommandUndo,
	}

	_, err := c.sendRequest(req)
	return err
}

// KeepOnScreen asks the daemon to pull stray windows back on screen.
// It returns the number of windows that needed a correction.
func (c *Client) KeepOnScreen() (int, error) {
	req := &Request{
		Command: CommandKeepOnScreen,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return 0, err
	}

	var data CorrectedData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return 0, fmt.Errorf("failed to parse correction data: %w", err)
	}
	return data.Corrected, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// GetMonitors retrieves monitor information
func (c *Client) GetMonitors() (*MonitorsData, error) {
	req := &Request{
		Command: CommandGetMonitors,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var monitors MonitorsData
	if err := json.Unmarshal(resp.Data, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors data: %w", err)
	}

	return &monitors, nil
}

// ListModes retrieves selectable modes and the current selection.
func (c *Client) ListModes() (*ModesData, error) {
	req := &Request{
		Command: CommandListModes,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var data ModesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse modes data: %w", err)
	}

	return &data, nil
}

// Arrange asks the daemon to arrange the active display. A non-empty
// mode switches the active mode first.
func (c *Client) Arrange(mode string) error {
	payload, err := json.Marshal(ArrangePayload{Mode: mode})
	if err != nil {
		return fmt.Errorf("failed to marshal arrange payload: %w", err)
	}

	req := &Request{
		Command: CommandArrange,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// SetDefaultMode updates default_mode in config (optionally arranges immediately).
func (c *Client) SetDefaultMode(mode string, arrangeNow bool) error {
	payload, err := json.Marshal(SetDefaultModePayload{
		Mode:       mode,
		ArrangeNow: arrangeNow,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal set-default payload: %w", err)
	}

	req := &Request{
		Command: CommandSetDefaultMode,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
