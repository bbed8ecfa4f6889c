package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/ipc"
)

// SettingsTab is the sub-model for the settings tab.
type SettingsTab struct {
	cfg       *config.Config
	ipcClient *ipc.Client

	width  int
	height int

	statusText string

	// Edit mode
	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fDefaultMode  string
	fPadding      string
	fMinWidth     string
	fMinHeight    string
	fTolerance    string
	fArrangeKey   string
	fUndoKey      string
	fKeepKey      string
	fCycleModeKey string
}

// NewSettingsTab creates a SettingsTab from the loaded config.
func NewSettingsTab(cfg *config.Config, ipcClient *ipc.Client) SettingsTab {
	return SettingsTab{cfg: cfg, ipcClient: ipcClient}
}

// SetConfig updates the config reference.
func (s *SettingsTab) SetConfig(cfg *config.Config) {
	s.cfg = cfg
}

// Update implements tea.Model.
func (s SettingsTab) Update(msg tea.Msg) (SettingsTab, tea.Cmd) {
	if s.editing {
		return s.updateEditing(msg)
	}
	return s.updateDisplay(msg)
}

func (s SettingsTab) updateDisplay(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			s.startEditing()
			return s, s.form.Init()
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}
	return s, nil
}

func (s SettingsTab) updateEditing(msg tea.Msg) (SettingsTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.editing = false
			s.form = nil
			return s, nil
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.applyForm()
		s.editing = false
		s.form = nil
		return s, nil
	}

	return s, cmd
}

func (s *SettingsTab) startEditing() {
	cfg := s.cfg
	if cfg == nil {
		cfg = config.Default()
	}

	s.fDefaultMode = cfg.DefaultMode
	s.fPadding = strconv.FormatFloat(cfg.Padding, 'f', -1, 64)
	s.fMinWidth = strconv.FormatFloat(cfg.MinWidth, 'f', -1, 64)
	s.fMinHeight = strconv.FormatFloat(cfg.MinHeight, 'f', -1, 64)
	s.fTolerance = strconv.FormatFloat(cfg.Tolerance, 'f', -1, 64)
	s.fArrangeKey = cfg.Hotkeys.Arrange
	s.fUndoKey = cfg.Hotkeys.Undo
	s.fKeepKey = cfg.Hotkeys.KeepOnScreen
	s.fCycleModeKey = cfg.Hotkeys.CycleMode

	modeOpts := make([]huh.Option[string], 0, 32)
	for _, name := range cfg.ModeNames() {
		modeOpts = append(modeOpts, huh.NewOption(name, name))
	}

	w := s.width - 4
	if w < 40 {
		w = 40
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("default_mode").
				Title("Default Mode").
				Description("Mode used when none is selected").
				Options(modeOpts...).
				Value(&s.fDefaultMode),

			huh.NewInput().
				Key("padding").
				Title("Padding").
				Description("Pixels between windows and screen edges (5-30)").
				Value(&s.fPadding),

			huh.NewInput().
				Key("min_width").
				Title("Minimum Width").
				Description("Smallest width a window may be shrunk to").
				Value(&s.fMinWidth),

			huh.NewInput().
				Key("min_height").
				Title("Minimum Height").
				Description("Smallest height a window may be shrunk to").
				Value(&s.fMinHeight),

			huh.NewInput().
				Key("overlap_tolerance").
				Title("Overlap Tolerance").
				Description("Pixels of overlap the solvers ignore").
				Value(&s.fTolerance),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("hotkey_arrange").
				Title("Hotkey: Arrange").
				Value(&s.fArrangeKey),
			huh.NewInput().
				Key("hotkey_undo").
				Title("Hotkey: Undo").
				Value(&s.fUndoKey),
			huh.NewInput().
				Key("hotkey_keep_on_screen").
				Title("Hotkey: Keep On Screen").
				Value(&s.fKeepKey),
			huh.NewInput().
				Key("hotkey_cycle_mode").
				Title("Hotkey: Cycle Mode").
				Value(&s.fCycleModeKey),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	s.editing = true
}

func (s *SettingsTab) applyForm() {
	if s.cfg == nil {
		return
	}

	if s.fDefaultMode != "" {
		s.cfg.DefaultMode = s.fDefaultMode
	}
	if v, err := strconv.ParseFloat(s.fPadding, 64); err == nil && v >= 0 {
		s.cfg.Padding = v
	}
	if v, err := strconv.ParseFloat(s.fMinWidth, 64); err == nil && v > 0 {
		s.cfg.MinWidth = v
	}
	if v, err := strconv.ParseFloat(s.fMinHeight, 64); err == nil && v > 0 {
		s.cfg.MinHeight = v
	}
	if v, err := strconv.ParseFloat(s.fTolerance, 64); err == nil && v > 0 {
		s.cfg.Tolerance = v
	}
	s.cfg.Hotkeys.Arrange = s.fArrangeKey
	s.cfg.Hotkeys.Undo = s.fUndoKey
	s.cfg.Hotkeys.KeepOnScreen = s.fKeepKey
	s.cfg.Hotkeys.CycleMode = s.fCycleModeKey

	if err := s.cfg.Validate(); err != nil {
		s.statusText = fmt.Sprintf("invalid: %v", err)
		return
	}
	if err := s.cfg.Save(); err != nil {
		s.statusText = fmt.Sprintf("save failed: %v", err)
		return
	}

	s.statusText = "saved"
	if s.ipcClient != nil {
		if err := s.ipcClient.Reload(); err == nil {
			s.statusText = "saved, daemon reloaded"
		}
	}
}

// View implements tea.Model.
func (s SettingsTab) View() string {
	if s.editing && s.form != nil {
		return s.viewEditing()
	}
	return s.viewDisplay()
}

func (s SettingsTab) viewDisplay() string {
	cfg := s.cfg
	if cfg == nil {
		style := lipgloss.NewStyle().
			Width(s.width).
			Height(s.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("No config loaded")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(24).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		"",
		row("Default Mode", cfg.DefaultMode),
		row("Padding", fmt.Sprintf("%.0f px", cfg.Padding)),
		row("Minimum Size", fmt.Sprintf("%.0f×%.0f px", cfg.MinWidth, cfg.MinHeight)),
		row("Overlap Tolerance", fmt.Sprintf("%.0f px", cfg.Tolerance)),
		"",
		row("Hotkey: Arrange", cfg.Hotkeys.Arrange),
		row("Hotkey: Undo", cfg.Hotkeys.Undo),
		row("Hotkey: Keep On Screen", cfg.Hotkeys.KeepOnScreen),
		row("Hotkey: Cycle Mode", cfg.Hotkeys.CycleMode),
		"",
		row("Custom Profiles", strconv.Itoa(len(cfg.Profiles))),
		row("App Margins", strconv.Itoa(len(cfg.AppMargins))),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	if s.statusText != "" {
		lines = append(lines, "", "  "+lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render(s.statusText))
	}

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

func (s SettingsTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	formView := s.form.View()

	content := header + "\n\n" + formView

	style := lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Padding(1, 2)

	return style.Render(content)
}
