package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/ipc"
)

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	ipcClient  *ipc.Client

	// Tab navigation
	activeTab Tab

	// Sub-models
	modesTab    ModesTab
	settingsTab SettingsTab

	// Daemon state
	daemonConnected bool
	activeMode      string
	defaultMode     string

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string) model {
	m := model{
		configPath: configPath,
		activeTab:  TabModes,
	}

	m.loadConfig()

	// Connect to daemon
	m.ipcClient = ipc.NewClient()
	m.refreshDaemonStatus()

	m.modesTab = NewModesTab(m.ipcClient, m.cfg, m.activeMode, m.defaultMode)
	m.settingsTab = NewSettingsTab(m.cfg, m.ipcClient)

	return m
}

func (m *model) loadConfig() {
	var cfg *config.Config
	var err error

	if m.configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(m.configPath)
	}

	if err != nil {
		// Keep browsing with defaults; settings edits surface the
		// real load error on save.
		cfg = config.Default()
	}
	m.cfg = cfg
}

func (m *model) refreshDaemonStatus() {
	if m.ipcClient == nil {
		return
	}
	data, err := m.ipcClient.ListModes()
	if err != nil {
		m.daemonConnected = false
		m.activeMode = ""
		m.defaultMode = m.cfg.DefaultMode
		return
	}
	m.daemonConnected = true
	m.activeMode = data.ActiveMode
	m.defaultMode = data.DefaultMode
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// When the settings form captures input, delegate everything to it
	// (the form consumes keys; only ctrl+c escapes to quit)
	if m.activeTab == TabSettings && m.settingsTab.editing {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			m.width = msg.Width
			m.height = msg.Height
			subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
			m.modesTab, _ = m.modesTab.Update(subMsg)
			m.settingsTab, _ = m.settingsTab.Update(subMsg)
			return m, nil
		}
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil

		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil

		case "1":
			m.activeTab = TabModes
			return m, nil
		case "2":
			// On the modes tab, 2 is a window count shortcut
			if m.activeTab != TabModes {
				m.activeTab = TabSettings
				return m, nil
			}

		case "r":
			m.loadConfig()
			m.refreshDaemonStatus()
			m.modesTab.SetConfig(m.cfg, m.activeMode, m.defaultMode)
			m.settingsTab.SetConfig(m.cfg)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
		m.modesTab, _ = m.modesTab.Update(subMsg)
		m.settingsTab, _ = m.settingsTab.Update(subMsg)
		return m, nil
	}

	switch m.activeTab {
	case TabModes:
		var cmd tea.Cmd
		m.modesTab, cmd = m.modesTab.Update(msg)
		// Arrangement actions can change the daemon's active mode
		m.activeMode = m.modesTab.activeMode
		m.defaultMode = m.modesTab.defaultMode
		return m, cmd
	case TabSettings:
		var cmd tea.Cmd
		m.settingsTab, cmd = m.settingsTab.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.activeMode, m.defaultMode, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	switch m.activeTab {
	case TabModes:
		content = m.modesTab.View()
	case TabSettings:
		content = m.settingsTab.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
