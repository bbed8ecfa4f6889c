package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bivex/wic/internal/config"
	"github.com/bivex/wic/internal/ipc"
	"github.com/bivex/wic/internal/layout"
)

// modeItem implements list.Item for the mode picker sidebar.
type modeItem struct {
	name      string
	isActive  bool
	isDefault bool
}

func (i modeItem) Title() string {
	prefix := "  "
	if i.isActive {
		prefix = "* "
	}
	suffix := ""
	if i.isDefault {
		suffix = " (default)"
	}
	return prefix + i.name + suffix
}

func (i modeItem) Description() string { return "" }
func (i modeItem) FilterValue() string { return i.name }

// clearStatusMsg clears the status message after a delay.
type clearStatusMsg struct{}

// ModesTab is the sub-model for the mode browser tab.
type ModesTab struct {
	list      list.Model
	ipcClient *ipc.Client
	cfg       *config.Config

	activeMode  string
	defaultMode string
	windowCount int

	statusText string

	width  int
	height int
	ready  bool
}

// NewModesTab creates a new ModesTab sub-model.
func NewModesTab(ipcClient *ipc.Client, cfg *config.Config, activeMode, defaultMode string) ModesTab {
	items := buildModeItems(cfg, activeMode, defaultMode)

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Modes"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return ModesTab{
		list:        l,
		ipcClient:   ipcClient,
		cfg:         cfg,
		activeMode:  activeMode,
		defaultMode: defaultMode,
		windowCount: 4,
	}
}

func buildModeItems(cfg *config.Config, activeMode, defaultMode string) []list.Item {
	var names []string
	if cfg != nil {
		names = cfg.ModeNames()
	} else {
		for _, m := range layout.Modes() {
			names = append(names, string(m))
		}
	}

	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, modeItem{
			name:      name,
			isActive:  name == activeMode,
			isDefault: name == defaultMode,
		})
	}
	return items
}

// SetConfig swaps in a reloaded config and daemon state.
func (mt *ModesTab) SetConfig(cfg *config.Config, activeMode, defaultMode string) {
	mt.cfg = cfg
	mt.activeMode = activeMode
	mt.defaultMode = defaultMode
	mt.rebuildItems()
}

// Update implements tea.Model.
func (mt ModesTab) Update(msg tea.Msg) (ModesTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mt.width = msg.Width
		mt.height = msg.Height
		mt.updateListSize()
		mt.ready = true
		return mt, nil

	case clearStatusMsg:
		mt.statusText = ""
		return mt, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "a":
			return mt.arrangeSelected()
		case "d":
			return mt.setDefaultSelected()
		// Window count shortcuts — these override the tab-switching
		// keys only when the modes tab is active
		case "2":
			mt.windowCount = 2
			return mt, nil
		case "4":
			mt.windowCount = 4
			return mt, nil
		case "6":
			mt.windowCount = 6
			return mt, nil
		case "9":
			mt.windowCount = 9
			return mt, nil
		}
	}

	var cmd tea.Cmd
	mt.list, cmd = mt.list.Update(msg)
	return mt, cmd
}

func (mt *ModesTab) updateListSize() {
	sidebarWidth := mt.sidebarWidth()
	// Reserve 2 lines for the status bar at the bottom of the tab
	listHeight := mt.height - 2
	if listHeight < 1 {
		listHeight = 1
	}
	mt.list.SetSize(sidebarWidth, listHeight)
}

func (mt ModesTab) sidebarWidth() int {
	// Sidebar takes ~35% of width, min 20, max 40
	sw := mt.width * 35 / 100
	if sw < 20 {
		sw = 20
	}
	if sw > 40 {
		sw = 40
	}
	return sw
}

func (mt ModesTab) selectedName() string {
	item, ok := mt.list.SelectedItem().(modeItem)
	if !ok {
		return ""
	}
	return item.name
}

func (mt ModesTab) flashStatus(text string) (ModesTab, tea.Cmd) {
	mt.statusText = text
	return mt, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

func (mt ModesTab) arrangeSelected() (ModesTab, tea.Cmd) {
	name := mt.selectedName()
	if name == "" {
		return mt, nil
	}
	if mt.ipcClient == nil {
		return mt.flashStatus("daemon not connected")
	}
	if err := mt.ipcClient.Arrange(name); err != nil {
		return mt.flashStatus(fmt.Sprintf("error: %v", err))
	}
	mt.activeMode = name
	mt.rebuildItems()
	return mt.flashStatus(fmt.Sprintf("arranged: %s", name))
}

func (mt ModesTab) setDefaultSelected() (ModesTab, tea.Cmd) {
	name := mt.selectedName()
	if name == "" {
		return mt, nil
	}
	if mt.ipcClient == nil {
		return mt.flashStatus("daemon not connected")
	}
	if err := mt.ipcClient.SetDefaultMode(name, false); err != nil {
		return mt.flashStatus(fmt.Sprintf("error: %v", err))
	}
	mt.defaultMode = name
	mt.rebuildItems()
	return mt.flashStatus(fmt.Sprintf("default set: %s", name))
}

func (mt *ModesTab) rebuildItems() {
	items := buildModeItems(mt.cfg, mt.activeMode, mt.defaultMode)
	mt.list.SetItems(items)
}

// View implements tea.Model.
func (mt ModesTab) View() string {
	if !mt.ready || mt.width == 0 || mt.height == 0 {
		return ""
	}

	sidebarWidth := mt.sidebarWidth()
	previewWidth := mt.width - sidebarWidth - 3 // separator + padding
	if previewWidth < 10 {
		previewWidth = 10
	}

	sidebar := mt.list.View()
	sidebarStyle := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(mt.height - 2) // reserve for status
	sidebar = sidebarStyle.Render(sidebar)

	preview := mt.renderPreview(previewWidth)

	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color("238")).
		Render(strings.Repeat("│\n", mt.height-2))

	columns := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " "+sep, preview)

	status := mt.renderTabStatus()

	return lipgloss.JoinVertical(lipgloss.Left, columns, status)
}

func (mt ModesTab) renderPreview(previewWidth int) string {
	name := mt.selectedName()
	if name == "" {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Render(fmt.Sprintf(" %s  [%d windows]", name, mt.windowCount))

	desc := ""
	if layout.Valid(layout.Mode(name)) {
		desc = layout.Describe(layout.Mode(name))
	}
	summary := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Render(" " + summarizeMode(mt.cfg, name, mt.windowCount))
	if desc != "" {
		summary = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Render(" "+desc) + "\n" + summary
	}

	previewHeight := mt.height - 7 // title + summary lines + status + padding
	if previewHeight < 5 {
		previewHeight = 5
	}
	asciiWidth := previewWidth - 2
	if asciiWidth < 5 {
		asciiWidth = 5
	}
	lines := renderASCIIPreview(mt.cfg, name, mt.windowCount, asciiWidth, previewHeight)

	previewStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("247"))
	previewBlock := previewStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, "", previewBlock)
}

func (mt ModesTab) renderTabStatus() string {
	left := ""
	if mt.statusText != "" {
		left = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render(mt.statusText)
	}

	right := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("windows:%d  enter/a:arrange  d:default  2/4/6/9:windows", mt.windowCount))

	gap := mt.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(mt.width).
		Padding(0, 1).
		Render(left + strings.Repeat(" ", gap) + right)
}
