package models

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/logging"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	ChunkExplorerView
	OverviewView

	viewCount
)

// App is the main application model. It owns the streaming loop so chunks keep
// loading whichever view is shown.
type App struct {
	manager      *chunk.Manager
	tickInterval time.Duration

	// Current state
	currentView ViewType
	width       int
	height      int

	// View models
	menu          MenuModel
	chunkExplorer ChunkExplorerModel
	overview      OverviewModel

	// UI state
	showHelp bool
}

// Options configure NewApp.
type Options struct {
	StartView    string
	Radius       int32
	TickInterval time.Duration
}

// NewApp creates a new application instance and registers its renderer with manager.
func NewApp(manager *chunk.Manager, opts Options) *App {
	renderer := NewTileRenderer(manager.Cache())
	manager.SetRenderer(renderer)

	app := &App{
		manager:       manager,
		tickInterval:  opts.TickInterval,
		menu:          NewMenuModel(manager, renderer),
		chunkExplorer: NewChunkExplorerModel(manager, renderer, opts.Radius),
		overview:      NewOverviewModel(manager),
	}

	switch opts.StartView {
	case "chunks", "explorer":
		app.currentView = ChunkExplorerView
	case "overview":
		app.currentView = OverviewView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	logging.GetLogger().Debug("Initializing debug viewer", "view", m.currentView)

	return tea.Batch(
		m.getCurrentViewModel().Init(),
		tickCmd(m.tickInterval),
	)
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.menu.SetSize(msg.Width, msg.Height)
		m.chunkExplorer.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)

		return m, nil

	case tickMsg:
		m.chunkExplorer.Stream()
		return m, runTickCmd(m.manager)

	case tickDoneMsg:
		newModel, _ := m.chunkExplorer.Update(msg)
		m.chunkExplorer = newModel.(ChunkExplorerModel)
		return m, tickCmd(m.tickInterval)

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			m.currentView = MenuView
			return m, m.menu.Init()

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = (m.currentView + 1) % viewCount
			return m, m.getCurrentViewModel().Init()
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, m.getCurrentViewModel().Init()
	}

	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case ChunkExplorerView:
		newModel, cmd := m.chunkExplorer.Update(msg)
		m.chunkExplorer = newModel.(ChunkExplorerModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case ChunkExplorerView:
		return m.chunkExplorer.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

// getCurrentViewModel returns the current view's model
func (m *App) getCurrentViewModel() tea.Model {
	switch m.currentView {
	case ChunkExplorerView:
		return &m.chunkExplorer
	case OverviewView:
		return &m.overview
	}
	return &m.menu
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `
┌─ World Debug Viewer - Help ──────────────────────────┐
│                                                      │
│ Global Keys:                                         │
│   q, Ctrl+C    Quit (from menu) / Back to menu       │
│   ?            Toggle this help                      │
│   Tab          Cycle through views                   │
│   1-2          Select view (from menu)               │
│                                                      │
│ Chunk Explorer:                                      │
│   hjkl, arrows Move the cursor one tile              │
│   wasd         Move the camera one chunk             │
│   + / -        Grow or shrink the streaming radius   │
│   p            Pause streaming                       │
│   x            Unload the chunk under the cursor     │
│   0            Back to the origin                    │
│                                                      │
│ Overview:                                            │
│   r            Refresh statistics                    │
│                                                      │
│ Press ? again to close this help                     │
└──────────────────────────────────────────────────────┘
`
	return help
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}
