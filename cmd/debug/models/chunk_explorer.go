package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/tile"
)

const (
	// DefaultStreamRadius is how many chunks around the camera stay loaded.
	DefaultStreamRadius = 2

	infoPanelWidth = 36
	chromeHeight   = 10
)

// ChunkExplorerModel draws the tiles around a cursor and streams chunks around the
// chunk the cursor is in.
type ChunkExplorerModel struct {
	manager  *chunk.Manager
	renderer *TileRenderer

	cursor tile.WorldPos
	radius int32
	paused bool
	width  int
	height int

	// Streaming state
	lastTick   chunk.TickResult
	lastTickAt time.Time
	ticks      int
	errorMsg   string
}

// NewChunkExplorerModel creates an explorer with the cursor in the middle of chunk (0,0).
func NewChunkExplorerModel(manager *chunk.Manager, renderer *TileRenderer, radius int32) ChunkExplorerModel {
	return ChunkExplorerModel{
		manager:  manager,
		renderer: renderer,
		cursor:   tile.WorldPos{X: tile.Side / 2, Y: tile.Side / 2},
		radius:   radius,
	}
}

func (m ChunkExplorerModel) Init() tea.Cmd {
	return nil
}

// Camera is the chunk the cursor is in.
func (m ChunkExplorerModel) Camera() tile.ChunkCoord {
	coord, _ := tile.ChunkOf(m.cursor)
	return coord
}

// Stream queues loads around the camera and unloads for chunks that fell out of range.
func (m ChunkExplorerModel) Stream() {
	if m.paused {
		return
	}
	m.manager.Focus(m.Camera(), m.radius)
}

// Update handles chunk explorer messages
func (m ChunkExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		// Cursor movement, one tile
		case "up", "k":
			m.cursor.Y--
		case "down", "j":
			m.cursor.Y++
		case "left", "h":
			m.cursor.X--
		case "right", "l":
			m.cursor.X++

		// Camera movement, one chunk
		case "shift+up", "w", "K":
			m.cursor.Y -= tile.Side
		case "shift+down", "s", "J":
			m.cursor.Y += tile.Side
		case "shift+left", "a", "H":
			m.cursor.X -= tile.Side
		case "shift+right", "d", "L":
			m.cursor.X += tile.Side

		case "0":
			m.cursor = tile.WorldPos{X: tile.Side / 2, Y: tile.Side / 2}

		case "p":
			m.paused = !m.paused

		case "x":
			m.manager.RequestUnload(m.Camera())

		case "+", "=":
			if m.radius < 8 {
				m.radius++
			}
		case "-":
			if m.radius > 0 {
				m.radius--
			}
		}

	case tickDoneMsg:
		m.lastTick = msg.result
		m.lastTickAt = msg.at
		m.ticks++
		if msg.result.Failed > 0 {
			m.errorMsg = fmt.Sprintf("%d chunk(s) failed to load", msg.result.Failed)
		}
	}

	return m, nil
}

// View renders the chunk explorer
func (m ChunkExplorerModel) View() string {
	var s strings.Builder

	camera := m.Camera()
	title := components.TitleStyle.Render(fmt.Sprintf("Chunk Explorer - %s", camera))
	s.WriteString(title + "\n")

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(),
		m.renderInfoPanel(),
	)
	s.WriteString(mainContent + "\n")
	s.WriteString(m.renderStatusBar())

	return s.String()
}

func (m ChunkExplorerModel) gridSize() (cols, rows int) {
	cols, rows = 48, 24
	if m.width > 0 {
		cols = min(tile.Side, m.width-infoPanelWidth-4)
	}
	if m.height > 0 {
		rows = min(tile.Side, m.height-chromeHeight)
	}
	return max(cols, 8), max(rows, 4)
}

// renderGrid draws the tiles around the cursor. Cells of chunks without a live
// visual are left blank.
func (m ChunkExplorerModel) renderGrid() string {
	cols, rows := m.gridSize()
	originX := m.cursor.X - int32(cols/2)
	originY := m.cursor.Y - int32(rows/2)

	visible := make(map[tile.ChunkCoord]bool)
	var b strings.Builder
	for dy := 0; dy < rows; dy++ {
		for dx := 0; dx < cols; dx++ {
			pos := tile.WorldPos{X: originX + int32(dx), Y: originY + int32(dy)}
			coord, _ := tile.ChunkOf(pos)

			shown, seen := visible[coord]
			if !seen {
				shown = m.renderer.Visible(coord)
				visible[coord] = shown
			}

			cell := components.UnloadedSymbol
			style := components.GridBoundaryStyle
			if shown {
				if t, ok := m.manager.TileAt(pos); ok {
					cell = string(t.Kind().Letter())
					style = components.TileStyle(t.Kind())
				}
			}

			if pos == m.cursor {
				style = components.GridCursorStyle
				if cell == components.UnloadedSymbol {
					cell = components.CursorSymbol
				}
			}
			b.WriteString(style.Render(cell))
		}
		if dy < rows-1 {
			b.WriteByte('\n')
		}
	}

	return components.BorderStyle.Render(b.String())
}

func (m ChunkExplorerModel) renderInfoPanel() string {
	var info strings.Builder
	camera, local := tile.ChunkOf(m.cursor)

	info.WriteString(components.SubtitleStyle.Render("Position") + "\n")
	info.WriteString(fmt.Sprintf("Chunk: %s\n", camera))
	info.WriteString(fmt.Sprintf("Local: (%d,%d)\n", local.X, local.Y))
	info.WriteString(fmt.Sprintf("World: (%d,%d)\n\n", m.cursor.X, m.cursor.Y))

	info.WriteString(components.SubtitleStyle.Render("Tile") + "\n")
	if t, ok := m.manager.TileAt(m.cursor); ok {
		info.WriteString(fmt.Sprintf("Kind: %s\n", t.Kind()))
		if mag, ok := t.Magnitude(); ok {
			info.WriteString(fmt.Sprintf("Magnitude: %d\n", mag))
		}
	} else {
		info.WriteString("Chunk not loaded\n")
	}
	if e, ok := m.manager.Cache().Peek(camera); ok {
		info.WriteString(fmt.Sprintf("Source: %s\n", e.Source))
		if e.VisualLink.Valid {
			info.WriteString(fmt.Sprintf("Visual: %s\n", e.VisualLink.UUID.String()[:8]))
		}
	}

	stats := m.renderer.Stats()
	slots := m.manager.Slots()
	info.WriteString("\n" + components.SubtitleStyle.Render("Streaming") + "\n")
	info.WriteString(fmt.Sprintf("Radius: %d\n", m.radius))
	info.WriteString(fmt.Sprintf("Cached: %d  Pending: %d\n", m.manager.Cache().Len(), m.manager.Pending()))
	info.WriteString(fmt.Sprintf("Visuals: %d (+%d/-%d)\n", stats.Live, stats.Spawned, stats.Freed))
	info.WriteString(fmt.Sprintf("Slots: %d/%d leased\n", slots.Leased(), slots.Capacity()))
	info.WriteString(fmt.Sprintf("Last tick: +%d ~%d -%d !%d\n",
		m.lastTick.Loaded, m.lastTick.Degraded, m.lastTick.Unloaded, m.lastTick.Failed))

	info.WriteString("\n" + components.SubtitleStyle.Render("Legend") + "\n")
	for _, kind := range tile.Kinds {
		info.WriteString(components.TileStyle(kind).Render(string(kind.Letter())))
		info.WriteString(" " + kind.String() + "\n")
	}

	info.WriteString("\n" + components.SubtitleStyle.Render("Controls") + "\n")
	info.WriteString("hjkl/arrows: Move cursor\n")
	info.WriteString("wasd: Move one chunk\n")
	info.WriteString("+/-: Radius  p: Pause\n")
	info.WriteString("x: Unload chunk  0: Home\n")

	return components.InfoPanelStyle.Render(info.String())
}

func (m ChunkExplorerModel) renderStatusBar() string {
	var status []string

	status = append(status, fmt.Sprintf("Ticks: %d", m.ticks))
	if m.paused {
		status = append(status, lipgloss.NewStyle().Foreground(components.AccentColor).Render("Streaming: PAUSED"))
	} else {
		status = append(status, "Streaming: ON")
	}
	if !m.lastTickAt.IsZero() {
		status = append(status, fmt.Sprintf("Updated: %s", m.lastTickAt.Format("15:04:05")))
	}
	if m.errorMsg != "" {
		status = append(status, lipgloss.NewStyle().Foreground(components.DangerColor).Render(m.errorMsg))
	}

	statusText := strings.Join(status, " • ")
	return components.StatusBarStyle.Width(m.width).Render(statusText)
}

// SetSize updates the chunk explorer size
func (m *ChunkExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// tickCmd schedules the next streaming tick.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg{}
	})
}

// runTickCmd drains the chunk manager's queue off the UI goroutine.
func runTickCmd(manager *chunk.Manager) tea.Cmd {
	return func() tea.Msg {
		result := manager.Tick(context.Background())
		return tickDoneMsg{result: result, at: time.Now()}
	}
}

// Messages
type tickMsg struct{}

type tickDoneMsg struct {
	result chunk.TickResult
	at     time.Time
}
