package models

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/chunk"
)

// MenuModel is the landing screen. Every entry carries a status line read from the
// chunk manager each time the menu is drawn.
type MenuModel struct {
	manager  *chunk.Manager
	renderer *TileRenderer
	entries  []menuEntry
	cursor   int
	width    int
	height   int
}

type menuEntry struct {
	title  string
	view   ViewType
	status func(m MenuModel) string
}

// NewMenuModel creates the menu for manager. renderer may be nil.
func NewMenuModel(manager *chunk.Manager, renderer *TileRenderer) MenuModel {
	return MenuModel{
		manager:  manager,
		renderer: renderer,
		entries: []menuEntry{
			{title: "Chunk Explorer", view: ChunkExplorerView, status: MenuModel.streamStatus},
			{title: "World Overview", view: OverviewView, status: MenuModel.worldStatus},
		},
	}
}

func (m MenuModel) streamStatus() string {
	onScreen := 0
	if m.renderer != nil {
		onScreen = m.renderer.Stats().Live
	}
	return fmt.Sprintf("%d cached • %d on screen • %d pending",
		m.manager.Cache().Len(), onScreen, m.manager.Pending())
}

func (m MenuModel) worldStatus() string {
	w := m.manager.Cache().World()
	slots := m.manager.Slots()
	if slots.Capacity() == 0 {
		return fmt.Sprintf("seed %d • no storage, chunks are not persisted", w.Seed)
	}
	return fmt.Sprintf("seed %d • world %d • %d/%d slots leased",
		w.Seed, w.ID, slots.Leased(), slots.Capacity())
}

func (m MenuModel) Init() tea.Cmd {
	return nil
}

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.cursor = (m.cursor + len(m.entries) - 1) % len(m.entries)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(m.entries)
	case "enter", " ":
		return m, m.choose(m.cursor)
	default:
		if n, err := strconv.Atoi(s); err == nil {
			return m.chooseAndMove(n - 1)
		}
	}
	return m, nil
}

func (m MenuModel) chooseAndMove(i int) (MenuModel, tea.Cmd) {
	cmd := m.choose(i)
	if cmd != nil {
		m.cursor = i
	}
	return m, cmd
}

// choose returns the command switching to entry i, or nil when i is out of range.
func (m MenuModel) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.entries) {
		return nil
	}
	view := m.entries[i].view
	return func() tea.Msg {
		return NewSwitchViewMsg(view)
	}
}

func (m MenuModel) View() string {
	var s strings.Builder

	s.WriteString(components.TitleStyle.Render("World Debug Viewer") + "\n")
	w := m.manager.Cache().World()
	s.WriteString(components.SubtitleStyle.Render(
		fmt.Sprintf("world %d, origin %s", w.ID, w.OriginTime.Format("2006-01-02 15:04 MST"))) + "\n\n")

	statusStyle := lipgloss.NewStyle().Foreground(components.Gray).PaddingLeft(5)
	items := make([]string, 0, len(m.entries))
	for i, e := range m.entries {
		style := components.MenuItemStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		items = append(items,
			style.Render(fmt.Sprintf("%d. %s", i+1, e.title))+"\n"+statusStyle.Render(e.status(m)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(components.PrimaryColor).
		Padding(1, 2).
		Width(60)
	s.WriteString(box.Render(strings.Join(items, "\n\n")) + "\n\n")
	s.WriteString(components.HelpStyle.Render("↑/↓ or j/k to move • enter or a number to open • ? help • q quit"))

	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s.String())
	}
	return s.String()
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
