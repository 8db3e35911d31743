package models

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/chunk"
	"github.com/VoidMesh/worldgen/internal/tile"
)

// OverviewModel summarizes the world and everything currently cached.
type OverviewModel struct {
	manager *chunk.Manager
	width   int
	height  int

	summary     cacheSummary
	lastUpdated time.Time
}

type cacheSummary struct {
	chunks    int
	bySource  map[chunk.Source]int
	byKind    map[tile.Kind]int
	resources map[tile.Kind]uint64
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(manager *chunk.Manager) OverviewModel {
	return OverviewModel{manager: manager}
}

func (m OverviewModel) Init() tea.Cmd {
	return m.refreshCmd()
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m, m.refreshCmd()
		}

	case summaryMsg:
		m.summary = msg.summary
		m.lastUpdated = msg.at
	}

	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder

	title := components.TitleStyle.Render("World Overview")
	s.WriteString(title + "\n")

	w := m.manager.Cache().World()
	var world strings.Builder
	world.WriteString(components.SubtitleStyle.Render("World") + "\n")
	world.WriteString(fmt.Sprintf("ID: %d\n", w.ID))
	world.WriteString(fmt.Sprintf("Seed: %d\n", w.Seed))
	world.WriteString(fmt.Sprintf("Origin: %s\n", w.OriginTime.Format(time.RFC3339)))

	var cache strings.Builder
	cache.WriteString(components.SubtitleStyle.Render("Cache") + "\n")
	cache.WriteString(fmt.Sprintf("Chunks: %d\n", m.summary.chunks))
	for _, source := range []chunk.Source{chunk.SourceLoaded, chunk.SourceGenerated, chunk.SourceDegraded} {
		cache.WriteString(fmt.Sprintf("%-10s %d\n", source.String()+":", m.summary.bySource[source]))
	}

	var tiles strings.Builder
	tiles.WriteString(components.SubtitleStyle.Render("Tiles") + "\n")
	total := m.summary.chunks * tile.Area
	for _, kind := range tile.Kinds {
		count := m.summary.byKind[kind]
		share := 0.0
		if total > 0 {
			share = 100 * float64(count) / float64(total)
		}
		line := fmt.Sprintf("%-10s %8d %5.1f%%", kind.String(), count, share)
		if kind.IsResource() {
			line += fmt.Sprintf("  Σ %d", m.summary.resources[kind])
		}
		tiles.WriteString(components.TileStyle(kind).Render(string(kind.Letter())) + " " + line + "\n")
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		components.BorderStyle.Render(world.String()),
		components.BorderStyle.Render(cache.String()),
		components.BorderStyle.Render(tiles.String()),
	)
	s.WriteString(content + "\n\n")

	status := "Press 'r' to refresh • 'q' to go back"
	if !m.lastUpdated.IsZero() {
		status += fmt.Sprintf(" • Updated: %s", m.lastUpdated.Format("15:04:05"))
	}
	s.WriteString(components.StatusBarStyle.Width(m.width).Render(status))

	return s.String()
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m OverviewModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{summary: summarize(m.manager.Cache()), at: time.Now()}
	}
}

func summarize(cache *chunk.Cache) cacheSummary {
	summary := cacheSummary{
		bySource:  make(map[chunk.Source]int),
		byKind:    make(map[tile.Kind]int),
		resources: make(map[tile.Kind]uint64),
	}

	for _, coord := range cache.Coords() {
		e, ok := cache.Peek(coord)
		if !ok {
			continue
		}
		summary.chunks++
		summary.bySource[e.Source]++
		for kind, n := range e.Chunk.Counts() {
			summary.byKind[kind] += n
		}
		for _, t := range e.Chunk {
			if mag, ok := t.Magnitude(); ok {
				summary.resources[t.Kind()] += uint64(mag)
			}
		}
	}
	return summary
}

type summaryMsg struct {
	summary cacheSummary
	at      time.Time
}
