package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/internal/tile"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	AccentColor    = lipgloss.Color("#FFD700")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")

	// Terrain colors
	WaterColor      = lipgloss.Color("#3A7BD5")
	StoneColor      = lipgloss.Color("#696969") // DimGray
	ImpassableColor = lipgloss.Color("#2B2B2B")
	IronColor       = lipgloss.Color("#C0C0C0") // Silver
	CopperColor     = lipgloss.Color("#B87333")
	CoalColor       = lipgloss.Color("#1C1C1C")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(0, 1)

	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1).
			Width(32)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	// Grid styles (for chunk visualization)
	GridCellStyle = lipgloss.NewStyle()

	GridCursorStyle = lipgloss.NewStyle().
			Background(PrimaryColor).
			Foreground(lipgloss.Color("#FAFAFA"))

	GridBoundaryStyle = lipgloss.NewStyle().
				Foreground(DarkGray)
)

const (
	// UnloadedSymbol marks a cell whose chunk is not cached.
	UnloadedSymbol = " "
	// CursorSymbol is drawn over the cursor when its chunk is not cached.
	CursorSymbol = "+"
)

// TileColor returns the foreground colour for a tile kind.
func TileColor(kind tile.Kind) lipgloss.Color {
	switch kind {
	case tile.Water:
		return WaterColor
	case tile.Stone:
		return StoneColor
	case tile.Impassable:
		return ImpassableColor
	case tile.Iron:
		return IronColor
	case tile.Copper:
		return CopperColor
	case tile.Coal:
		return CoalColor
	default:
		return Gray
	}
}

// TileStyle returns the grid style for a tile kind. Resources are bold so they stand
// out against base terrain.
func TileStyle(kind tile.Kind) lipgloss.Style {
	style := GridCellStyle.Foreground(TileColor(kind))
	if kind.IsResource() {
		style = style.Bold(true)
	}
	if kind == tile.Coal {
		style = style.Background(LightGray)
	}
	return style
}
