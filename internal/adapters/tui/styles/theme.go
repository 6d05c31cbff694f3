package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Level colors, cycled for deep trees
	levelColors = []lipgloss.Color{
		lipgloss.Color("#8B5CF6"), // Violet
		lipgloss.Color("#10B981"), // Green
		lipgloss.Color("#60A5FA"), // Blue
		lipgloss.Color("#EC4899"), // Pink
		lipgloss.Color("#F97316"), // Orange
	}

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tree node styles
	NodeTop = lipgloss.NewStyle().
		Bold(true)

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeIncomplete = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	FileCount = lipgloss.NewStyle().
			Foreground(Muted)

	// Tree indicators
	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// LevelColor returns the color for a category level (1 is the top)
func LevelColor(level int) lipgloss.Color {
	if level < 1 {
		return Primary
	}
	return levelColors[(level-1)%len(levelColors)]
}

// NodeStyle returns the style for a category at level
func NodeStyle(level int, incomplete bool) lipgloss.Style {
	if incomplete {
		return NodeIncomplete
	}
	if level == 1 {
		return NodeTop.Foreground(LevelColor(level))
	}
	return lipgloss.NewStyle().Foreground(LevelColor(level))
}
