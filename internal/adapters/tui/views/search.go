package views

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cattree/internal/adapters/tui/styles"
	"cattree/internal/application/commands"
	"cattree/internal/domain"
)

// SearchKeyMap defines key bindings for the search view
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// maxVisibleResults is the number of results shown at once
const maxVisibleResults = 10

// SearchModel is the model for the search view
type SearchModel struct {
	ViewState
	inv       *domain.Inventory
	input     textinput.Model
	results   []commands.SearchResult
	paginator *Paginator
}

// NewSearchModel creates a new search view model
func NewSearchModel() *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search categories..."
	input.Focus()

	return &SearchModel{
		input:     input,
		paginator: NewPaginator(maxVisibleResults),
	}
}

// Init initializes the search view
func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetInventory sets the inventory searched by the view
func (m *SearchModel) SetInventory(inv *domain.Inventory) {
	m.inv = inv
}

// Reset resets the search view
func (m *SearchModel) Reset() {
	m.input.SetValue("")
	m.results = nil
	m.paginator.Reset()
	m.input.Focus()
}

// Update handles messages for the search view
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}

		case key.Matches(msg, SearchKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			cursor := m.paginator.Cursor()
			if cursor >= 0 && cursor < len(m.results) {
				name := m.results[cursor].Name
				return m, func() tea.Msg {
					return SearchSelectMsg{Name: name}
				}
			}
			return m, nil
		}
	}

	// Update input
	var cmd tea.Cmd
	prev := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	// Search synchronously on input change; inventories are held in memory
	if query := m.input.Value(); query != prev {
		m.search(query)
	}

	return m, cmd
}

func (m *SearchModel) search(query string) {
	m.results = nil
	if m.inv != nil {
		m.results, _ = commands.NewSearchCommand(m.inv, query, 0).Execute(context.Background())
	}
	m.paginator.Reset()
	m.paginator.SetTotal(len(m.results))
}

// SearchSelectMsg is sent when a search result is selected
type SearchSelectMsg struct {
	Name string
}

// View renders the search view
func (m *SearchModel) View() string {
	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render("Search"))
	b.WriteString("\n\n")

	// Search input
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")

	// Results
	if len(m.results) == 0 {
		if len([]rune(m.input.Value())) >= commands.MinQueryLength {
			b.WriteString(styles.MutedText.Render("No results found"))
		} else {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("Type at least %d characters to search", commands.MinQueryLength)))
		}
	} else {
		b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d results", len(m.results))))
		b.WriteString("\n\n")

		start, end := m.paginator.VisibleRange()
		for i := start; i < end; i++ {
			b.WriteString(m.renderResult(m.results[i], i == m.paginator.Cursor()))
			b.WriteString("\n")
		}

		if rest := len(m.results) - end; rest > 0 {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("... and %d more", rest)))
		}
	}

	b.WriteString("\n\n")

	// Help
	b.WriteString(renderHelpLine([]helpEntry{
		{"↑/↓", "navigate"},
		{"enter", "show in tree"},
		{"esc", "cancel"},
	}))

	return styles.App.Render(b.String())
}

func (m *SearchModel) renderResult(result commands.SearchResult, selected bool) string {
	level := styles.MutedText.Render(fmt.Sprintf("L%d", result.Level))
	files := styles.FileCount.Render(fmt.Sprintf("  %d", result.Files))

	if selected {
		return fmt.Sprintf("%s %s%s", level, styles.NodeSelected.Render(result.Name), files)
	}
	return fmt.Sprintf("%s %s%s", level, highlightMatches(result.Name, result.MatchedIndexes), files)
}

// highlightMatches renders the matched bytes of name in the match style
func highlightMatches(name string, matched []int) string {
	if len(matched) == 0 {
		return name
	}
	var b strings.Builder
	for i, r := range name {
		if slices.Contains(matched, i) {
			b.WriteString(styles.SearchMatch.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
