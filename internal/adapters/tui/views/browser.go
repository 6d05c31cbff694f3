package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cattree/internal/adapters/tui/styles"
	"cattree/internal/application/commands"
	"cattree/internal/domain"
	"cattree/internal/ports"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Reload   key.Binding
	Search   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "toggle"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "previous page"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy name"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "open JSON"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// headerLines is the number of lines the browser draws around the tree
const headerLines = 9

// BrowserModel is the model for the tree browser view
type BrowserModel struct {
	ViewState
	reader    ports.InventoryReader
	location  string // artifact path, opened by the editor key
	inv       *domain.Inventory
	root      *domain.OutlineNode
	flatNodes []*domain.OutlineNode
	paginator *Paginator
	copy      func(string) error
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(reader ports.InventoryReader, location string) *BrowserModel {
	return &BrowserModel{
		reader:    reader,
		location:  location,
		paginator: NewPaginator(20),
		copy:      clipboard.WriteAll,
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadInventory
}

func (m *BrowserModel) loadInventory() tea.Msg {
	inv, err := commands.NewLoadInventoryCommand(m.reader).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return inventoryLoadedMsg{inv}
}

type inventoryLoadedMsg struct {
	inv *domain.Inventory
}

type errMsg struct {
	err error
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case inventoryLoadedMsg:
		m.SetInventory(msg.inv)
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.paginator.CursorUp()
			return m, nil

		case key.Matches(msg, BrowserKeys.Down):
			m.paginator.CursorDown()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageUp):
			m.paginator.PrevPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.PageDown):
			m.paginator.NextPage()
			return m, nil

		case key.Matches(msg, BrowserKeys.Left):
			if node := m.selectedNode(); node != nil {
				if node.IsExpanded {
					node.Collapse()
					m.refreshFlatNodes()
				} else if node.Parent != nil && node.Parent != m.root {
					m.moveTo(node.Parent)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Right), key.Matches(msg, BrowserKeys.Enter):
			if node := m.selectedNode(); node != nil && node.HasChildren() {
				if !node.IsExpanded {
					node.Expand()
					m.refreshFlatNodes()
				} else if key.Matches(msg, BrowserKeys.Enter) {
					node.Collapse()
					m.refreshFlatNodes()
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Copy):
			if node := m.selectedNode(); node != nil {
				if err := m.copy(node.Name); err != nil {
					m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
				} else {
					m.SetMessage(fmt.Sprintf("Copied %q", node.Name), false)
				}
			}
			return m, nil

		case key.Matches(msg, BrowserKeys.Edit):
			if m.location == "" {
				return m, nil
			}
			path := m.location
			return m, func() tea.Msg {
				return OpenEditorMsg{Path: path}
			}

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.Search):
			return m, func() tea.Msg {
				return SwitchToSearchMsg{}
			}

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

// SetInventory replaces the browsed inventory, keeping the top level collapsed
func (m *BrowserModel) SetInventory(inv *domain.Inventory) {
	m.inv = inv
	m.root = domain.BuildOutline(inv.RootCategory, inv.Categories)
	m.paginator.Reset()
	m.refreshFlatNodes()
}

// Inventory returns the inventory being browsed, or nil before it is loaded
func (m *BrowserModel) Inventory() *domain.Inventory {
	return m.inv
}

// Select reveals the named category and moves the cursor onto it
func (m *BrowserModel) Select(name string) bool {
	if m.root == nil {
		return false
	}
	node := m.root.Find(name)
	if node == nil {
		return false
	}
	node.Reveal()
	m.refreshFlatNodes()
	m.moveTo(node)
	return true
}

func (m *BrowserModel) moveTo(target *domain.OutlineNode) {
	for i, n := range m.flatNodes {
		if n == target {
			m.paginator.SetCursor(i)
			return
		}
	}
}

func (m *BrowserModel) selectedNode() *domain.OutlineNode {
	cursor := m.paginator.Cursor()
	if cursor >= 0 && cursor < len(m.flatNodes) {
		return m.flatNodes[cursor]
	}
	return nil
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// Skip root node in display
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	m.paginator.SetTotal(len(m.flatNodes))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		if m.Message != "" {
			return styles.App.Render(m.renderMessage())
		}
		return "Loading..."
	}

	var b strings.Builder

	// Title
	b.WriteString(styles.Title.Render(m.inv.RootCategory))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d categories · %d files · depth %d · %s",
		m.inv.TotalCategories, m.inv.TotalFiles(), m.inv.MaxDepth, m.inv.Updated)))
	b.WriteString("\n\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(styles.MutedText.Render("No subcategories"))
		b.WriteString("\n")
	}

	// Tree
	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderNode(m.flatNodes[i], i == m.paginator.Cursor()))
		b.WriteString("\n")
	}
	if m.paginator.TotalPages() > 1 {
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
		b.WriteString("\n")
	}

	if msg := m.renderMessage(); msg != "" {
		b.WriteString("\n")
		b.WriteString(msg)
	}

	// Help line
	b.WriteString("\n")
	b.WriteString(renderHelpLine([]helpEntry{
		{"j/k", "navigate"},
		{"h/l", "collapse/expand"},
		{"/", "search"},
		{"y", "copy"},
		{"e", "edit"},
		{"?", "help"},
		{"q", "quit"},
	}))

	return styles.App.Render(b.String())
}

func (m *BrowserModel) renderNode(node *domain.OutlineNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth()-1)

	// Prefix (expand indicator)
	var prefix string
	switch {
	case !node.HasChildren():
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := node.Name
	if node.Incomplete {
		text += " (incomplete)"
	}

	styledText := styles.NodeStyle(node.Level, node.Incomplete).Render(text)
	if selected {
		styledText = styles.NodeSelected.Render(text)
	}

	count := styles.FileCount.Render(fmt.Sprintf("  %d", node.Files))
	return fmt.Sprintf("%s%s%s%s", indent, styles.TreeBranch.Render(prefix), styledText, count)
}

// SetSize updates the view dimensions and the page size
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.paginator.SetPageSize(max(height-headerLines, 5))
}

// Reload reloads the inventory from its source
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.paginator.Reset()
	return m.loadInventory
}
