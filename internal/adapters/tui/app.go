package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cattree/internal/adapters/tui/views"
	"cattree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewSearch
	ViewHelp
)

// App is the main TUI application model
type App struct {
	editor ports.EditorOpener // optional

	state   ViewState
	browser *views.BrowserModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application browsing the inventory read by reader.
// location is the artifact path opened by the editor key; ed may be nil.
func NewApp(reader ports.InventoryReader, location string, ed ports.EditorOpener) *App {
	return &App{
		editor:  ed,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(reader, location),
		search:  views.NewSearchModel(),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.search.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToSearchMsg:
		if a.browser.Inventory() == nil {
			return a, nil
		}
		a.state = ViewSearch
		a.search.SetInventory(a.browser.Inventory())
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	case views.SearchSelectMsg:
		a.state = ViewBrowser
		a.browser.Select(msg.Name)
		return a, nil

	case views.OpenEditorMsg:
		a.state = ViewBrowser
		return a, a.openEditor(msg.Path)

	case editorFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
			return a, nil
		}
		// The artifact may have been edited
		return a, a.browser.Reload()
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
