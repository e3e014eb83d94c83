package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/levelforge/internal/core"
	"github.com/vovakirdan/levelforge/internal/level"
	"github.com/vovakirdan/levelforge/internal/storage"
)

// Archive layout constants
const (
	minWidthForPreview = 100 // Minimum width to show the level preview beside the table
	maxArchiveRows     = 100 // Max levels to load
)

// ArchiveKeyMap defines the key bindings for the archive browser.
type ArchiveKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k ArchiveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k ArchiveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Delete, k.Quit},
	}
}

// DefaultArchiveKeyMap returns the default key bindings.
func DefaultArchiveKeyMap() ArchiveKeyMap {
	return ArchiveKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete level"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ArchiveModel is the Bubble Tea model for browsing saved levels.
type ArchiveModel struct {
	store    *storage.Store
	levels   []storage.LevelRecord
	table    table.Model
	help     help.Model
	keys     ArchiveKeyMap
	err      error
	width    int
	height   int
	quitting bool
}

// NewArchiveModel creates an archive browser over store.
func NewArchiveModel(store *storage.Store, width, height int) ArchiveModel {
	h := help.New()
	h.ShowAll = false

	m := ArchiveModel{
		store:  store,
		keys:   DefaultArchiveKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadLevels()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ArchiveModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Name", Width: 18},
		{Title: "Size", Width: 5},
		{Title: "Features", Width: 24},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ArchiveModel) loadLevels() {
	if m.store == nil {
		m.levels = nil
		m.updateTableRows()
		return
	}
	levels, err := m.store.RecentLevels(maxArchiveRows)
	m.err = err
	m.levels = levels
	m.updateTableRows()
}

func (m *ArchiveModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		rows[i] = table.Row{
			shortID(l.ID),
			l.LevelName,
			fmt.Sprintf("%d", l.Size),
			l.Features,
			l.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// Selected returns the highlighted level record, or nil.
func (m ArchiveModel) Selected() *storage.LevelRecord {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.levels) {
		return nil
	}
	return &m.levels[i]
}

// Init initializes the archive model.
func (m ArchiveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the archive.
func (m ArchiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Delete):
			if sel := m.Selected(); sel != nil && m.store != nil {
				m.err = m.store.DeleteLevel(sel.ID)
				m.loadLevels()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the archive.
func (m ArchiveModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("LEVEL ARCHIVE", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := tableStyle.Render(m.renderTableContent())
	if m.width >= minWidthForPreview {
		if sel := m.Selected(); sel != nil {
			if doc, err := level.Decode(sel.Document); err == nil {
				content = lipgloss.JoinHorizontal(lipgloss.Top, content, "  ", tableStyle.Render(RenderPreview(doc)))
			}
		}
	}
	b.WriteString(content)

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.err.Error()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ArchiveModel) renderTableContent() string {
	if len(m.levels) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No levels saved yet.\nGenerate one and press s to keep it!")
	}
	return m.table.View()
}

// IsQuitting returns true if user wants to quit.
func (m ArchiveModel) IsQuitting() bool {
	return m.quitting
}

// RunArchive runs the archive browser.
func RunArchive(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewArchiveModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
