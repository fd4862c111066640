// Package tui is an interactive terminal browser for computed systems:
// a list of stocks and flows, with time series charts per entry.
package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfalab/flowdyn/internal/mfa"
	"github.com/mfalab/flowdyn/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type state int

const (
	stateList state = iota
	stateDetail
)

type entryKind int

const (
	kindStock entryKind = iota
	kindFlow
)

type entry struct {
	kind entryKind
	name string
}

type model struct {
	sys        *mfa.System
	timeLetter string
	entries    []entry
	cursor     int
	state      state
	width      int
	height     int
}

// NewBrowser builds the browser over a computed system.
func NewBrowser(sys *mfa.System, timeLetter string) tea.Model {
	var entries []entry
	for name := range sys.Stocks() {
		entries = append(entries, entry{kind: kindStock, name: name})
	}
	for name := range sys.Flows() {
		entries = append(entries, entry{kind: kindFlow, name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].kind != entries[j].kind {
			return entries[i].kind < entries[j].kind
		}
		return entries[i].name < entries[j].name
	})
	if timeLetter == "" {
		timeLetter = "t"
	}
	return model{sys: sys, timeLetter: timeLetter, entries: entries, width: 80, height: 24}
}

// Run starts the browser and blocks until the user quits.
func Run(sys *mfa.System, timeLetter string) error {
	_, err := tea.NewProgram(NewBrowser(sys, timeLetter), tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.state == stateList && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.state == stateList && m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.state == stateList && len(m.entries) > 0 {
			m.state = stateDetail
		}
	case "esc", "b":
		m.state = stateList
	}
	return m, nil
}

func (m model) View() string {
	switch m.state {
	case stateDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m model) viewList() string {
	var b strings.Builder
	b.WriteString(cyan.Render(m.sys.Name()) + "\n\n")
	if len(m.entries) == 0 {
		b.WriteString(dim.Render("nothing to browse") + "\n")
		return b.String()
	}
	for i, e := range m.entries {
		cursor := "  "
		if i == m.cursor {
			cursor = cyan.Render("> ")
		}
		label := green.Render("stock")
		if e.kind == kindFlow {
			label = yellow.Render("flow ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, label, e.name))
	}
	b.WriteString("\n" + dim.Render("enter view · j/k move · q quit") + "\n")
	return b.String()
}

func (m model) viewDetail() string {
	e := m.entries[m.cursor]
	chartWidth := m.width - 10
	if chartWidth > 70 {
		chartWidth = 70
	}

	var body string
	var err error
	switch e.kind {
	case kindStock:
		st, lookupErr := m.sys.Stock(e.name)
		if lookupErr != nil {
			err = lookupErr
			break
		}
		body, err = viz.StockPanel(st, m.timeLetter, chartWidth, 6)
	case kindFlow:
		f, lookupErr := m.sys.Flow(e.name)
		if lookupErr != nil {
			err = lookupErr
			break
		}
		body, err = viz.PlotArray(f.Array(), m.timeLetter, e.name, chartWidth, 8)
	}
	if err != nil {
		body = dim.Render(err.Error())
	}
	return body + "\n" + dim.Render("esc back · q quit") + "\n"
}
