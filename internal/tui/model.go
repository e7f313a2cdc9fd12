// Package tui is an interactive terminal viewer for simulation runs.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"ctsim/internal/report"
	"ctsim/internal/store"
)

type pane int

const (
	paneRuns pane = iota
	paneSummary
	paneProfile
	paneCount
)

func (p pane) String() string {
	return [...]string{"runs", "summary", "profile"}[p]
}

// recordMsg delivers a finished run to the model.
type recordMsg struct{ rec store.Record }

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	activeTab   = lipgloss.NewStyle().Bold(true).Underline(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const helpText = "tab: switch pane  ↑/↓: scroll  enter: open run  q: quit"

type model struct {
	runs     table.Model
	profile  table.Model
	vp       viewport.Model
	records  []store.Record
	selected int
	pane     pane
	width    int
	height   int
}

func newModel(recs ...store.Record) model {
	runs := table.New(
		table.WithColumns([]table.Column{
			{Title: "Run", Width: 8},
			{Title: "Well", Width: 14},
			{Title: "Status", Width: 12},
			{Title: "Hookload lbf", Width: 12},
			{Title: "Pressure psi", Width: 12},
			{Title: "Risks", Width: 5},
		}),
		table.WithFocused(true),
	)
	profile := table.New(table.WithColumns([]table.Column{
		{Title: "Depth ft", Width: 9},
		{Title: "POOH lbf", Width: 9},
		{Title: "RIH lbf", Width: 9},
		{Title: "Buckle lbf", Width: 10},
		{Title: "Pump psi", Width: 9},
		{Title: "BHP psi", Width: 9},
		{Title: "Vann ft/min", Width: 11},
	}))
	m := model{runs: runs, profile: profile, vp: viewport.New(0, 0), width: 80, height: 24}
	for _, r := range recs {
		m = m.add(r)
	}
	if len(recs) == 1 {
		m.pane = paneSummary
	}
	return m.focus()
}

func (m model) Init() tea.Cmd { return nil }

func (m model) add(rec store.Record) model {
	m.records = append(m.records, rec)
	rows := m.runs.Rows()
	m.runs.SetRows(append(rows, runRow(rec)))
	if len(m.records) == 1 {
		m = m.open(0)
	}
	return m
}

func runRow(rec store.Record) table.Row {
	res := rec.Result
	status := "ok"
	switch {
	case !res.Feasibility.IsFeasible:
		status = "infeasible"
	case res.Error != "":
		status = "error"
	}
	hook, press := "-", "-"
	if res.Forces != nil {
		hook = fmt.Sprintf("%.0f", res.Forces.MaxHookloadLbf)
	}
	if res.Hydraulics != nil {
		press = fmt.Sprintf("%.0f", res.Hydraulics.MaxPressurePsi)
	}
	id := rec.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	return table.Row{id, res.WellName, status, hook, press, fmt.Sprintf("%d", len(res.Risks))}
}

// open selects record i for the summary and profile panes.
func (m model) open(i int) model {
	m.selected = i
	res := m.records[i].Result
	var rows []table.Row
	if f, h := res.Forces, res.Hydraulics; f != nil && h != nil {
		for j, d := range f.DepthFt {
			rows = append(rows, table.Row{
				fmt.Sprintf("%.0f", d),
				fmt.Sprintf("%.0f", f.PickupHookloadLbf[j]),
				fmt.Sprintf("%.0f", f.SlackOffHookloadLbf[j]),
				fmt.Sprintf("%.0f", f.BucklingMarginLbf[j]),
				fmt.Sprintf("%.0f", h.PumpPressurePsi[j]),
				fmt.Sprintf("%.0f", h.BottomholePressurePsi[j]),
				fmt.Sprintf("%.1f", h.AnnularVelocityFtMin[j]),
			})
		}
	}
	m.profile.SetRows(rows)
	m.profile.GotoTop()
	m.refreshSummary()
	return m
}

func (m *model) refreshSummary() {
	if len(m.records) == 0 {
		m.vp.SetContent("waiting for results...")
		return
	}
	out, err := report.TextGenerator{Width: max(m.width, 20)}.Generate(m.records[m.selected].Result)
	if err != nil {
		m.vp.SetContent(err.Error())
		return
	}
	m.vp.SetContent(string(out))
}

func (m *model) resize() {
	body := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderFooter())
	if body < 3 {
		body = 3
	}
	m.runs.SetWidth(m.width)
	m.runs.SetHeight(body)
	m.profile.SetWidth(m.width)
	m.profile.SetHeight(body)
	m.vp.Width = m.width
	m.vp.Height = body
	m.refreshSummary()
}

func (m model) focus() model {
	m.runs.Blur()
	m.profile.Blur()
	switch m.pane {
	case paneRuns:
		m.runs.Focus()
	case paneProfile:
		m.profile.Focus()
	}
	return m
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case recordMsg:
		m = m.add(msg.rec)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.pane = (m.pane + 1) % paneCount
			return m.focus(), nil
		case "enter":
			if m.pane == paneRuns && len(m.records) > 0 {
				m = m.open(m.runs.Cursor())
				m.pane = paneSummary
				return m.focus(), nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.pane {
	case paneRuns:
		m.runs, cmd = m.runs.Update(msg)
	case paneProfile:
		m.profile, cmd = m.profile.Update(msg)
	case paneSummary:
		m.vp, cmd = m.vp.Update(msg)
	}
	return m, cmd
}

func (m model) renderHeader() string {
	tabs := make([]string, 0, paneCount)
	for p := pane(0); p < paneCount; p++ {
		name := p.String()
		if p == m.pane {
			name = activeTab.Render(name)
		}
		tabs = append(tabs, name)
	}
	title := "ctsim"
	if len(m.records) > 0 {
		title += " - " + m.records[m.selected].Result.WellName
	}
	return headerStyle.Render(title) + "  " + strings.Join(tabs, " | ")
}

func (m model) renderFooter() string {
	return helpStyle.Render(wordwrap.String(helpText, max(m.width, 20)))
}

func (m model) View() string {
	var body string
	switch m.pane {
	case paneRuns:
		body = m.runs.View()
	case paneProfile:
		body = m.profile.View()
	default:
		body = m.vp.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}
