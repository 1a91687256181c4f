// Package watch is the live monitor: a bubbletea program sampling CPU,
// memory and kernel activity at a fixed interval and rendering the
// deltas as a table of per-CPU load rows.
package watch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HadrienG2/benchmon/internal/output"
)

const barWidth = 30

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("57")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type tickMsg time.Time

type monitor struct {
	interval time.Duration
	table    table.Model
	prev     sample
	cur      sample
	havePrev bool
	haveCur  bool
	paused   bool
	err      error
	height   int
}

func newMonitor(interval time.Duration) monitor {
	m := monitor{interval: interval}
	m.initTable()
	return m
}

func (m *monitor) initTable() {
	columns := []table.Column{
		{Title: "CPU", Width: 6},
		{Title: "Busy", Width: 8},
		{Title: "Usage", Width: barWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(true)
	t.SetStyles(s)

	m.table = t
}

func tableHeight(windowHeight int) int {
	h := windowHeight - 10
	if h < 3 {
		h = 10
	}
	return h
}

func (m monitor) Init() tea.Cmd {
	return tea.Batch(m.tick(), func() tea.Msg { return takeSample() })
}

func (m monitor) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			return m, nil
		}
	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		return m, tea.Batch(m.tick(), func() tea.Msg { return takeSample() })
	case sampleMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.prev, m.havePrev = m.cur, m.haveCur
		m.cur, m.haveCur = msg.sample, true
		m.table.SetRows(m.rows())
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.table.SetHeight(tableHeight(m.height))
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// rows builds one table row per CPU plus the aggregate, from the delta
// between the two most recent samples.
func (m *monitor) rows() []table.Row {
	if !m.havePrev {
		return nil
	}

	rows := make([]table.Row, 0, len(m.cur.stat.PerCPU)+1)
	rows = append(rows, loadRow("all", busyFraction(m.prev.stat.Aggregate, m.cur.stat.Aggregate)))

	n := len(m.cur.stat.PerCPU)
	// CPU hotplug between samples; deltas only make sense pairwise.
	if prev := len(m.prev.stat.PerCPU); prev < n {
		n = prev
	}
	for i := 0; i < n; i++ {
		rows = append(rows, loadRow("cpu"+strconv.Itoa(i),
			busyFraction(m.prev.stat.PerCPU[i], m.cur.stat.PerCPU[i])))
	}
	return rows
}

func loadRow(name string, frac float64) table.Row {
	return table.Row{name, fmt.Sprintf("%5.1f%%", frac*100), bar(frac, barWidth)}
}

// bar renders a fixed-width load gauge.
func bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(frac*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m monitor) View() string {
	if m.err != nil {
		return fmt.Sprintf("\nError: %v\n\nPress q to quit", m.err)
	}

	var b strings.Builder

	title := "benchmon live monitor"
	if m.paused {
		title += " (PAUSED)"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	if m.haveCur {
		mem := m.cur.mem
		b.WriteString(fmt.Sprintf("  mem %s / %s",
			output.FormatBytes(mem.TotalRAM-mem.AvailableRAM),
			output.FormatBytes(mem.TotalRAM)))
		if mem.TotalSwap > 0 {
			b.WriteString(fmt.Sprintf("   swap %s / %s",
				output.FormatBytes(mem.UsedSwap),
				output.FormatBytes(mem.TotalSwap)))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  load %.2f %.2f %.2f",
			m.cur.load[0], m.cur.load[1], m.cur.load[2]))
		if m.havePrev {
			dt := m.cur.at.Sub(m.prev.at)
			b.WriteString(fmt.Sprintf("   ctx %.0f/s   intr %.0f/s",
				ratePerSecond(m.prev.stat.ContextSwitches, m.cur.stat.ContextSwitches, dt),
				ratePerSecond(m.prev.stat.Interrupts, m.cur.stat.Interrupts, dt)))
		}
		b.WriteString("\n\n")
	} else {
		b.WriteString(dimStyle.Render("  collecting first sample...") + "\n\n")
	}

	b.WriteString(baseStyle.Render(m.table.View()) + "\n")
	b.WriteString(dimStyle.Render("\n  q: quit • p: pause") + "\n")

	return b.String()
}

// Run starts the monitor and blocks until the user quits.
func Run(interval time.Duration) error {
	p := tea.NewProgram(newMonitor(interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
