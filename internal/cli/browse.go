package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schedgrid/pkg/pipeline"
	"github.com/matzehuels/schedgrid/pkg/render/text"
	"github.com/matzehuels/schedgrid/pkg/schedule"
)

var (
	browseDayStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
	browseWarnStyle = lipgloss.NewStyle().Foreground(colorYellow)
)

// browseCommand opens an interactive grid viewer.
func (c *CLI) browseCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [schedule.toml|schedule.json|url]",
		Short: "Page through the day grids in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(&opts)
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			ev, err := c.loadSchedule(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			m := newBrowseModel(ev, opts)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	addSelectionFlags(cmd, &opts)
	addGridFlags(cmd, &opts)
	return cmd
}

// =============================================================================
// browseModel - one day grid at a time
// =============================================================================

type browseModel struct {
	ev     *schedule.Event
	opts   pipeline.Options
	days   []string
	index  int
	color  bool
	lines  []string
	status string
	offset int
	height int
}

func newBrowseModel(ev *schedule.Event, opts pipeline.Options) browseModel {
	m := browseModel{ev: ev, opts: opts, days: pipeline.Days(ev, opts), height: 20, color: true}
	if opts.Day != "" {
		for i, d := range m.days {
			if d == opts.Day {
				m.index = i
			}
		}
	}
	m.refresh()
	return m
}

// refresh recomputes the grid for the current day.
func (m *browseModel) refresh() {
	m.offset = 0
	if len(m.days) == 0 {
		m.lines = []string{"No sessions to display"}
		m.status = ""
		return
	}

	opts := m.opts
	opts.Day = m.days[m.index]
	l, stats, err := pipeline.GenerateLayout(m.ev, opts)
	if err != nil {
		m.lines = []string{err.Error()}
		m.status = ""
		return
	}
	m.lines = strings.Split(strings.TrimRight(text.Render(l, text.Options{Color: m.color}), "\n"), "\n")

	m.status = fmt.Sprintf("%d sessions", stats.Placed)
	if stats.Dropped > 0 {
		m.status += browseWarnStyle.Render(fmt.Sprintf(" · %d without column", stats.Dropped))
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			if m.index > 0 {
				m.index--
				m.refresh()
			}
		case "right", "l":
			if m.index < len(m.days)-1 {
				m.index++
				m.refresh()
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < len(m.lines)-m.height {
				m.offset++
			}
		case "c":
			m.color = !m.color
			m.refresh()
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-4, 5)
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	title := appName
	if len(m.days) > 0 {
		title = fmt.Sprintf("%s  [%d/%d]", m.days[m.index], m.index+1, len(m.days))
	}
	b.WriteString(browseDayStyle.Render(title))
	if m.status != "" {
		b.WriteString("  " + browseHelpStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.lines))
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("←/→ day  ↑/↓ scroll  c color  q quit"))
	return b.String()
}
