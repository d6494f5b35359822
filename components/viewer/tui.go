package viewer

import (
	"fmt"
	"strings"

	"github.com/adammck/trot"
	"github.com/adammck/trot/contact"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Model scrubs through the knots of a sampled plan.
type Model struct {
	plan   *trot.Plan
	cursor int
}

// NewModel returns a model positioned on the first knot. The plan must have
// been through the refs stage.
func NewModel(p *trot.Plan) Model {
	return Model{plan: p}
}

// Cursor returns the index of the knot being shown.
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) last() int {
	return len(m.plan.Samples) - 1
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "right", "l":
		if m.cursor < m.last() {
			m.cursor++
		}

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}

	// Jump to the next phase switch.
	case "tab":
		for _, i := range m.plan.Grid.Switches() {
			if i > m.cursor {
				m.cursor = i
				break
			}
		}

	case "home", "g":
		m.cursor = 0

	case "end", "G":
		m.cursor = m.last()
	}

	return m, nil
}

func (m Model) mark(s trot.Sample, p contact.Point) string {
	if s.Swinging.Has(p) {
		return upStyle.Render("○ " + p.String())
	}
	return downStyle.Render("● " + p.String())
}

func (m Model) View() string {
	if len(m.plan.Samples) == 0 {
		return "nothing to show\n"
	}

	s := m.plan.Samples[m.cursor]
	k := m.plan.Grid.Knot(m.cursor)
	ph := m.plan.Timeline.Phase(k.Phase)

	// Feet are drawn as seen from above, front at the top.
	feet := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, m.mark(s, contact.FL), m.mark(s, contact.RL)),
		"   ",
		lipgloss.JoinVertical(lipgloss.Left, m.mark(s, contact.FR), m.mark(s, contact.RR)),
	)

	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("knot %d/%d  t=%0.3fs", m.cursor, m.last(), s.Time)))
	lines = append(lines, fmt.Sprintf("phase #%d %s", ph.Index, ph.Kind))
	lines = append(lines, fmt.Sprintf("com %s", s.CoM))
	for _, p := range contact.Points() {
		lines = append(lines, fmt.Sprintf("%s  %s", p, s.Feet[p]))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(feet),
		"  ",
		strings.Join(lines, "\n"),
	)

	return body + "\n" + dimStyle.Render("←/→ step  tab next switch  g/G ends  q quit") + "\n"
}

// Show runs the interactive viewer until the user quits.
func Show(p *trot.Plan) error {
	_, err := tea.NewProgram(NewModel(p)).Run()
	return err
}
