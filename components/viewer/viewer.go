package viewer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/adammck/trot"
	"github.com/adammck/trot/contact"
	"github.com/adammck/trot/gait"
	"github.com/adammck/trot/optimizer"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "viewer",
})

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))
)

// Viewer prints the plan to a writer. It is both the last stage of the
// pipeline and the display collaborator of the solver.
type Viewer struct {
	w io.Writer
}

func New(w io.Writer) *Viewer {
	return &Viewer{w: w}
}

func (v *Viewer) Name() string {
	return "viewer"
}

func (v *Viewer) Boot() error {
	return nil
}

func (v *Viewer) Run(ctx context.Context, p *trot.Plan) error {
	_, err := io.WriteString(v.w, Render(p))
	return err
}

// Display prints a one-line summary of every tenth knot of the solution.
func (v *Viewer) Display(p *optimizer.Problem, s *optimizer.Solution) error {
	log.Debugf("displaying %d knots", len(s.Times))

	rows := [][]string{}
	for i := 0; i < len(s.Times); i += 10 {
		rows = append(rows, solutionRow(s, i))
	}
	if last := len(s.Times) - 1; last%10 != 0 {
		rows = append(rows, solutionRow(s, last))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("knot", "t", "base x", "base y", "base z", "Σ fz").
		Rows(rows...)

	_, err := fmt.Fprintln(v.w, t.Render())
	return err
}

func solutionRow(s *optimizer.Solution, i int) []string {
	fz := 0.0
	for _, f := range s.F[i] {
		fz += f.Z
	}

	return []string{
		fmt.Sprintf("%d", i),
		fmt.Sprintf("%0.3f", s.Times[i]),
		fmt.Sprintf("%+0.3f", s.Q[i][0]),
		fmt.Sprintf("%+0.3f", s.Q[i][1]),
		fmt.Sprintf("%+0.3f", s.Q[i][2]),
		fmt.Sprintf("%0.1f", fz),
	}
}

// foot returns the placement of a foot if it's in contact, or a dash.
func foot(tl *gait.Timeline, i int, p contact.Point) string {
	st := tl.Phase(i).Status
	if !st.IsActive(p) {
		return "-"
	}

	v := st.Placement(p)
	return fmt.Sprintf("%+0.3f,%+0.3f", v.X, v.Y)
}

// Render returns the contact timeline (and statistics, if solved) as a table.
func Render(p *trot.Plan) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("plan %s", p.ID)))
	b.WriteString("\n")

	if p.Timeline == nil {
		b.WriteString(dimStyle.Render("(no timeline)"))
		b.WriteString("\n")
		return b.String()
	}

	tl := p.Timeline
	summary := fmt.Sprintf("phases=%d horizon=%0.3fs", tl.Len(), tl.Horizon())
	if p.Grid != nil {
		summary += fmt.Sprintf(" N=%d dt=%0.4fs", p.Grid.N(), p.Grid.Dt())
	}
	b.WriteString(dimStyle.Render(summary))
	b.WriteString("\n")

	headers := []string{"#", "start", "end", "kind"}
	for _, pt := range contact.Points() {
		headers = append(headers, pt.String())
	}

	rows := make([][]string, 0, tl.Len())
	for i, ph := range tl.Phases() {
		row := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%0.3f", ph.Start),
			fmt.Sprintf("%0.3f", tl.End(i)),
			string(ph.Kind),
		}
		for _, pt := range contact.Points() {
			row = append(row, foot(tl, i, pt))
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...)

	b.WriteString(t.Render())
	b.WriteString("\n")

	if p.Stats != nil {
		b.WriteString(fmt.Sprintf("Initial KKT error: %0.6e\n", p.Stats.InitialKKT))
		b.WriteString(fmt.Sprintf("KKT error after convergence: %0.6e\n", p.Stats.KKT))
		b.WriteString(p.Stats.String())
		b.WriteString("\n")
	}

	return b.String()
}
