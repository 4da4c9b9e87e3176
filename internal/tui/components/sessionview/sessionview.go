package sessionview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/gymsimple/internal/constants"
	"github.com/julianstephens/gymsimple/internal/models"
	"github.com/julianstephens/gymsimple/internal/stats"
	"github.com/julianstephens/gymsimple/internal/timer"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(16)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	insightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Session  *models.WorkoutSession
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Session == nil {
		return "No session selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSession(s models.WorkoutSession) {
	m.Session = &s
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Session == nil {
		m.viewport.SetContent("No session loaded.")
		return
	}
	m.viewport.SetContent(Render(*m.Session))
}

// Render formats the summary, per-exercise breakdown and insights of a session
func Render(s models.WorkoutSession) string {
	sum := stats.Summarize(s)

	var b strings.Builder
	b.WriteString(headingStyle.Render("Workout Complete!") + "\n")
	b.WriteString(s.Date.Local().Format("Monday, January 2 2006 at 15:04") + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Duration", timer.FormatClock(int(sum.Duration.Seconds())))
	row("Total sets", strconv.Itoa(sum.TotalSets))
	row("Total reps", strconv.Itoa(sum.TotalReps))
	row("Avg rating", fmt.Sprintf("%.1f / 5", sum.AverageRating))
	row("Est. rest", timer.FormatClock(int(sum.EstimatedRest.Seconds())))

	if insights := stats.Insights(s); len(insights) > 0 {
		b.WriteString("\n" + headingStyle.Render("Insights") + "\n")
		for _, in := range insights {
			b.WriteString(insightStyle.Render(in.Title) + "  " + in.Description + "\n")
		}
	}

	b.WriteString("\n" + headingStyle.Render("Exercises") + "\n")
	for _, ex := range s.Exercises {
		es := stats.Exercise(ex)
		b.WriteString(fmt.Sprintf("%s  %s  %s\n",
			nameStyle.Render(ex.Name),
			weightLabel(ex.Weight),
			strings.Repeat("★", ex.Rating)+strings.Repeat("☆", max(0, constants.MaxRating-ex.Rating)),
		))
		reps := make([]string, len(ex.Sets))
		for i, set := range ex.Sets {
			reps[i] = fmt.Sprintf("%d/%d", set.ActualReps, set.TargetReps)
		}
		b.WriteString(fmt.Sprintf("  sets %s | %.0f%% complete | %.1f reps/set\n",
			strings.Join(reps, " "), es.CompletionRate, es.AvgRepsPerSet))
	}
	return b.String()
}

func weightLabel(w models.Weight) string {
	if w.Value == 0 {
		return "bodyweight"
	}
	return strconv.FormatFloat(w.Value, 'f', -1, 64) + " " + string(w.Unit)
}
