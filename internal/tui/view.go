package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateExercises:
		content = docStyle.Render(m.exerciseList.View())
	case StateSessions:
		content = m.viewSessions()
	case StateSettings:
		content = docStyle.Render(m.settingsModel.View())
	case StateEditing:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StatePlay:
		content = m.player.View()
	case StateEndurance:
		content = m.circuit.View()
	case StateSessionDetail:
		content = docStyle.Render(m.sessionView.View())
	}

	var banner string
	if m.validationWarning != "" && m.state == StateExercises {
		banner = warningStyle.Render(m.validationWarning)
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	parts := []string{}
	if m.state <= StateSettings {
		parts = append(parts, m.viewTabs())
	}
	parts = append(parts, banner, content, status, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Exercises", "History", "Settings"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSessions() string {
	if m.sessionList.Len() == 0 {
		return docStyle.Render("No workouts yet.\nSelect exercises and press 'p' to start one.")
	}
	return docStyle.Render(m.sessionList.View())
}

func (m Model) viewForm() string {
	title := "Add Exercise"
	if m.editingID != "" {
		title = "Edit Exercise"
	}
	parts := []string{activeTabStyle.Render(title), m.form.View()}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	question := "Are you sure you want to delete this exercise?"
	if m.sessionToDelete != "" {
		question = "Are you sure you want to delete this workout?"
	}
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
