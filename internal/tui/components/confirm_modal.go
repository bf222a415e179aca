package components

import (
	"github.com/charmbracelet/lipgloss"

	"storydesk/internal/tui/styles"
)

// ConfirmModal is a yes/no confirmation prompt.
type ConfirmModal struct {
	visible bool
	title   string
	message string
	// tag identifies which action is being confirmed
	tag string
}

func NewConfirmModal() ConfirmModal {
	return ConfirmModal{}
}

// Show displays the modal. tag is returned from HandleKey on confirmation
// so the caller knows which action was approved.
func (m *ConfirmModal) Show(tag, title, message string) {
	m.visible = true
	m.tag = tag
	m.title = title
	m.message = message
}

func (m *ConfirmModal) Hide() {
	m.visible = false
}

func (m ConfirmModal) IsVisible() bool {
	return m.visible
}

// HandleKey processes a key press. Returns (handled, confirmedTag);
// confirmedTag is empty unless the user pressed yes.
func (m *ConfirmModal) HandleKey(key string) (bool, string) {
	if !m.visible {
		return false, ""
	}
	switch key {
	case "y", "Y", "enter":
		tag := m.tag
		m.Hide()
		return true, tag
	case "n", "N", "esc":
		m.Hide()
		return true, ""
	}
	return true, ""
}

func (m ConfirmModal) View() string {
	if !m.visible {
		return ""
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		styles.SubtitleStyle.Render(m.message),
		"",
		styles.HelpKeyStyle.Render("y")+styles.HelpDescStyle.Render(" confirm  ")+
			styles.HelpKeyStyle.Render("n")+styles.HelpDescStyle.Render(" cancel"),
	)

	return styles.ModalStyle.Render(content)
}
