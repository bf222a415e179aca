package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"storydesk/internal/domain"
	"storydesk/internal/tui/styles"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	var content string
	switch m.State {
	case StateLogin:
		content = m.renderCenteredForm(m.LoginForm.View() +
			"\n" + styles.HelpKeyStyle.Render("ctrl+f") + styles.HelpDescStyle.Render(" forgot password"))
	case StateForgotEmail:
		content = m.renderCenteredForm(m.ForgotForm.View() + "\n" + escHint("back to sign in"))
	case StateOTP:
		hint := styles.DimStyle.Render("Code sent to "+m.resetEmail) + "\n" + escHint("back")
		content = m.renderCenteredForm(m.OTPForm.View() + "\n" + hint)
	case StateResetPassword:
		content = m.renderCenteredForm(m.ResetForm.View() + "\n" + escHint("cancel"))
	case StateChangePassword:
		content = m.renderCenteredForm(m.ChangeForm.View() + "\n" + escHint("back"))
	case StateDashboard:
		content = m.renderDashboard()
	case StateStories:
		content = m.renderStories()
	case StateDetail, StateEdit:
		content = m.renderDetail()
	case StateHelp:
		content = m.renderHelp()
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())

	if m.Confirm.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Confirm.View())
	}
	if m.Picker.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Picker.View())
	}

	return view
}

func escHint(what string) string {
	return styles.HelpKeyStyle.Render("esc") + styles.HelpDescStyle.Render(" "+what)
}

func (m Model) renderCenteredForm(form string) string {
	box := styles.ModalStyle.Render(form)
	return lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderDashboard() string {
	header := styles.TitleStyle.Render("Story Moderation")
	if admin := m.Session.Current(); admin != nil {
		header += styles.DimStyle.Render("  " + admin.Email)
	}

	counts := m.Moderation.Counts()
	card := func(label string, n int, style lipgloss.Style, key string) string {
		count := "—"
		if counts != nil {
			count = fmt.Sprintf("%d", n)
		}
		body := lipgloss.JoinVertical(lipgloss.Center,
			style.Render(label),
			styles.CardCountStyle.Render(count),
			styles.DimStyle.Render("["+key+"]"),
		)
		return styles.CardStyle.Render(body)
	}

	var pending, approved, rejected int
	if counts != nil {
		pending = counts.PendingStories
		approved = counts.PublishedStories
		rejected = counts.RejectedStories
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Pending", pending, styles.PendingStyle, "1"),
		" ",
		card("Approved", approved, styles.ApprovedStyle, "2"),
		" ",
		card("Rejected", rejected, styles.RejectedStyle, "3"),
	)

	keys := helpLine([][2]string{
		{"1-3", "open category"},
		{"r", "refresh"},
		{"c", "change password"},
		{"L", "sign out"},
		{"q", "quit"},
	})

	body := lipgloss.JoinVertical(lipgloss.Left, header, "", cards, "", keys)
	return lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderStories() string {
	if m.searchActive {
		box := styles.ModalStyle.Render(m.SearchForm.View() + "\n" + escHint("cancel"))
		return lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center, box)
	}
	return m.List.View()
}

func (m Model) renderDetail() string {
	st := m.Moderation.CurrentStory()
	if st == nil {
		return lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center,
			styles.DimStyle.Render("loading story..."))
	}

	if m.State == StateEdit {
		return m.renderCenteredForm(m.EditForm.View() + "\n" + escHint("discard"))
	}

	width := m.Width - 4
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(st.StoryTitle))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s <%s>", st.UserName, st.UserEmail)))
	b.WriteString("\n")

	var meta []string
	if st.SubmissionDate != 0 {
		meta = append(meta, "submitted "+time.UnixMilli(st.SubmissionDate).Format("2006-01-02"))
	}
	meta = append(meta, fmt.Sprintf("%d reads", st.ReadCount), fmt.Sprintf("%d upvotes", st.UpvoteCount))
	if len(st.TagList) > 0 {
		meta = append(meta, strings.Join(st.TagList, ", "))
	}
	b.WriteString(styles.DimStyle.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")
	if st.CoverPicRef != "" {
		b.WriteString(styles.DimStyle.Render("cover: " + styles.Truncate(st.CoverPicRef, width-8)))
		b.WriteString("\n")
	}
	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(wrap(st.StoryContent, width))

	keys := [][2]string{
		{"e", "edit"},
		{"i", "cover image"},
	}
	if m.Category == domain.CategoryPending {
		keys = append(keys, [2]string{"a", "approve"}, [2]string{"x", "reject"})
	}
	keys = append(keys, [2]string{"esc", "back"})

	body := lipgloss.JoinVertical(lipgloss.Left, b.String(), "", helpLine(keys))
	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}

func (m Model) renderHelp() string {
	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Navigation", [][2]string{
			{"j/k", "move cursor"},
			{"g/G", "first/last"},
			{"[ ]", "prev/next page"},
			{"tab", "next category"},
			{"enter", "open story"},
			{"esc", "back"},
		}},
		{"Moderation", [][2]string{
			{"space", "toggle select"},
			{"A/D", "select/deselect all"},
			{"a", "approve selected"},
			{"x", "reject selected"},
		}},
		{"Search", [][2]string{
			{"/", "filter loaded rows"},
			{"s", "server search"},
			{"r", "force refresh"},
		}},
	}

	var parts []string
	parts = append(parts, styles.TitleStyle.Render("Keys"), "")
	for _, sec := range sections {
		parts = append(parts, styles.AccentStyle.Render(sec.title))
		for _, k := range sec.keys {
			parts = append(parts, "  "+styles.HelpKeyStyle.Render(styles.Pad(k[0], 8))+styles.HelpDescStyle.Render(k[1]))
		}
		parts = append(parts, "")
	}
	parts = append(parts, escHint("close"))

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return lipgloss.Place(m.Width, m.Height-1, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Loading:
		frame := spinnerFrames[m.SpinnerFrame%len(spinnerFrames)]
		left = styles.SpinnerStyle.Render(frame) + styles.DimStyle.Render(" working...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	default:
		left = styles.DimStyle.Render("? help")
	}

	var right string
	if m.State == StateStories && m.Category == domain.CategoryPending {
		if n := m.Moderation.SelectedCount(); n > 0 {
			right = styles.AccentStyle.Render(fmt.Sprintf("%d selected", n))
		}
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func helpLine(keys [][2]string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, styles.HelpKeyStyle.Render(k[0])+styles.HelpDescStyle.Render(" "+k[1]))
	}
	return strings.Join(parts, "  ")
}

// wrap is a simple greedy word wrapper for story content
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	var b strings.Builder
	for _, paragraph := range strings.Split(s, "\n") {
		lineLen := 0
		for _, word := range strings.Fields(paragraph) {
			wl := lipgloss.Width(word)
			if lineLen > 0 && lineLen+wl+1 > width {
				b.WriteString("\n")
				lineLen = 0
			} else if lineLen > 0 {
				b.WriteString(" ")
				lineLen++
			}
			b.WriteString(word)
			lineLen += wl
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
