package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"storydesk/internal/domain"
	"storydesk/internal/tui/styles"
)

var storyListSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	borderWidth  = 2
	borderHeight = 2
	headerLines  = 2
	footerLines  = 2
)

// StoryList is a scrollable, filterable story list for one status category.
// Checkboxes are shown only for the pending category. Filter matching is
// delegated to the caller, which computes ranked ids from the filter query
// and hands them back via SetFilterResults.
type StoryList struct {
	category   domain.Category
	stories    []domain.Story
	pagination *domain.Pagination

	cursor     int
	offset     int
	maxVisible int

	width   int
	height  int
	focused bool

	loading      bool
	spinnerFrame int

	// set of selected story ids, mirrored from the moderation store
	selected map[string]bool

	// local filter over loaded rows
	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int
}

func NewStoryList(cat domain.Category) *StoryList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &StoryList{
		category:    cat,
		filterInput: ti,
		selected:    make(map[string]bool),
		focused:     true,
	}
}

func (l *StoryList) Category() domain.Category { return l.category }

// SetStories replaces the list contents. The cursor is clamped, not reset,
// so removals keep the cursor near its previous position.
func (l *StoryList) SetStories(stories []domain.Story, pg *domain.Pagination) {
	l.stories = stories
	l.pagination = pg
	l.loading = false
	if l.filterActive {
		// stale indices would point at the old slice; the owner re-runs
		// the filter after replacing contents
		l.showAllFiltered()
	}
	l.clampCursor()
}

// SetSelected mirrors the selection set from the moderation store.
func (l *StoryList) SetSelected(ids []string) {
	l.selected = make(map[string]bool, len(ids))
	for _, id := range ids {
		l.selected[id] = true
	}
}

func (l *StoryList) SetLoading(v bool)              { l.loading = v }
func (l *StoryList) SetSpinnerFrame(f int)          { l.spinnerFrame = f }
func (l *StoryList) SetFocused(v bool)              { l.focused = v }
func (l *StoryList) IsFilterTyping() bool           { return l.filterActive && l.filterInput.Focused() }
func (l *StoryList) IsFiltering() bool              { return l.filterActive }
func (l *StoryList) Pagination() *domain.Pagination { return l.pagination }

func (l *StoryList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.maxVisible = height - borderHeight - headerLines - footerLines
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.filterInput.Width = width - borderWidth - 4
	l.ensureVisible()
}

// SelectedStory returns the story under the cursor, or nil.
func (l *StoryList) SelectedStory() *domain.Story {
	idx := l.storyIndex(l.cursor)
	if idx < 0 {
		return nil
	}
	st := l.stories[idx]
	return &st
}

// visibleCount returns the number of rows currently shown (filter applied).
func (l *StoryList) visibleCount() int {
	if l.filterActive {
		return len(l.filteredIdx)
	}
	return len(l.stories)
}

// storyIndex maps a visible row position to an index into stories.
func (l *StoryList) storyIndex(pos int) int {
	if l.filterActive {
		if pos < 0 || pos >= len(l.filteredIdx) {
			return -1
		}
		return l.filteredIdx[pos]
	}
	if pos < 0 || pos >= len(l.stories) {
		return -1
	}
	return pos
}

// ToggleFilter activates or focuses the local filter input.
func (l *StoryList) ToggleFilter() {
	if !l.filterActive {
		l.filterActive = true
		l.filterInput.SetValue("")
		l.showAllFiltered()
	}
	l.filterInput.Focus()
}

// FilterQuery returns the current filter text.
func (l *StoryList) FilterQuery() string {
	return strings.TrimSpace(l.filterInput.Value())
}

// SetFilterResults restricts visible rows to the given story ids, keeping
// their order. Ids not on the current page are ignored.
func (l *StoryList) SetFilterResults(ids []string) {
	if !l.filterActive {
		return
	}
	byID := make(map[string]int, len(l.stories))
	for i, st := range l.stories {
		byID[st.ID] = i
	}
	l.filteredIdx = make([]int, 0, len(ids))
	for _, id := range ids {
		if idx, ok := byID[id]; ok {
			l.filteredIdx = append(l.filteredIdx, idx)
		}
	}
	l.cursor = 0
	l.offset = 0
	l.clampCursor()
}

// showAllFiltered resets the filter view to every loaded row.
func (l *StoryList) showAllFiltered() {
	l.filteredIdx = make([]int, len(l.stories))
	for i := range l.stories {
		l.filteredIdx[i] = i
	}
}

// ClearFilter deactivates the filter and shows all rows.
func (l *StoryList) ClearFilter() {
	l.filterActive = false
	l.filterInput.Blur()
	l.filterInput.SetValue("")
	l.filteredIdx = nil
	l.clampCursor()
}

func (l *StoryList) clampCursor() {
	count := l.visibleCount()
	if l.cursor >= count {
		l.cursor = count - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.ensureVisible()
}

func (l *StoryList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// Update handles navigation and filter keys.
func (l *StoryList) Update(msg tea.Msg) (*StoryList, tea.Cmd) {
	if !l.focused {
		return l, nil
	}

	if l.IsFilterTyping() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				l.ClearFilter()
				return l, nil
			case "enter":
				l.filterInput.Blur()
				return l, nil
			case "backspace":
				if l.filterInput.Value() == "" {
					l.ClearFilter()
					return l, nil
				}
			}
		}
		var cmd tea.Cmd
		l.filterInput, cmd = l.filterInput.Update(msg)
		return l, cmd
	}

	count := l.visibleCount()
	if count == 0 {
		return l, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if l.cursor < count-1 {
				l.cursor++
				l.ensureVisible()
			}
		case "k", "up":
			if l.cursor > 0 {
				l.cursor--
				l.ensureVisible()
			}
		case "g", "home":
			l.cursor = 0
			l.ensureVisible()
		case "G", "end":
			l.cursor = count - 1
			l.ensureVisible()
		case "ctrl+d":
			l.cursor += l.maxVisible / 2
			l.clampCursor()
		case "ctrl+u":
			l.cursor -= l.maxVisible / 2
			l.clampCursor()
		}
	}

	return l, nil
}

// View renders the list with header, rows, and pagination footer.
func (l *StoryList) View() string {
	innerWidth := l.width - borderWidth
	if innerWidth < 10 {
		innerWidth = 10
	}

	var b strings.Builder

	title := l.category.Title()
	if l.pagination != nil {
		title = fmt.Sprintf("%s (%d)", title, l.pagination.TotalStories)
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(title, innerWidth)))
	b.WriteString("\n")

	if l.filterActive {
		b.WriteString(l.filterInput.View())
	} else {
		b.WriteString(styles.DimStyle.Render(strings.Repeat("─", innerWidth)))
	}
	b.WriteString("\n")

	switch {
	case l.loading:
		frame := storyListSpinnerFrames[l.spinnerFrame%len(storyListSpinnerFrames)]
		b.WriteString(styles.SpinnerStyle.Render(frame) + styles.DimStyle.Render(" loading..."))
		b.WriteString("\n")
	case l.visibleCount() == 0:
		b.WriteString(styles.DimStyle.Render("no stories"))
		b.WriteString("\n")
	default:
		end := l.offset + l.maxVisible
		if end > l.visibleCount() {
			end = l.visibleCount()
		}
		for pos := l.offset; pos < end; pos++ {
			b.WriteString(l.renderRow(pos, innerWidth))
			b.WriteString("\n")
		}
	}

	b.WriteString(styles.DimStyle.Render(strings.Repeat("─", innerWidth)))
	b.WriteString("\n")
	b.WriteString(l.renderFooter(innerWidth))

	border := styles.InactiveBorder
	if l.focused {
		border = styles.ActiveBorder
	}
	return border.Width(innerWidth).Height(l.height - borderHeight).Render(b.String())
}

func (l *StoryList) renderRow(pos, width int) string {
	idx := l.storyIndex(pos)
	if idx < 0 {
		return ""
	}
	st := l.stories[idx]

	var prefix string
	if l.category == domain.CategoryPending {
		if l.selected[st.ID] {
			prefix = styles.CheckedStyle.Render(styles.CheckedChar) + " "
		} else {
			prefix = styles.UncheckedStyle.Render(styles.UncheckedChar) + " "
		}
	}

	meta := fmt.Sprintf("  %s · %s", st.UserName, submissionDate(st))
	titleWidth := width - lipgloss.Width(prefix) - lipgloss.Width(meta) - 2
	if titleWidth < 8 {
		titleWidth = 8
		meta = ""
	}

	row := prefix + styles.Truncate(st.StoryTitle, titleWidth) + styles.DimStyle.Render(meta)
	if pos == l.cursor {
		return styles.SelectedItemStyle.Width(width).Render(row)
	}
	return styles.NormalItemStyle.Width(width).Render(row)
}

func (l *StoryList) renderFooter(width int) string {
	if l.pagination == nil {
		return ""
	}
	pg := l.pagination

	left := fmt.Sprintf("page %d/%d", pg.CurrentPage, pg.TotalPages)
	var hints []string
	if pg.HasPrevPage {
		hints = append(hints, "[ prev")
	}
	if pg.HasNextPage {
		hints = append(hints, "] next")
	}
	right := strings.Join(hints, "  ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.DimStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func submissionDate(st domain.Story) string {
	if st.SubmissionDate == 0 {
		return "unknown"
	}
	return time.UnixMilli(st.SubmissionDate).Format("2006-01-02")
}
