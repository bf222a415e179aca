package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storydesk/internal/domain"
	"storydesk/internal/unsplash"
)

// handleKeyMsg routes keyboard input by screen
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ctrl+c always quits
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// modals take priority on every screen
	if m.Confirm.IsVisible() {
		handled, tag := m.Confirm.HandleKey(key)
		if handled && tag != "" {
			return m.runConfirmed(tag)
		}
		return m, nil
	}
	if m.Picker.IsVisible() {
		return m.handlePickerKey(msg)
	}

	switch m.State {
	case StateLogin:
		return m.handleLoginKey(msg)
	case StateForgotEmail:
		return m.handleForgotKey(msg)
	case StateOTP:
		return m.handleOTPKey(msg)
	case StateResetPassword:
		return m.handleResetKey(msg)
	case StateChangePassword:
		return m.handleChangePasswordKey(msg)
	case StateDashboard:
		return m.handleDashboardKey(msg)
	case StateStories:
		return m.handleStoriesKey(msg)
	case StateDetail:
		return m.handleDetailKey(msg)
	case StateEdit:
		return m.handleEditKey(msg)
	case StateHelp:
		if key == "esc" || key == "?" || key == "q" {
			m.State = StateStories
		}
		return m, nil
	}
	return m, nil
}

func (m Model) runConfirmed(tag string) (tea.Model, tea.Cmd) {
	switch tag {
	case confirmApprove:
		m.Loading = true
		if m.State == StateDetail {
			if st := m.Moderation.CurrentStory(); st != nil {
				return m, ApproveCmd(m.Moderation, []string{st.ID})
			}
			return m, nil
		}
		return m, ApproveSelectedCmd(m.Moderation)
	case confirmReject:
		m.Loading = true
		if m.State == StateDetail {
			if st := m.Moderation.CurrentStory(); st != nil {
				return m, RejectCmd(m.Moderation, []string{st.ID})
			}
			return m, nil
		}
		return m, RejectSelectedCmd(m.Moderation)
	case confirmLogout:
		m.Loading = true
		return m, LogoutCmd(m.Session)
	}
	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+f" {
		m.ForgotForm.Reset()
		m.State = StateForgotEmail
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.LoginForm, cmd, submitted = m.LoginForm.Update(msg)
	if submitted {
		values := m.LoginForm.Values()
		if values[0] == "" || values[1] == "" {
			m.LoginForm.SetError("Email and password are required")
			return m, nil
		}
		m.Loading = true
		return m, LoginCmd(m.Session, values[0], values[1])
	}
	return m, cmd
}

func (m Model) handleForgotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = StateLogin
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.ForgotForm, cmd, submitted = m.ForgotForm.Update(msg)
	if submitted {
		email := m.ForgotForm.Values()[0]
		if email == "" {
			m.ForgotForm.SetError("Email is required")
			return m, nil
		}
		m.Loading = true
		return m, ForgotPasswordCmd(m.Session, email)
	}
	return m, cmd
}

func (m Model) handleOTPKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = StateForgotEmail
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.OTPForm, cmd, submitted = m.OTPForm.Update(msg)
	if submitted {
		code := m.OTPForm.Values()[0]
		if code == "" {
			m.OTPForm.SetError("Code is required")
			return m, nil
		}
		m.Loading = true
		return m, VerifyOTPCmd(m.Session, m.resetEmail, code)
	}
	return m, cmd
}

func (m Model) handleResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = StateLogin
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.ResetForm, cmd, submitted = m.ResetForm.Update(msg)
	if submitted {
		values := m.ResetForm.Values()
		if values[0] == "" {
			m.ResetForm.SetError("Password is required")
			return m, nil
		}
		if values[0] != values[1] {
			m.ResetForm.SetError("Passwords do not match")
			return m, nil
		}
		m.Loading = true
		return m, ResetPasswordCmd(m.Session, m.resetEmail, values[0])
	}
	return m, cmd
}

func (m Model) handleChangePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = StateDashboard
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.ChangeForm, cmd, submitted = m.ChangeForm.Update(msg)
	if submitted {
		values := m.ChangeForm.Values()
		if values[0] == "" || values[1] == "" {
			m.ChangeForm.SetError("Both passwords are required")
			return m, nil
		}
		m.Loading = true
		return m, ChangePasswordCmd(m.Session, values[0], values[1])
	}
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "p":
		return m, m.openCategory(domain.CategoryPending)
	case "2", "a":
		return m, m.openCategory(domain.CategoryApproved)
	case "3", "x":
		return m, m.openCategory(domain.CategoryRejected)
	case "r":
		m.Loading = true
		return m, FetchCountsCmd(m.Moderation)
	case "c":
		m.ChangeForm.Reset()
		m.State = StateChangePassword
		return m, nil
	case "L":
		m.Confirm.Show(confirmLogout, "Sign out", "End the current session?")
		return m, nil
	}
	return m, nil
}

func (m Model) handleStoriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// server search prompt
	if m.searchActive {
		if msg.String() == "esc" {
			m.searchActive = false
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.SearchForm, cmd, submitted = m.SearchForm.Update(msg)
		if submitted {
			m.searchActive = false
			query := m.SearchForm.Values()[0]
			m.Loading = true
			m.List.SetLoading(true)
			return m, SearchStoriesCmd(m.Moderation, query, m.Category, 1, m.PageSize)
		}
		return m, cmd
	}

	// local filter typing captures everything except its own control keys
	if m.List.IsFilterTyping() {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		m.applyLocalFilter()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		m.State = StateHelp
		return m, nil

	case "esc":
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			return m, nil
		}
		m.State = StateDashboard
		return m, FetchCountsCmd(m.Moderation)

	case "tab":
		return m, m.openCategory(nextCategory(m.Category))

	case "/":
		m.List.ToggleFilter()
		return m, nil

	case "s":
		m.SearchForm.Reset()
		if m.searchQuery != "" {
			m.SearchForm.SetValues(m.searchQuery)
		}
		m.searchActive = true
		return m, nil

	case "r":
		page := 1
		if pg := m.Moderation.Pagination(m.Category); pg != nil {
			page = pg.CurrentPage
		}
		m.Loading = true
		m.List.SetLoading(true)
		return m, FetchStoriesCmd(m.Moderation, m.Category, page, m.PageSize, true)

	case "[", "left":
		if pg := m.Moderation.Pagination(m.Category); pg != nil && pg.HasPrevPage {
			m.Loading = true
			m.List.SetLoading(true)
			if m.searchQuery != "" {
				return m, SearchStoriesCmd(m.Moderation, m.searchQuery, m.Category, pg.CurrentPage-1, m.PageSize)
			}
			return m, FetchStoriesCmd(m.Moderation, m.Category, pg.CurrentPage-1, m.PageSize, false)
		}
		return m, nil

	case "]", "right":
		if pg := m.Moderation.Pagination(m.Category); pg != nil && pg.HasNextPage {
			m.Loading = true
			m.List.SetLoading(true)
			if m.searchQuery != "" {
				return m, SearchStoriesCmd(m.Moderation, m.searchQuery, m.Category, pg.CurrentPage+1, m.PageSize)
			}
			return m, FetchStoriesCmd(m.Moderation, m.Category, pg.CurrentPage+1, m.PageSize, false)
		}
		return m, nil

	case " ":
		if m.Category == domain.CategoryPending {
			if st := m.List.SelectedStory(); st != nil {
				m.Moderation.ToggleSelect(st.ID)
				m.List.SetSelected(m.Moderation.SelectedIDs())
			}
		}
		return m, nil

	case "A":
		if m.Category == domain.CategoryPending {
			m.Moderation.SelectAll()
			m.List.SetSelected(m.Moderation.SelectedIDs())
		}
		return m, nil

	case "D":
		if m.Category == domain.CategoryPending {
			m.Moderation.DeselectAll()
			m.List.SetSelected(m.Moderation.SelectedIDs())
		}
		return m, nil

	case "a":
		if m.Category == domain.CategoryPending {
			n := m.Moderation.SelectedCount()
			if n == 0 {
				m.StatusMsg = "No stories selected"
				m.StatusIsErr = true
				return m, ClearStatusCmd(3 * time.Second)
			}
			m.Confirm.Show(confirmApprove, "Approve stories",
				fmt.Sprintf("Publish %s?", plural(n, "story", "stories")))
		}
		return m, nil

	case "x":
		if m.Category == domain.CategoryPending {
			n := m.Moderation.SelectedCount()
			if n == 0 {
				m.StatusMsg = "No stories selected"
				m.StatusIsErr = true
				return m, ClearStatusCmd(3 * time.Second)
			}
			m.Confirm.Show(confirmReject, "Reject stories",
				fmt.Sprintf("Reject %s?", plural(n, "story", "stories")))
		}
		return m, nil

	case "enter", "l":
		if st := m.List.SelectedStory(); st != nil {
			m.detailFrom = StateStories
			m.State = StateDetail
			m.Loading = true
			return m, FetchStoryCmd(m.Moderation, m.Category, st.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc", "h":
		m.State = StateStories
		m.syncList()
		return m, nil

	case "e":
		if st := m.Moderation.CurrentStory(); st != nil {
			m.EditForm.Reset()
			m.EditForm.SetValues(st.StoryTitle, strings.Join(st.TagList, ", "), st.StoryContent)
			m.State = StateEdit
		}
		return m, nil

	case "i":
		if st := m.Moderation.CurrentStory(); st != nil {
			m.Images.ClearImages()
			m.Picker.Show()
		}
		return m, nil

	case "a":
		if m.Category == domain.CategoryPending {
			if st := m.Moderation.CurrentStory(); st != nil {
				m.Confirm.Show(confirmApprove, "Approve story", st.StoryTitle)
			}
		}
		return m, nil

	case "x":
		if m.Category == domain.CategoryPending {
			if st := m.Moderation.CurrentStory(); st != nil {
				m.Confirm.Show(confirmReject, "Reject story", st.StoryTitle)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.State = StateDetail
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.EditForm, cmd, submitted = m.EditForm.Update(msg)
	if submitted {
		st := m.Moderation.CurrentStory()
		if st == nil {
			m.State = StateStories
			return m, nil
		}
		values := m.EditForm.Values()
		patch := buildPatch(st, values[0], values[1], values[2])
		if patch.IsEmpty() {
			m.State = StateDetail
			return m, nil
		}
		m.Loading = true
		return m, UpdateStoryCmd(m.Moderation, st.ID, m.Category, patch)
	}
	return m, cmd
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var query string
	var picked *unsplash.Photo
	m.Picker, cmd, query, picked = m.Picker.Update(msg)

	// results are cleared on close as well as on open
	if !m.Picker.IsVisible() {
		m.Images.ClearImages()
	}

	if query != "" {
		m.Picker.SetLoading(true)
		return m, SearchImagesCmd(m.Images, query)
	}
	if picked != nil {
		st := m.Moderation.CurrentStory()
		if st == nil {
			return m, nil
		}
		url := m.Images.SelectImage(*picked)
		m.Loading = true
		return m, UpdateCoverImageCmd(m.Moderation, st.ID, url, m.Category)
	}
	return m, cmd
}

// buildPatch diffs edited values against the current story, producing a
// sparse patch of only the changed fields
func buildPatch(st *domain.Story, title, tags, content string) domain.StoryPatch {
	var patch domain.StoryPatch
	if title != "" && title != st.StoryTitle {
		patch.StoryTitle = &title
	}
	if content != "" && content != st.StoryContent {
		patch.StoryContent = &content
	}
	newTags := splitTags(tags)
	if tags != "" && !equalTags(newTags, st.TagList) {
		patch.TagList = &newTags
	}
	return patch
}

func splitTags(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func nextCategory(cat domain.Category) domain.Category {
	cats := domain.Categories()
	for i, c := range cats {
		if c == cat {
			return cats[(i+1)%len(cats)]
		}
	}
	return domain.CategoryPending
}
