package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storydesk/internal/domain"
	"storydesk/internal/imagesearch"
	"storydesk/internal/moderation"
	"storydesk/internal/session"
	"storydesk/internal/tui/components"
)

// ApplicationState represents the current screen
type ApplicationState int

const (
	StateLogin ApplicationState = iota
	StateForgotEmail
	StateOTP
	StateResetPassword
	StateDashboard
	StateStories
	StateDetail
	StateEdit
	StateChangePassword
	StateHelp
)

// Confirmation tags for the confirm modal
const (
	confirmApprove = "approve"
	confirmReject  = "reject"
	confirmLogout  = "logout"
)

// Model is the main Bubble Tea model for the application
type Model struct {
	State ApplicationState
	Ready bool

	// Stores
	Session    *session.Store
	Moderation *moderation.Store
	Images     *imagesearch.Store

	PageSize int

	// UI components
	List       *components.StoryList
	Confirm    components.ConfirmModal
	Picker     components.ImagePicker
	LoginForm  components.Form
	ForgotForm components.Form
	OTPForm    components.Form
	ResetForm  components.Form
	ChangeForm components.Form
	EditForm   components.Form
	SearchForm components.Form

	// Stories view state
	Category     domain.Category
	searchActive bool
	searchQuery  string

	// Detail view state
	detailFrom ApplicationState

	// Forgot-password flow state
	resetEmail string

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int
}

// NewModel creates the application model. The initial screen depends on
// whether a persisted session was restored.
func NewModel(sess *session.Store, mod *moderation.Store, img *imagesearch.Store, pageSize int) Model {
	if pageSize <= 0 {
		pageSize = 10
	}

	m := Model{
		State:      StateLogin,
		Session:    sess,
		Moderation: mod,
		Images:     img,
		PageSize:   pageSize,
		Category:   domain.CategoryPending,
		List:       components.NewStoryList(domain.CategoryPending),
		Confirm:    components.NewConfirmModal(),
		Picker:     components.NewImagePicker(),
		LoginForm: components.NewForm("Sign in",
			components.Field{Label: "Email", Placeholder: "admin@example.com"},
			components.Field{Label: "Password", Secret: true},
		),
		ForgotForm: components.NewForm("Reset password",
			components.Field{Label: "Email", Placeholder: "admin@example.com"},
		),
		OTPForm: components.NewForm("Enter verification code",
			components.Field{Label: "Code", Placeholder: "6-digit code", CharLimit: 6},
		),
		ResetForm: components.NewForm("Choose a new password",
			components.Field{Label: "New password", Secret: true},
			components.Field{Label: "Repeat password", Secret: true},
		),
		ChangeForm: components.NewForm("Change password",
			components.Field{Label: "Current password", Secret: true},
			components.Field{Label: "New password", Secret: true},
		),
		EditForm: components.NewForm("Edit story",
			components.Field{Label: "Title"},
			components.Field{Label: "Tags (comma separated)"},
			components.Field{Label: "Content"},
		),
		SearchForm: components.NewForm("",
			components.Field{Label: "Search stories", Placeholder: "text, empty to clear"},
		),
	}

	if sess.IsAuthenticated() {
		m.State = StateDashboard
	}
	return m
}

// Init starts background work for the initial screen
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(100 * time.Millisecond)}
	if m.State == StateDashboard {
		cmds = append(cmds, FetchCountsCmd(m.Moderation))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.List.SetSize(m.Width, m.Height-1)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.List.SetSpinnerFrame(m.SpinnerFrame)
		return m, TickCmd(100 * time.Millisecond)

	case LoginResultMsg:
		m.Loading = false
		if msg.Err != nil {
			m.LoginForm.SetError(loginErrorText(msg.Err))
			return m, nil
		}
		m.State = StateDashboard
		m.StatusMsg = "Signed in as " + msg.Admin.Email
		return m, tea.Batch(FetchCountsCmd(m.Moderation), ClearStatusCmd(3*time.Second))

	case LogoutCompleteMsg:
		// local session is cleared regardless; a remote failure is
		// informational
		m.State = StateLogin
		m.LoginForm.Reset()
		m.Moderation.Reset()
		if msg.Err != nil {
			m.StatusMsg = "Signed out (server unreachable)"
			return m, ClearStatusCmd(5 * time.Second)
		}
		m.StatusMsg = "Signed out"
		return m, ClearStatusCmd(3 * time.Second)

	case OTPSentMsg:
		m.Loading = false
		if msg.Err != nil {
			m.ForgotForm.SetError(serverErrorText(msg.Err))
			return m, nil
		}
		m.resetEmail = msg.Email
		m.OTPForm.Reset()
		m.State = StateOTP
		return m, nil

	case OTPVerifiedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.OTPForm.SetError("Invalid or expired code")
			return m, nil
		}
		m.ResetForm.Reset()
		m.State = StateResetPassword
		return m, nil

	case PasswordResetMsg:
		m.Loading = false
		if msg.Err != nil {
			m.ResetForm.SetError(serverErrorText(msg.Err))
			return m, nil
		}
		m.State = StateLogin
		m.LoginForm.Reset()
		m.StatusMsg = "Password reset; sign in with the new password"
		return m, ClearStatusCmd(5 * time.Second)

	case PasswordChangedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.ChangeForm.SetError(serverErrorText(msg.Err))
			return m, nil
		}
		m.State = StateDashboard
		m.StatusMsg = "Password changed"
		return m, ClearStatusCmd(3 * time.Second)

	case CountsLoadedMsg:
		m.Loading = false
		return m, nil

	case StoriesLoadedMsg:
		m.Loading = false
		if msg.Category == m.Category {
			m.syncList()
		}
		return m, nil

	case StoryLoadedMsg:
		m.Loading = false
		return m, nil

	case BulkActionDoneMsg:
		m.Loading = false
		return m.afterBulkAction(msg)

	case StoryUpdatedMsg:
		m.Loading = false
		if msg.Err != nil {
			m.StatusMsg = m.Moderation.LastError()
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		if m.State == StateEdit {
			m.State = StateDetail
		}
		m.syncList()
		m.StatusMsg = "Story updated"
		return m, ClearStatusCmd(3 * time.Second)

	case SearchDoneMsg:
		m.Loading = false
		if msg.Err != nil {
			m.StatusMsg = m.Moderation.LastError()
			m.StatusIsErr = true
			return m, ClearStatusCmd(5 * time.Second)
		}
		if msg.Category == m.Category {
			m.searchQuery = msg.Query
			m.syncList()
		}
		return m, nil

	case ImagesLoadedMsg:
		if msg.Err != nil {
			m.Picker.SetError(m.Images.LastError())
			return m, nil
		}
		m.Picker.SetResults(msg.Photos)
		return m, nil

	case ErrMsg:
		m.Loading = false
		m.List.SetLoading(false)
		m.StatusMsg = userFacingError(m.Moderation.LastError(), msg)
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// afterBulkAction applies the result of an approve/reject to the UI
func (m Model) afterBulkAction(msg BulkActionDoneMsg) (tea.Model, tea.Cmd) {
	verb := "Rejected"
	if msg.Approve {
		verb = "Approved"
	}

	if msg.Err != nil || msg.Result == nil || !msg.Result.Success {
		m.StatusMsg = m.Moderation.LastError()
		if m.StatusMsg == "" && msg.Err != nil {
			m.StatusMsg = msg.Err.Error()
		}
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)
	}

	m.syncList()
	if m.State == StateDetail {
		m.State = StateStories
	}

	if msg.Result.PartialFailure() {
		done := msg.Result.Summary.SuccessfullyApproved + msg.Result.Summary.SuccessfullyRejected
		m.StatusMsg = fmt.Sprintf("%s %d of %d; %d failed", verb, done, msg.Result.Summary.TotalRequested, len(msg.Result.Failed))
		m.StatusIsErr = true
	} else {
		m.StatusMsg = verb + " " + plural(msg.Result.Summary.TotalRequested, "story", "stories")
	}
	return m, tea.Batch(FetchCountsCmd(m.Moderation), ClearStatusCmd(4*time.Second))
}

// syncList refreshes the story list component from the moderation store
func (m *Model) syncList() {
	m.List.SetStories(m.Moderation.Stories(m.Category), m.Moderation.Pagination(m.Category))
	m.List.SetSelected(m.Moderation.SelectedIDs())
	m.applyLocalFilter()
}

// applyLocalFilter re-ranks the visible rows against the inline filter text.
// Matching runs through the moderation store so titles, tags, and author
// names all count.
func (m *Model) applyLocalFilter() {
	if !m.List.IsFiltering() {
		return
	}
	query := m.List.FilterQuery()
	if query == "" {
		stories := m.Moderation.Stories(m.Category)
		all := make([]string, 0, len(stories))
		for _, st := range stories {
			all = append(all, st.ID)
		}
		m.List.SetFilterResults(all)
		return
	}
	matches := m.Moderation.FilterLoaded(m.Category, query)
	ids := make([]string, 0, len(matches))
	for _, r := range matches {
		ids = append(ids, r.Story.ID)
	}
	m.List.SetFilterResults(ids)
}

// openCategory switches the stories view to the given category
func (m *Model) openCategory(cat domain.Category) tea.Cmd {
	m.Category = cat
	m.searchQuery = ""
	m.searchActive = false
	m.List = components.NewStoryList(cat)
	m.List.SetSize(m.Width, m.Height-1)
	m.List.SetLoading(true)
	m.State = StateStories
	m.Loading = true
	return FetchStoriesCmd(m.Moderation, cat, 1, m.PageSize, false)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

func loginErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsValidation(err):
		return err.Error()
	}
	return "Invalid email or password"
}

func serverErrorText(err error) string {
	if err == nil {
		return ""
	}
	var se *domain.ServerError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return "Request failed. Please try again."
}

func userFacingError(storeMsg string, err error) string {
	if storeMsg != "" {
		return storeMsg
	}
	return err.Error()
}
