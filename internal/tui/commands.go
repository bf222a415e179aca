package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"storydesk/internal/domain"
	"storydesk/internal/imagesearch"
	"storydesk/internal/moderation"
	"storydesk/internal/session"
)

// Command factories for async operations

const requestTimeout = 30 * time.Second

// LoginCmd authenticates against the remote API
func LoginCmd(sess *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		admin, err := sess.SignIn(ctx, email, password)
		return LoginResultMsg{Admin: admin, Err: err}
	}
}

// LogoutCmd ends the session. The local session is cleared even when the
// remote call fails.
func LogoutCmd(sess *session.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return LogoutCompleteMsg{Err: sess.Logout(ctx)}
	}
}

// ForgotPasswordCmd requests a reset code for the given email
func ForgotPasswordCmd(sess *session.Store, email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OTPSentMsg{Email: email, Err: sess.ForgotPassword(ctx, email)}
	}
}

// VerifyOTPCmd checks the emailed reset code
func VerifyOTPCmd(sess *session.Store, email, otp string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return OTPVerifiedMsg{Err: sess.VerifyOTP(ctx, email, otp)}
	}
}

// ResetPasswordCmd sets a new password after OTP verification
func ResetPasswordCmd(sess *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return PasswordResetMsg{Err: sess.ResetPassword(ctx, email, password)}
	}
}

// ChangePasswordCmd changes the password of the signed-in admin
func ChangePasswordCmd(sess *session.Store, oldPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return PasswordChangedMsg{Err: sess.ChangePassword(ctx, oldPassword, newPassword)}
	}
}

// FetchStoriesCmd loads one page of a status category
func FetchStoriesCmd(store *moderation.Store, cat domain.Category, page, limit int, force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := store.FetchStories(ctx, cat, page, limit, force); err != nil {
			return ErrMsg{Err: err, Context: "loading stories"}
		}
		return StoriesLoadedMsg{Category: cat}
	}
}

// FetchStoryCmd loads one story's detail
func FetchStoryCmd(store *moderation.Store, cat domain.Category, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := store.FetchStory(ctx, cat, id); err != nil {
			return ErrMsg{Err: err, Context: "loading story"}
		}
		return StoryLoadedMsg{StoryID: id}
	}
}

// FetchCountsCmd loads the dashboard counts
func FetchCountsCmd(store *moderation.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := store.FetchCounts(ctx); err != nil {
			return ErrMsg{Err: err, Context: "loading counts"}
		}
		return CountsLoadedMsg{}
	}
}

// ApproveCmd publishes the given pending stories
func ApproveCmd(store *moderation.Store, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := store.Approve(ctx, ids)
		return BulkActionDoneMsg{Approve: true, Result: result, Err: err}
	}
}

// RejectCmd rejects the given pending stories
func RejectCmd(store *moderation.Store, ids []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := store.Reject(ctx, ids)
		return BulkActionDoneMsg{Approve: false, Result: result, Err: err}
	}
}

// ApproveSelectedCmd publishes the current selection
func ApproveSelectedCmd(store *moderation.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := store.ApproveSelected(ctx)
		return BulkActionDoneMsg{Approve: true, Result: result, Err: err}
	}
}

// RejectSelectedCmd rejects the current selection
func RejectSelectedCmd(store *moderation.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		result, err := store.RejectSelected(ctx)
		return BulkActionDoneMsg{Approve: false, Result: result, Err: err}
	}
}

// UpdateStoryCmd saves edited story fields
func UpdateStoryCmd(store *moderation.Store, id string, cat domain.Category, patch domain.StoryPatch) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return StoryUpdatedMsg{StoryID: id, Err: store.Update(ctx, id, cat, patch)}
	}
}

// UpdateCoverImageCmd sets a new cover image on a story
func UpdateCoverImageCmd(store *moderation.Store, id, imageURL string, cat domain.Category) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return StoryUpdatedMsg{StoryID: id, Err: store.UpdateCoverImage(ctx, id, imageURL, cat)}
	}
}

// SearchStoriesCmd runs a server-side story search
func SearchStoriesCmd(store *moderation.Store, text string, cat domain.Category, page, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := store.Search(ctx, text, cat, page, limit)
		return SearchDoneMsg{Category: cat, Query: text, Err: err}
	}
}

// SearchImagesCmd queries the image provider for cover candidates
func SearchImagesCmd(store *imagesearch.Store, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := store.SearchImages(ctx, query)
		return ImagesLoadedMsg{Photos: store.Images(), Err: err}
	}
}

// TickCmd sends a tick after the given duration
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
