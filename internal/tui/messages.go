package tui

import (
	"storydesk/internal/domain"
	"storydesk/internal/unsplash"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// LoginResultMsg signals the outcome of a login attempt
type LoginResultMsg struct {
	Admin *domain.Admin
	Err   error
}

// LogoutCompleteMsg signals that logout finished. Err is the remote failure,
// if any; the local session is gone either way.
type LogoutCompleteMsg struct {
	Err error
}

// OTPSentMsg signals that a password reset code was emailed
type OTPSentMsg struct {
	Email string
	Err   error
}

// OTPVerifiedMsg signals the outcome of code verification
type OTPVerifiedMsg struct {
	Err error
}

// PasswordResetMsg signals the outcome of a password reset
type PasswordResetMsg struct {
	Err error
}

// PasswordChangedMsg signals the outcome of a password change
type PasswordChangedMsg struct {
	Err error
}

// StoriesLoadedMsg signals that a page of stories is in the store
type StoriesLoadedMsg struct {
	Category domain.Category
}

// StoryLoadedMsg signals that story detail is in the store
type StoryLoadedMsg struct {
	StoryID string
}

// CountsLoadedMsg signals that dashboard counts are in the store
type CountsLoadedMsg struct{}

// BulkActionDoneMsg signals the outcome of an approve/reject call
type BulkActionDoneMsg struct {
	Approve bool
	Result  *domain.BulkResult
	Err     error
}

// StoryUpdatedMsg signals that a story edit was saved
type StoryUpdatedMsg struct {
	StoryID string
	Err     error
}

// SearchDoneMsg signals that search results are in the store
type SearchDoneMsg struct {
	Category domain.Category
	Query    string
	Err      error
}

// ImagesLoadedMsg signals that cover image search finished
type ImagesLoadedMsg struct {
	Photos []unsplash.Photo
	Err    error
}

// TickMsg is a general tick message for animations
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
