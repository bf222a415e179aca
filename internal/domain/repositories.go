package domain

import "context"

// StoryRepository is the remote moderation API surface the stores depend on.
type StoryRepository interface {
	// ListStories returns one page of stories in a status category.
	ListStories(ctx context.Context, cat Category, page, limit int) ([]Story, Pagination, error)

	// GetStory fetches a single story by id within a status category.
	GetStory(ctx context.Context, cat Category, id string) (*Story, error)

	// ApproveStories approves pending stories by id. A partial failure is a
	// normal result carried inside the BulkResult.
	ApproveStories(ctx context.Context, ids []string) (*BulkResult, error)

	// RejectStories rejects pending stories by id.
	RejectStories(ctx context.Context, ids []string) (*BulkResult, error)

	// UpdateStory applies a sparse patch to a story and returns the updated
	// record.
	UpdateStory(ctx context.Context, id string, cat Category, patch StoryPatch) (*Story, error)

	// SearchStories returns one page of stories matching the search text.
	SearchStories(ctx context.Context, text string, cat Category, page, limit int) ([]Story, Pagination, error)

	// StoriesCounts returns aggregate counts per status category.
	StoriesCounts(ctx context.Context) (*StoriesInfo, error)
}

// AuthRepository covers the admin authentication endpoints.
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (*Admin, string, error)
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
}
