package domain

// ApprovedStory records one successfully approved id in a bulk action.
type ApprovedStory struct {
	StoryID     string `json:"storyId"`
	Title       string `json:"title"`
	PublishedID string `json:"publishedId"`
}

// RejectedStory records one successfully rejected id in a bulk action.
type RejectedStory struct {
	StoryID string `json:"storyId"`
	Reason  string `json:"reason"`
}

// FailedStory records one id the server could not process.
type FailedStory struct {
	StoryID string `json:"storyId"`
	Reason  string `json:"reason"`
}

// BulkSummary totals a bulk approve/reject outcome.
type BulkSummary struct {
	TotalRequested       int `json:"totalRequested"`
	SuccessfullyApproved int `json:"successfullyApproved,omitempty"`
	SuccessfullyRejected int `json:"successfullyRejected,omitempty"`
	Failed               int `json:"failed"`
}

// BulkResult is the per-id breakdown of a bulk approve/reject. A mixed
// outcome (some ids succeeded, some failed) is a normal result; callers
// branch on Success, not on an error.
type BulkResult struct {
	Success  bool
	Message  string
	Approved []ApprovedStory `json:"approved,omitempty"`
	Rejected []RejectedStory `json:"rejected,omitempty"`
	Failed   []FailedStory   `json:"failed"`
	Summary  BulkSummary     `json:"summary"`
}

// PartialFailure reports whether some ids failed while the action as a whole
// succeeded.
func (r BulkResult) PartialFailure() bool {
	return r.Success && len(r.Failed) > 0
}
