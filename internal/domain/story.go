package domain

// Story is a moderated content submission. The record is owned by the remote
// API; clients hold transient, possibly-stale copies. Field names mirror the
// wire format.
type Story struct {
	ID             string   `json:"_id"`
	StoryTitle     string   `json:"storyTitle"`
	StoryContent   string   `json:"storyContent"`
	TagList        []string `json:"tagList"`
	CoverPicRef    string   `json:"coverPicRef,omitempty"`
	ProfilePicRef  string   `json:"profilePicRef,omitempty"`
	UserName       string   `json:"userName"`
	UserEmail      string   `json:"userEmail"`
	UserDetails    string   `json:"userDetails,omitempty"`
	Status         int      `json:"status"`         // encoding owned by the API
	SubmissionDate int64    `json:"submissionDate"` // epoch milliseconds
	ReadCount      int      `json:"readCount"`
	UpvoteCount    int      `json:"upvoteCount"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// StoryPatch is a sparse field set for story updates. Only non-nil fields are
// sent to the server.
type StoryPatch struct {
	StoryTitle   *string   `json:"storyTitle,omitempty"`
	StoryContent *string   `json:"storyContent,omitempty"`
	TagList      *[]string `json:"tagList,omitempty"`
	CoverPicRef  *string   `json:"coverPicRef,omitempty"`
	UserName     *string   `json:"userName,omitempty"`
	UserEmail    *string   `json:"userEmail,omitempty"`
	UserDetails  *string   `json:"userDetails,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p StoryPatch) IsEmpty() bool {
	return p.StoryTitle == nil &&
		p.StoryContent == nil &&
		p.TagList == nil &&
		p.CoverPicRef == nil &&
		p.UserName == nil &&
		p.UserEmail == nil &&
		p.UserDetails == nil
}

// Apply overlays the patch onto a story in place.
func (p StoryPatch) Apply(s *Story) {
	if p.StoryTitle != nil {
		s.StoryTitle = *p.StoryTitle
	}
	if p.StoryContent != nil {
		s.StoryContent = *p.StoryContent
	}
	if p.TagList != nil {
		s.TagList = *p.TagList
	}
	if p.CoverPicRef != nil {
		s.CoverPicRef = *p.CoverPicRef
	}
	if p.UserName != nil {
		s.UserName = *p.UserName
	}
	if p.UserEmail != nil {
		s.UserEmail = *p.UserEmail
	}
	if p.UserDetails != nil {
		s.UserDetails = *p.UserDetails
	}
}

// StoriesInfo holds aggregate story counts per status category.
type StoriesInfo struct {
	PendingStories   int `json:"pendingStories"`
	PublishedStories int `json:"publishedStories"`
	RejectedStories  int `json:"rejectedStories"`
}

// Admin is the authenticated console identity.
type Admin struct {
	ID          string `json:"_id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}
