package storyapi

import (
	"encoding/json"

	"storydesk/internal/domain"
)

// envelope is the API's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// storiesPayload is the data shape shared by list and search responses.
type storiesPayload struct {
	Stories    []domain.Story    `json:"stories"`
	Pagination domain.Pagination `json:"pagination"`
}

// bulkRequest is the body for approve/reject actions.
type bulkRequest struct {
	StoryIDs []string `json:"storyIds"`
}

// updateRequest flattens the patch fields next to the routing fields, as the
// update endpoint expects.
type updateRequest struct {
	StoryID     string `json:"storyId"`
	StoriesType string `json:"storiesType"`
	domain.StoryPatch
}
