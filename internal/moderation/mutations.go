package moderation

import (
	"context"

	"storydesk/internal/domain"
)

const (
	msgApproveFailed = "Failed to approve stories. Please try again."
	msgRejectFailed  = "Failed to reject stories. Please try again."
	msgUpdateFailed  = "Failed to update story. Please try again."
)

// Approve approves the given pending story ids. On a top-level success every
// requested id is pruned from the pending items and the selection. Page
// cache entries are NOT repaired and may retain stale rows; callers that
// need a guaranteed-consistent list must clear the cache or force-refresh.
func (s *Store) Approve(ctx context.Context, ids []string) (*domain.BulkResult, error) {
	return s.bulkAction(ctx, ids, s.client.ApproveStories, msgApproveFailed)
}

// Reject rejects the given pending story ids. Same cache semantics as
// Approve.
func (s *Store) Reject(ctx context.Context, ids []string) (*domain.BulkResult, error) {
	return s.bulkAction(ctx, ids, s.client.RejectStories, msgRejectFailed)
}

// ApproveSelected approves the current selection.
func (s *Store) ApproveSelected(ctx context.Context) (*domain.BulkResult, error) {
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		s.failAction("No stories selected")
		return nil, domain.ErrEmptySelection
	}
	return s.Approve(ctx, ids)
}

// RejectSelected rejects the current selection.
func (s *Store) RejectSelected(ctx context.Context) (*domain.BulkResult, error) {
	ids := s.SelectedIDs()
	if len(ids) == 0 {
		s.failAction("No stories selected")
		return nil, domain.ErrEmptySelection
	}
	return s.Reject(ctx, ids)
}

func (s *Store) bulkAction(
	ctx context.Context,
	ids []string,
	call func(context.Context, []string) (*domain.BulkResult, error),
	failMsg string,
) (*domain.BulkResult, error) {
	s.beginAction()

	result, err := call(ctx, ids)
	if err != nil {
		s.logger.Error("bulk action failed", "error", err, "count", len(ids))
		s.failAction(failMsg)
		return nil, err
	}

	if !result.Success {
		// top-level failure: items and selection stay untouched
		s.logger.Warn("bulk action rejected by server", "message", result.Message)
		s.failAction(serverMessage(result.Message, failMsg))
		return result, nil
	}

	remove := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		remove[id] = struct{}{}
	}

	s.mu.Lock()
	cs := s.cats[domain.CategoryPending]
	kept := make([]domain.Story, 0, len(cs.items))
	for _, st := range cs.items {
		if _, gone := remove[st.ID]; !gone {
			kept = append(kept, st)
		}
	}
	cs.items = kept
	for id := range remove {
		delete(s.selected, id)
	}
	s.loading = false
	s.mu.Unlock()

	if result.PartialFailure() {
		s.logger.Warn("bulk action partially failed",
			"requested", result.Summary.TotalRequested, "failed", result.Summary.Failed)
	}
	return result, nil
}

// Update applies a sparse patch to a story. On success the patch is applied
// uniformly to the matching record in the items of all three categories and
// to every cached page that contains the id (a no-op where the id is
// absent), trading a linear scan of cached pages for avoiding a refetch.
// The detail-view story is patched when the id matches.
func (s *Store) Update(ctx context.Context, id string, cat domain.Category, patch domain.StoryPatch) error {
	s.beginAction()

	if _, err := s.client.UpdateStory(ctx, id, cat, patch); err != nil {
		s.logger.Error("failed to update story", "error", err, "storyID", id, "category", cat)
		s.failAction(msgUpdateFailed)
		return err
	}

	s.mu.Lock()
	for _, c := range domain.Categories() {
		cs := s.cats[c]
		patchStories(cs.items, id, patch)
		for _, page := range cs.pageCache {
			patchStories(page, id, patch)
		}
	}
	if s.current != nil && s.current.ID == id {
		patch.Apply(s.current)
	}
	s.loading = false
	s.mu.Unlock()

	s.logger.Debug("patched story across caches", "storyID", id)
	return nil
}

// UpdateCoverImage sets only the cover image reference of a story.
func (s *Store) UpdateCoverImage(ctx context.Context, id, imageURL string, cat domain.Category) error {
	return s.Update(ctx, id, cat, domain.StoryPatch{CoverPicRef: &imageURL})
}

// patchStories applies the patch to the story with the given id, if present.
func patchStories(stories []domain.Story, id string, patch domain.StoryPatch) {
	for i := range stories {
		if stories[i].ID == id {
			patch.Apply(&stories[i])
		}
	}
}

// serverMessage prefers the server's human-readable message over the
// generic fallback.
func serverMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
