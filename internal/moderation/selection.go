package moderation

import "storydesk/internal/domain"

// Selection operations are pure set manipulation over the currently loaded
// pending items. Invariant: every selected id is present in those items.

// Select adds a story id to the selection. Ids not present in the loaded
// pending items are ignored.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inPendingLocked(id) {
		s.selected[id] = struct{}{}
	}
}

// Deselect removes a story id from the selection.
func (s *Store) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

// ToggleSelect flips a story id's selection state.
func (s *Store) ToggleSelect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	if s.inPendingLocked(id) {
		s.selected[id] = struct{}{}
	}
}

// SelectAll selects exactly the ids currently loaded in the pending items —
// the current page, not the full remote result set.
func (s *Store) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
	for _, st := range s.cats[domain.CategoryPending].items {
		s.selected[st.ID] = struct{}{}
	}
}

// DeselectAll clears the selection.
func (s *Store) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]struct{})
}

// IsSelected reports whether a story id is selected.
func (s *Store) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in the order they appear in the
// loaded pending items.
func (s *Store) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.selected))
	for _, st := range s.cats[domain.CategoryPending].items {
		if _, ok := s.selected[st.ID]; ok {
			ids = append(ids, st.ID)
		}
	}
	return ids
}

// SelectedCount returns the size of the selection.
func (s *Store) SelectedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selected)
}

func (s *Store) inPendingLocked(id string) bool {
	for _, st := range s.cats[domain.CategoryPending].items {
		if st.ID == id {
			return true
		}
	}
	return false
}
