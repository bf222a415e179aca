package domain

// Pagination describes one page of a server-side listing.
// Invariant: HasNextPage == CurrentPage < TotalPages and
// HasPrevPage == CurrentPage > 1.
type Pagination struct {
	CurrentPage    int  `json:"currentPage"`
	TotalPages     int  `json:"totalPages"`
	TotalStories   int  `json:"totalStories"`
	StoriesPerPage int  `json:"storiesPerPage"`
	HasNextPage    bool `json:"hasNextPage"`
	HasPrevPage    bool `json:"hasPrevPage"`
}

// NewPagination builds a descriptor with the derived booleans computed.
func NewPagination(page, totalPages, totalStories, perPage int) Pagination {
	p := Pagination{
		CurrentPage:    page,
		TotalPages:     totalPages,
		TotalStories:   totalStories,
		StoriesPerPage: perPage,
	}
	p.Normalize()
	return p
}

// Normalize recomputes HasNextPage/HasPrevPage from the counters.
func (p *Pagination) Normalize() {
	p.HasNextPage = p.CurrentPage < p.TotalPages
	p.HasPrevPage = p.CurrentPage > 1
}

// Synthesize derives a descriptor for a cached page, reusing the previously
// known totals. If the server-side list changed since the original fetch the
// totals are stale until the next real fetch; that is accepted.
func (p Pagination) Synthesize(page int) Pagination {
	out := p
	out.CurrentPage = page
	out.Normalize()
	return out
}

// Consistent reports whether the derived booleans match the counters.
func (p Pagination) Consistent() bool {
	return p.HasNextPage == (p.CurrentPage < p.TotalPages) &&
		p.HasPrevPage == (p.CurrentPage > 1)
}
