package domain

// Category partitions stories by workflow status. The values double as the
// API's storiesType parameter.
type Category string

const (
	CategoryPending  Category = "pending"
	CategoryApproved Category = "approved"
	CategoryRejected Category = "rejected"
)

// Categories lists all status categories in display order.
func Categories() []Category {
	return []Category{CategoryPending, CategoryApproved, CategoryRejected}
}

// Valid reports whether c is a known status category.
func (c Category) Valid() bool {
	switch c {
	case CategoryPending, CategoryApproved, CategoryRejected:
		return true
	}
	return false
}

// Title returns the display name for the category.
func (c Category) Title() string {
	switch c {
	case CategoryPending:
		return "Pending"
	case CategoryApproved:
		return "Approved"
	case CategoryRejected:
		return "Rejected"
	}
	return string(c)
}
