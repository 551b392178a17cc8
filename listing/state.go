package listing

import (
	"github.com/jrsteele09/restaurant-console/catalog"
)

// State is a point in time copy of a controller, safe to render
type State[T catalog.Entity] struct {
	Items         []T
	Page          int
	PageSize      int
	TotalCount    int
	IsLoading     bool
	Loaded        bool // At least one load succeeded
	PendingDelete *T
	IsConfirmOpen bool
	Deleting      bool
	Err           error // Last fetch or delete failure, cleared by the next successful load
}

// LastPage is ceil(TotalCount / PageSize), and 1 for an empty collection
func (s State[T]) LastPage() int {
	if s.PageSize <= 0 || s.TotalCount <= 0 {
		return 1
	}
	return (s.TotalCount + s.PageSize - 1) / s.PageSize
}

func (s State[T]) HasNext() bool {
	return s.Page < s.LastPage()
}

func (s State[T]) HasPrev() bool {
	return s.Page > 1
}

// IsEmpty reports an empty collection, rendered as an explicit empty state
func (s State[T]) IsEmpty() bool {
	return s.Loaded && s.TotalCount == 0
}
