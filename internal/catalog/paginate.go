package catalog

// DefaultPageSize is the number of entities shown per catalog page.
const DefaultPageSize = 12

// maxVisiblePages caps the number of page buttons surfaced to the user.
const maxVisiblePages = 5

// Window describes which page-number affordances to show: a bounded run of page
// numbers centered on the current page, plus an optional trailing ellipsis and
// shortcut to the final page.
type Window struct {
	Pages    []int // visible page numbers, at most maxVisiblePages, empty when there are no pages
	Ellipsis bool  // true when pages beyond the window exist
	LastPage int   // total page count, the target of the ellipsis shortcut
}

// Page is a derived view of one page of items plus its window metadata.
type Page[T any] struct {
	Items       []T
	CurrentPage int // effective page after clamping
	PageSize    int
	TotalItems  int
	TotalPages  int
	Window      Window
}

// TotalPages returns ceil(totalItems / pageSize), never negative.
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Paginate derives the visible slice of items for requestedPage.
//
// Out-of-range pages are clamped to [1, max(totalPages, 1)] rather than
// rejected. The derivation is pure and idempotent: identical inputs always
// yield identical output.
func Paginate[T any](items []T, pageSize, requestedPage int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	totalItems := len(items)
	totalPages := TotalPages(totalItems, pageSize)

	page := requestedPage
	if page < 1 {
		page = 1
	}
	if max := maxInt(totalPages, 1); page > max {
		page = max
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	slice := make([]T, end-start)
	copy(slice, items[start:end])

	return Page[T]{
		Items:       slice,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		Window:      PageWindow(page, totalPages),
	}
}

// PageWindow derives the run of visible page numbers around currentPage.
//
// The window holds at most maxVisiblePages entries and is re-anchored when it
// would run past the final page. When pages remain beyond the window, Ellipsis
// is set so callers can surface "…" plus a shortcut to LastPage.
func PageWindow(currentPage, totalPages int) Window {
	startPage := currentPage - maxVisiblePages/2
	if startPage < 1 {
		startPage = 1
	}

	endPage := startPage + maxVisiblePages - 1
	if endPage > totalPages {
		endPage = totalPages
		startPage = maxInt(endPage-maxVisiblePages+1, 1)
	}

	pages := []int{}
	for p := startPage; p <= endPage; p++ {
		pages = append(pages, p)
	}

	return Window{
		Pages:    pages,
		Ellipsis: len(pages) > 0 && pages[len(pages)-1] < totalPages,
		LastPage: totalPages,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
