package service

// DefaultPageSize is the number of games shown per page.
const DefaultPageSize = 16

// Paginate returns the page-th slice of pageSize items, counting pages from 1.
// Pages outside the list, and non-positive sizes, yield an empty slice.
func Paginate[T any](pageSize, page int, items []T) []T {
	// Compare page numbers before computing an offset so huge pages cannot overflow.
	if pageSize < 1 || page < 1 || page > PageCount(pageSize, len(items)) {
		return []T{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// PageCount returns how many pages total items fill.
func PageCount(pageSize, total int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	return (total-1)/pageSize + 1
}
