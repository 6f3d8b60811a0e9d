package matching

// PageSize is the fixed number of candidates per page
const PageSize = 10

// PageInfo describes one page of a paginated list
type PageInfo struct {
	Number      int  `json:"page_number"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate returns the items on the requested 1-based page. Out-of-range
// pages clamp to the first or last page. An empty list has zero pages and
// reports page 1.
func Paginate[T any](items []T, page, size int) ([]T, PageInfo) {
	if size <= 0 {
		size = PageSize
	}
	total := (len(items) + size - 1) / size
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := min(start+size, len(items))
	return items[start:end], PageInfo{
		Number:      page,
		TotalPages:  total,
		HasNext:     page < total,
		HasPrevious: page > 1,
	}
}
