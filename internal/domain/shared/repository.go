package shared

// Filter narrows and orders list queries. A zero Filter lists the first
// default-sized page; repositories interpret OrderBy against their own
// whitelist of sortable columns.
type Filter struct {
	Search   string
	Filters  map[string]interface{}
	OrderBy  string
	OrderDir string
	Page     int
	PageSize int
}

// DefaultFilter returns the listing defaults: newest first, page 1 of 20
func DefaultFilter() Filter {
	return Filter{
		Filters:  map[string]interface{}{},
		OrderBy:  "created_at",
		OrderDir: "desc",
		Page:     1,
		PageSize: 20,
	}
}

// Paginated is one page of a list result together with paging metadata
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated wraps items with paging metadata derived from the total count
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize <= 0 {
		pageSize = 20
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: pages,
	}
}
