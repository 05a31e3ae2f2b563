package pagination

// DefaultPageSize is used when a caller asks for a page size of zero or less.
const DefaultPageSize = 10

// Page is one slice of an ordered list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested 1-based page. Pages past the end
// come back empty with the totals still filled in.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
	// Compare before multiplying so huge page numbers cannot overflow.
	if page > totalPages {
		return out
	}
	start := (page - 1) * pageSize
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}
	out.Items = append(out.Items, items[start:end]...)
	return out
}
