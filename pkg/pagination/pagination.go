// Package pagination provides the paginated response envelope shared by list
// endpoints.
package pagination

// DefaultLimit is used when the caller passes a non-positive limit.
const DefaultLimit = 100

// Page is the wire shape of a paginated collection response.
type Page[T any] struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Data       []T `json:"data"`
}

// New builds a Page from a data slice and offset/limit pagination parameters.
// Total is the full collection size, not the slice length.
func New[T any](data []T, total, limit, offset int) Page[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return Page[T]{
		Page:       offset/limit + 1,
		Size:       limit,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}
