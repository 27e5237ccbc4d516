package listctl

import "rental-admin-backend/internal/restclient"

// Paginate slices an already-filtered collection into one page, producing
// the same shape a paginated backend response would.
func Paginate[T any](items []T, page, limit int) restclient.Page[T] {
	if limit < 1 {
		limit = PageSizes[0]
	}
	total := len(items)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}

	out := []T{}
	if start := (page - 1) * limit; start < total {
		end := start + limit
		if end > total {
			end = total
		}
		out = append(out, items[start:end]...)
	}
	return restclient.Page[T]{
		Data: out,
		Pagination: &restclient.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
