package listctl

import "strconv"

// Params is the query derived from controller state.
type Params struct {
	Page    int
	Limit   int
	Search  string
	Filters map[string]string
}

// Values is the union of page, limit, search and the filter map. Empty
// entries are kept; the transport drops them.
func (p Params) Values() map[string]string {
	out := make(map[string]string, len(p.Filters)+3)
	for k, v := range p.Filters {
		out[k] = v
	}
	out["page"] = strconv.Itoa(p.Page)
	out["limit"] = strconv.Itoa(p.Limit)
	out["search"] = p.Search
	return out
}

// Filtered reports whether search or any filter narrows the result set.
func (p Params) Filtered() bool {
	if p.Search != "" {
		return true
	}
	for _, v := range p.Filters {
		if v != "" {
			return true
		}
	}
	return false
}

// Bounds reports which pagination controls are enabled.
func Bounds(currentPage, totalPages int) (canPrev, canNext bool) {
	return currentPage > 1, currentPage < totalPages
}
