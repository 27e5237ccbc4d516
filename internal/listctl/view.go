package listctl

import (
	"context"

	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// RenderState is the display state of a list.
type RenderState string

const (
	Loading RenderState = "loading"
	Failed  RenderState = "error"
	Ready   RenderState = "success"
)

// EmptyKind tells an empty data set apart from an over-filtered one.
type EmptyKind string

const (
	NotEmpty  EmptyKind = ""
	NoRecords EmptyKind = "no_records"
	NoMatches EmptyKind = "no_matches"
)

// View is a render-ready snapshot of a list.
type View[T any] struct {
	State      RenderState `json:"state"`
	Items      []T         `json:"items"`
	TotalPages int         `json:"total_pages"`
	TotalItems int         `json:"total_items"`
	CanPrev    bool        `json:"can_prev"`
	CanNext    bool        `json:"can_next"`
	Empty      EmptyKind   `json:"empty,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
	Controls   State       `json:"controls"`
	FilterKeys []string    `json:"filter_keys"`
	PageSizes  []int       `json:"page_sizes"`
}

// View fetches the list if it has never been fetched and renders the latest
// result. A page past the last one is clamped and refetched.
func (c *Controller[T]) View(ctx context.Context) View[T] {
	c.mu.Lock()
	first := !c.fetched
	c.fetched = true
	c.mu.Unlock()

	res := c.sub.Result()
	if first || res.Status == querycache.StatusIdle {
		res = c.sub.Refresh(ctx)
	}

	page, ok := querycache.Value[restclient.Page[T]](res)
	if ok && res.Status == querycache.StatusSuccess {
		state := c.State()
		if total := page.TotalPages(); state.CurrentPage > total {
			c.SetPage(ctx, total)
			res = c.sub.Result()
			page, ok = querycache.Value[restclient.Page[T]](res)
		}
	}
	return c.render(ctx, res, page, ok)
}

func (c *Controller[T]) render(ctx context.Context, res querycache.Result, page restclient.Page[T], ok bool) View[T] {
	state := c.State()
	v := View[T]{
		Items:      []T{},
		TotalPages: 1,
		Controls:   state,
		FilterKeys: c.FilterKeys(),
		PageSizes:  PageSizes,
	}
	if ok {
		if page.Data != nil {
			v.Items = page.Data
		}
		v.TotalPages = page.TotalPages()
		v.TotalItems = page.TotalItems()
	}
	v.CanPrev, v.CanNext = Bounds(state.CurrentPage, v.TotalPages)

	switch res.Status {
	case querycache.StatusError:
		v.State = Failed
		v.Message = restclient.MessageOr(res.Err, c.opts.ErrorMessage)
		v.Error = res.Err.Error()
		return v
	case querycache.StatusLoading, querycache.StatusIdle:
		v.State = Loading
		return v
	}

	v.State = Ready
	if len(v.Items) == 0 {
		v.Empty = c.emptyKind(ctx)
		if v.Empty == NoMatches {
			v.Message = c.opts.NoMatchMessage
		} else {
			v.Message = c.opts.EmptyMessage
		}
	}
	return v
}

// emptyKind probes the unfiltered first page to tell whether any record
// exists at all.
func (c *Controller[T]) emptyKind(ctx context.Context) EmptyKind {
	params := c.Params()
	if !params.Filtered() {
		return NoRecords
	}
	probe := Params{Page: 1, Limit: 1, Filters: copyFilters(c.opts.Filters)}
	page, err := querycache.Get[restclient.Page[T]](ctx, c.cache, c.bind(probe))
	if err != nil {
		return NoRecords
	}
	if page.TotalItems() > 0 || len(page.Data) > 0 {
		return NoMatches
	}
	return NoRecords
}
