// Package listctl implements the list controller shared by every dashboard
// list: pagination, free-text search and a filter map driving a subscribed
// query.
package listctl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"rental-admin-backend/internal/querycache"
	"rental-admin-backend/internal/restclient"
)

// PageSizes are the allowed items-per-page values.
var PageSizes = []int{10, 20, 25, 50, 100}

var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrUnknownFilter   = errors.New("unknown filter")
)

// Bind turns controller params into a query producing restclient.Page[T].
type Bind func(Params) querycache.Request

// Options configure a controller.
type Options struct {
	// Filters maps every filter key to its empty default.
	Filters        map[string]string
	ItemsPerPage   int
	EmptyMessage   string
	NoMatchMessage string
	ErrorMessage   string
}

// State is the controller state owned by one list view.
type State struct {
	CurrentPage  int               `json:"current_page"`
	ItemsPerPage int               `json:"items_per_page"`
	SearchTerm   string            `json:"search_term"`
	Filters      map[string]string `json:"filters"`
	ShowFilters  bool              `json:"show_filters"`
}

// Controller owns list state and keeps a query subscription in sync with it.
// Any change to search or filters resets the page to 1.
type Controller[T any] struct {
	cache *querycache.Cache
	bind  Bind
	opts  Options
	sub   *querycache.Subscription

	mu      sync.Mutex
	state   State
	fetched bool
}

// New creates a controller on page 1 with default filters.
func New[T any](qc *querycache.Cache, bind Bind, opts Options) *Controller[T] {
	if opts.ItemsPerPage == 0 {
		opts.ItemsPerPage = PageSizes[0]
	}
	if opts.EmptyMessage == "" {
		opts.EmptyMessage = "No records found"
	}
	if opts.NoMatchMessage == "" {
		opts.NoMatchMessage = "No records match your filters"
	}
	if opts.ErrorMessage == "" {
		opts.ErrorMessage = "Failed to load records"
	}

	c := &Controller[T]{
		cache: qc,
		bind:  bind,
		opts:  opts,
		state: State{
			CurrentPage:  1,
			ItemsPerPage: opts.ItemsPerPage,
			Filters:      copyFilters(opts.Filters),
		},
	}
	c.sub = qc.Subscribe(bind(c.paramsLocked()))
	return c
}

func copyFilters(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (c *Controller[T]) paramsLocked() Params {
	return Params{
		Page:    c.state.CurrentPage,
		Limit:   c.state.ItemsPerPage,
		Search:  c.state.SearchTerm,
		Filters: copyFilters(c.state.Filters),
	}
}

// State returns a copy of the current state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Filters = copyFilters(c.state.Filters)
	return s
}

// Params returns the query parameters derived from the current state.
func (c *Controller[T]) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramsLocked()
}

// FilterKeys lists the filter keys the controller accepts.
func (c *Controller[T]) FilterKeys() []string {
	keys := make([]string, 0, len(c.opts.Filters))
	for k := range c.opts.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// update applies fn to the state under the lock and re-issues the query.
func (c *Controller[T]) update(ctx context.Context, fn func(s *State) error) error {
	c.mu.Lock()
	if err := fn(&c.state); err != nil {
		c.mu.Unlock()
		return err
	}
	req := c.bind(c.paramsLocked())
	c.fetched = true
	c.mu.Unlock()

	c.sub.Reissue(ctx, req)
	return nil
}

// SetSearch changes the search term and returns to page 1.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) {
	c.update(ctx, func(s *State) error {
		s.SearchTerm = term
		s.CurrentPage = 1
		return nil
	})
}

// SetFilter changes one filter and returns to page 1.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) error {
	return c.SetFilters(ctx, map[string]string{key: value})
}

// SetFilters changes several filters at once and returns to page 1.
func (c *Controller[T]) SetFilters(ctx context.Context, values map[string]string) error {
	return c.update(ctx, func(s *State) error {
		if err := c.checkFilters(values); err != nil {
			return err
		}
		for k, v := range values {
			s.Filters[k] = v
		}
		s.CurrentPage = 1
		return nil
	})
}

// ClearFilters resets every filter, the search term and the page in one update.
func (c *Controller[T]) ClearFilters(ctx context.Context) {
	c.update(ctx, func(s *State) error {
		s.Filters = copyFilters(c.opts.Filters)
		s.SearchTerm = ""
		s.CurrentPage = 1
		return nil
	})
}

// SetItemsPerPage changes the page size and returns to page 1.
func (c *Controller[T]) SetItemsPerPage(ctx context.Context, n int) error {
	if err := checkPageSize(n); err != nil {
		return err
	}
	return c.update(ctx, func(s *State) error {
		s.ItemsPerPage = n
		s.CurrentPage = 1
		return nil
	})
}

// SetPage moves to page n, clamped to [1, totalPages] of the latest result.
func (c *Controller[T]) SetPage(ctx context.Context, n int) {
	total := c.totalPages()
	if n > total {
		n = total
	}
	if n < 1 {
		n = 1
	}
	c.update(ctx, func(s *State) error {
		s.CurrentPage = n
		return nil
	})
}

// NextPage advances one page unless already on the last one.
func (c *Controller[T]) NextPage(ctx context.Context) bool {
	_, canNext := Bounds(c.State().CurrentPage, c.totalPages())
	if !canNext {
		return false
	}
	c.update(ctx, func(s *State) error {
		s.CurrentPage++
		return nil
	})
	return true
}

// PrevPage goes back one page unless already on the first one.
func (c *Controller[T]) PrevPage(ctx context.Context) bool {
	canPrev, _ := Bounds(c.State().CurrentPage, c.totalPages())
	if !canPrev {
		return false
	}
	c.update(ctx, func(s *State) error {
		s.CurrentPage--
		return nil
	})
	return true
}

func checkPageSize(n int) error {
	for _, size := range PageSizes {
		if size == n {
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
}

func (c *Controller[T]) checkFilters(values map[string]string) error {
	for k := range values {
		if _, ok := c.opts.Filters[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFilter, k)
		}
	}
	return nil
}

// Change is a batch of edits applied by Apply. Zero fields are left alone.
type Change struct {
	ClearFilters bool
	Search       *string
	Filters      map[string]string
	ItemsPerPage int
	// Page moves to an absolute page before Step is added.
	Page int
	Step int
}

func (ch Change) resets() bool {
	return ch.ClearFilters || ch.Search != nil || len(ch.Filters) > 0 || ch.ItemsPerPage != 0
}

// Apply validates the whole change before touching the state, then applies
// the search, filter and page size edits in a single query. A page move in
// the same change is clamped to the result of that query and only refetches
// when the page actually changes.
func (c *Controller[T]) Apply(ctx context.Context, ch Change) error {
	if ch.ItemsPerPage != 0 {
		if err := checkPageSize(ch.ItemsPerPage); err != nil {
			return err
		}
	}
	if err := c.checkFilters(ch.Filters); err != nil {
		return err
	}

	if ch.resets() {
		c.update(ctx, func(s *State) error {
			if ch.ClearFilters {
				s.Filters = copyFilters(c.opts.Filters)
				s.SearchTerm = ""
			}
			if ch.Search != nil {
				s.SearchTerm = *ch.Search
			}
			for k, v := range ch.Filters {
				s.Filters[k] = v
			}
			if ch.ItemsPerPage != 0 {
				s.ItemsPerPage = ch.ItemsPerPage
			}
			s.CurrentPage = 1
			return nil
		})
	}
	if ch.Page == 0 && ch.Step == 0 {
		return nil
	}

	current := c.State().CurrentPage
	target := current
	if ch.Page != 0 {
		target = ch.Page
	}
	target = max(min(target+ch.Step, c.totalPages()), 1)
	if target == current {
		return nil
	}
	return c.update(ctx, func(s *State) error {
		s.CurrentPage = target
		return nil
	})
}

// ToggleFilters shows or hides the filter panel. It does not refetch.
func (c *Controller[T]) ToggleFilters() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowFilters = !c.state.ShowFilters
	return c.state.ShowFilters
}

func (c *Controller[T]) totalPages() int {
	page, ok := querycache.Value[restclient.Page[T]](c.sub.Result())
	if !ok {
		return 1
	}
	return page.TotalPages()
}

// Close releases the query subscription.
func (c *Controller[T]) Close() {
	c.sub.Close()
}
