package listctl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-admin-backend/internal/querycache"
)

type fakeSource struct {
	mu    sync.Mutex
	items []string
	calls []Params
	fail  error
}

func (f *fakeSource) bind(p Params) querycache.Request {
	key := fmt.Sprintf("items %v", p.Values())
	return querycache.Request{
		Key:  key,
		Tags: []querycache.Tag{querycache.T("Item")},
		Fetch: func(ctx context.Context) (any, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.calls = append(f.calls, p)
			if f.fail != nil {
				return nil, f.fail
			}
			var matched []string
			for _, it := range f.items {
				if p.Search != "" && !strings.Contains(it, p.Search) {
					continue
				}
				if kind := p.Filters["kind"]; kind != "" && !strings.HasPrefix(it, kind) {
					continue
				}
				matched = append(matched, it)
			}
			return Paginate(matched, p.Page, p.Limit), nil
		},
	}
}

func (f *fakeSource) lastCall() Params {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func newController(t *testing.T, src *fakeSource) *Controller[string] {
	qc := querycache.New(time.Minute, time.Minute)
	c := New[string](qc, src.bind, Options{Filters: map[string]string{"kind": ""}})
	t.Cleanup(c.Close)
	return c
}

func items(n int, prefix string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-%02d", prefix, i)
	}
	return out
}

func TestController_InitialView(t *testing.T) {
	src := &fakeSource{items: items(25, "car")}
	c := newController(t, src)

	v := c.View(context.Background())
	assert.Equal(t, Ready, v.State)
	assert.Len(t, v.Items, 10)
	assert.Equal(t, 3, v.TotalPages)
	assert.Equal(t, 25, v.TotalItems)
	assert.False(t, v.CanPrev)
	assert.True(t, v.CanNext)
	assert.Equal(t, NotEmpty, v.Empty)
	assert.Equal(t, 1, src.lastCall().Page)
	assert.Equal(t, 10, src.lastCall().Limit)
}

func TestController_SearchAndFilterResetPage(t *testing.T) {
	src := &fakeSource{items: items(25, "car")}
	c := newController(t, src)
	ctx := context.Background()
	c.View(ctx)

	require.True(t, c.NextPage(ctx))
	assert.Equal(t, 2, c.State().CurrentPage)

	c.SetSearch(ctx, "car-1")
	assert.Equal(t, 1, c.State().CurrentPage)
	assert.Equal(t, "car-1", src.lastCall().Search)

	assert.False(t, c.NextPage(ctx))
	c.SetSearch(ctx, "")
	c.SetPage(ctx, 3)
	assert.Equal(t, 3, c.State().CurrentPage)

	require.NoError(t, c.SetFilter(ctx, "kind", "car"))
	assert.Equal(t, 1, c.State().CurrentPage)
	assert.Equal(t, "car", src.lastCall().Filters["kind"])
}

func TestController_PaginationBounds(t *testing.T) {
	src := &fakeSource{items: items(15, "van")}
	c := newController(t, src)
	ctx := context.Background()
	c.View(ctx)

	assert.False(t, c.PrevPage(ctx))
	assert.True(t, c.NextPage(ctx))
	assert.False(t, c.NextPage(ctx))

	v := c.View(ctx)
	assert.Equal(t, 2, v.Controls.CurrentPage)
	assert.True(t, v.CanPrev)
	assert.False(t, v.CanNext)
	assert.Len(t, v.Items, 5)

	c.SetPage(ctx, 99)
	assert.Equal(t, 2, c.State().CurrentPage)
	c.SetPage(ctx, -1)
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestController_ItemsPerPage(t *testing.T) {
	src := &fakeSource{items: items(30, "suv")}
	c := newController(t, src)
	ctx := context.Background()
	c.View(ctx)
	c.NextPage(ctx)

	err := c.SetItemsPerPage(ctx, 15)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	assert.Equal(t, 2, c.State().CurrentPage)

	require.NoError(t, c.SetItemsPerPage(ctx, 25))
	v := c.View(ctx)
	assert.Equal(t, 1, v.Controls.CurrentPage)
	assert.Equal(t, 25, v.Controls.ItemsPerPage)
	assert.Equal(t, 2, v.TotalPages)
}

func TestController_ApplyBatchesIntoOneQuery(t *testing.T) {
	src := &fakeSource{items: items(60, "car")}
	c := newController(t, src)
	ctx := context.Background()
	c.View(ctx)
	require.True(t, c.NextPage(ctx))
	before := len(src.calls)

	search := "car"
	require.NoError(t, c.Apply(ctx, Change{Search: &search, Filters: map[string]string{"kind": "car"}, ItemsPerPage: 20}))
	assert.Len(t, src.calls, before+1)
	assert.Equal(t, Params{Page: 1, Limit: 20, Search: "car", Filters: map[string]string{"kind": "car"}}, src.lastCall())

	other := "van"
	err := c.Apply(ctx, Change{Search: &other, ItemsPerPage: 15})
	assert.ErrorIs(t, err, ErrInvalidPageSize)
	err = c.Apply(ctx, Change{Search: &other, Filters: map[string]string{"colour": "red"}})
	assert.ErrorIs(t, err, ErrUnknownFilter)
	assert.Equal(t, "car", c.State().SearchTerm)
	assert.Len(t, src.calls, before+1)

	require.NoError(t, c.Apply(ctx, Change{ItemsPerPage: 50, Page: 9}))
	assert.Equal(t, 2, c.State().CurrentPage)
	assert.Len(t, src.calls, before+3)

	require.NoError(t, c.Apply(ctx, Change{Step: 1}))
	assert.Len(t, src.calls, before+3)
	require.NoError(t, c.Apply(ctx, Change{Step: -1}))
	assert.Equal(t, 1, c.State().CurrentPage)
}

func TestController_UnknownFilter(t *testing.T) {
	src := &fakeSource{items: items(3, "car")}
	c := newController(t, src)
	err := c.SetFilter(context.Background(), "colour", "red")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestController_ClearFilters(t *testing.T) {
	src := &fakeSource{items: items(12, "car")}
	c := newController(t, src)
	ctx := context.Background()

	c.SetSearch(ctx, "car-0")
	require.NoError(t, c.SetFilter(ctx, "kind", "car"))
	c.ClearFilters(ctx)

	s := c.State()
	assert.Equal(t, "", s.SearchTerm)
	assert.Equal(t, "", s.Filters["kind"])
	assert.Equal(t, 1, s.CurrentPage)
	assert.False(t, src.lastCall().Filtered())
}

func TestController_EmptyKinds(t *testing.T) {
	ctx := context.Background()

	t.Run("no records at all", func(t *testing.T) {
		c := newController(t, &fakeSource{})
		v := c.View(ctx)
		assert.Equal(t, Ready, v.State)
		assert.Empty(t, v.Items)
		assert.NotNil(t, v.Items)
		assert.Equal(t, NoRecords, v.Empty)
		assert.Equal(t, "No records found", v.Message)
		assert.Equal(t, 1, v.TotalPages)
		assert.Equal(t, 0, v.TotalItems)
	})

	t.Run("filters exclude everything", func(t *testing.T) {
		c := newController(t, &fakeSource{items: items(4, "car")})
		require.NoError(t, c.SetFilter(ctx, "kind", "truck"))
		v := c.View(ctx)
		assert.Equal(t, NoMatches, v.Empty)
		assert.Equal(t, "No records match your filters", v.Message)
	})

	t.Run("filters on an empty data set", func(t *testing.T) {
		c := newController(t, &fakeSource{})
		c.SetSearch(ctx, "anything")
		v := c.View(ctx)
		assert.Equal(t, NoRecords, v.Empty)
	})
}

func TestController_ErrorState(t *testing.T) {
	src := &fakeSource{fail: errors.New("boom")}
	c := newController(t, src)

	v := c.View(context.Background())
	assert.Equal(t, Failed, v.State)
	assert.Equal(t, "Failed to load records", v.Message)
	assert.Equal(t, "boom", v.Error)
	assert.Equal(t, 1, v.TotalPages)
	assert.Empty(t, v.Items)
}

func TestController_ToggleFiltersDoesNotFetch(t *testing.T) {
	src := &fakeSource{items: items(2, "car")}
	c := newController(t, src)
	c.View(context.Background())
	before := len(src.calls)

	assert.True(t, c.ToggleFilters())
	assert.False(t, c.ToggleFilters())
	assert.Len(t, src.calls, before)
}

func TestController_ClampsAfterShrink(t *testing.T) {
	src := &fakeSource{items: items(11, "car")}
	qc := querycache.New(time.Minute, time.Minute)
	c := New[string](qc, src.bind, Options{Filters: map[string]string{"kind": ""}})
	defer c.Close()
	ctx := context.Background()

	c.View(ctx)
	require.True(t, c.NextPage(ctx))

	src.mu.Lock()
	src.items = src.items[:10]
	src.mu.Unlock()
	qc.Invalidate(ctx, querycache.T("Item"))

	v := c.View(ctx)
	assert.Equal(t, 1, v.Controls.CurrentPage)
	assert.Len(t, v.Items, 10)
	assert.False(t, v.CanNext)
}

func TestParams_Values(t *testing.T) {
	p := Params{Page: 2, Limit: 25, Search: "smith", Filters: map[string]string{"branch": "3", "status": ""}}
	assert.Equal(t, map[string]string{
		"page": "2", "limit": "25", "search": "smith", "branch": "3", "status": "",
	}, p.Values())
	assert.True(t, p.Filtered())
	assert.False(t, Params{Filters: map[string]string{"status": ""}}.Filtered())
}

func TestPaginate(t *testing.T) {
	page := Paginate(items(23, "x"), 3, 10)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, 3, page.TotalPages())
	assert.Equal(t, 23, page.TotalItems())

	empty := Paginate([]string{}, 1, 10)
	assert.NotNil(t, empty.Data)
	assert.Equal(t, 1, empty.TotalPages())

	past := Paginate(items(5, "x"), 4, 10)
	assert.Empty(t, past.Data)
}
