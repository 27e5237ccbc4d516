package querycache

import (
	"context"
	"fmt"
)

// Get fetches req through c and asserts the value type.
func Get[T any](ctx context.Context, c *Cache, req Request) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, req)
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s: cached value is %T", req.Key, v)
	}
	return out, nil
}

// Value extracts the typed data of a result.
func Value[T any](r Result) (T, bool) {
	out, ok := r.Data.(T)
	return out, ok
}
