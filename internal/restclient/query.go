package restclient

import (
	"net/url"
	"sort"
	"strconv"
)

// Query is an ordered set of query string parameters. Empty values are
// dropped when encoding so the backend's "no filter" default applies.
type Query map[string]string

// Set stores a string value.
func (q Query) Set(key, value string) Query {
	q[key] = value
	return q
}

// SetInt stores a positive integer; zero or negative values are omitted.
func (q Query) SetInt(key string, value int) Query {
	if value > 0 {
		q[key] = strconv.Itoa(value)
	}
	return q
}

// Merge copies every entry of other into q.
func (q Query) Merge(other map[string]string) Query {
	for k, v := range other {
		q[k] = v
	}
	return q
}

// Encode renders the non-empty parameters sorted by key.
func (q Query) Encode() string {
	keys := make([]string, 0, len(q))
	for k, v := range q {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := url.Values{}
	for _, k := range keys {
		values.Set(k, q[k])
	}
	return values.Encode()
}

// WithPath appends the encoded query to path.
func (q Query) WithPath(path string) string {
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
