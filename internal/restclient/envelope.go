package restclient

import (
	"bytes"
	"encoding/json"
)

// Pagination is the paging metadata a list response may carry.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the canonical shape every backend response is normalized to.
// Data is a JSON array or object; it is nil when the payload was rejected.
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

type rawEnvelope struct {
	Success    *bool           `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination json.RawMessage `json:"pagination"`
}

// Normalize turns any of the backend's response shapes into an Envelope:
// a bare array or object, {success, data}, or {success, data, pagination}.
// Malformed bodies and success=false produce an envelope without data;
// Normalize never fails.
func Normalize(body []byte) Envelope {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return Envelope{}
	}

	switch body[0] {
	case '[':
		return Envelope{Success: true, Data: json.RawMessage(body)}
	case '{':
	default:
		// Scalars are not a payload any view can consume.
		return Envelope{}
	}

	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil || raw.Success == nil {
		// A bare object.
		return Envelope{Success: true, Data: json.RawMessage(body)}
	}

	if !*raw.Success {
		return Envelope{Message: raw.Message}
	}

	env := Envelope{Success: true, Message: raw.Message}
	if data := bytes.TrimSpace(raw.Data); len(data) > 0 && (data[0] == '[' || data[0] == '{') {
		env.Data = data
	}
	if len(raw.Pagination) > 0 {
		var p Pagination
		if err := json.Unmarshal(raw.Pagination, &p); err == nil {
			env.Pagination = &p
		}
	}
	return env
}

// Page is a normalized list result.
type Page[T any] struct {
	Data       []T         `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// TotalPages defaults to 1 when the backend sent no pagination.
func (p Page[T]) TotalPages() int {
	if p.Pagination == nil || p.Pagination.TotalPages < 1 {
		return 1
	}
	return p.Pagination.TotalPages
}

// TotalItems defaults to 0 when the backend sent no pagination.
func (p Page[T]) TotalItems() int {
	if p.Pagination == nil {
		return 0
	}
	return p.Pagination.Total
}

// DecodeList decodes the envelope data as a list. It never returns nil; a
// single object is wrapped, anything undecodable becomes an empty list.
func DecodeList[T any](env Envelope) Page[T] {
	page := Page[T]{Data: []T{}, Pagination: env.Pagination}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 {
		return page
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err == nil && items != nil {
			page.Data = items
		}
		return page
	}

	var item T
	if err := json.Unmarshal(data, &item); err == nil {
		page.Data = []T{item}
	}
	return page
}

// DecodeOne decodes the envelope data as a single value, returning the zero
// value for missing or malformed data.
func DecodeOne[T any](env Envelope) T {
	var item T
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || data[0] != '{' {
		return item
	}
	if err := json.Unmarshal(data, &item); err != nil {
		var zero T
		return zero
	}
	return item
}
