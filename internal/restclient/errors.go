package restclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorData is the decoded body of a failed response.
type ErrorData struct {
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"raw,omitempty"`
}

// Error is the discriminated failure of a backend call. Status is the HTTP
// status code, or 0 when the request never produced a response.
type Error struct {
	Status int
	Data   ErrorData
	cause  error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %v", e.cause)
	}
	if e.Data.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Status, e.Data.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == 404
}

// MessageOr returns the backend-provided message carried by err, or fallback.
func MessageOr(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Data.Message != "" {
		return e.Data.Message
	}
	return fallback
}

func newResponseError(status int, body []byte) *Error {
	e := &Error{Status: status}
	if len(body) > 0 && json.Valid(body) {
		e.Data.Raw = json.RawMessage(body)
		var msg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &msg); err == nil {
			e.Data.Message = msg.Message
			if e.Data.Message == "" {
				e.Data.Message = msg.Error
			}
		}
	} else if len(body) > 0 {
		e.Data.Message = string(body)
	}
	return e
}
