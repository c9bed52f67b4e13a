package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// RemoteError describes a failed call to the remote service.
//
// Status 0 means the request was never answered or the answer could not be read
// (a network failure); any other status is the non-2xx code the server returned.
type RemoteError struct {
	Op      string // Op is the client operation, e.g. "create book"
	Status  int    // Status is the HTTP status code, or 0 for network failures
	Message string // Message is the server's explanation, when it gave one
	Err     error  // Err is the underlying transport or decode error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status == 0 {
		b.WriteString(": network failure")
	} else {
		fmt.Fprintf(&b, ": server returned %d", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": " + e.Message)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the error category sentinel and the underlying cause.
func (e *RemoteError) Unwrap() []error {
	kind := shared.ErrServerRejected
	if e.Status == 0 {
		kind = shared.ErrNetwork
	}
	if e.Err == nil {
		return []error{kind}
	}
	return []error{kind, e.Err}
}

// NotFound reports whether the server answered 404.
func (e *RemoteError) NotFound() bool {
	return e.Status == 404
}

func networkError(op string, err error) *RemoteError {
	return &RemoteError{Op: op, Err: err}
}

// rejectedError builds a [RemoteError] for a non-2xx response, taking the message from a JSON
// "message" or "error" field, or from the trimmed body text.
func rejectedError(op string, status int, body []byte) *RemoteError {
	return &RemoteError{Op: op, Status: status, Message: serverMessage(body)}
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	msg := strings.TrimSpace(string(body))
	if strings.HasPrefix(msg, "{") || strings.HasPrefix(msg, "<") {
		return ""
	}
	const maxLen = 200
	if len(msg) > maxLen {
		msg = msg[:maxLen] + "..."
	}
	return msg
}
