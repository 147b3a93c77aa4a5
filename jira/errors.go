package jira

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies remote failures so callers can react without parsing
// messages: auth errors prompt reconfiguration, rate limits are retryable,
// not-found is usually a normal lookup result.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindAuth
	KindRateLimited
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindRateLimited:
		return "rate_limited"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// RemoteError is any non-2xx response or transport failure from the tracker.
type RemoteError struct {
	Kind       ErrorKind
	StatusCode int
	Op         string
	RequestID  string
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("jira %s failed (%s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(", status %d", e.StatusCode)
	}
	if e.RequestID != "" {
		msg += fmt.Sprintf(", request %s", e.RequestID)
	}
	msg += ")"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func classifyStatus(statusCode int) ErrorKind {
	switch {
	case statusCode == http.StatusNotFound:
		return KindNotFound
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return KindAuth
	case statusCode == http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindUnknown
	}
}

func errorKind(err error) (ErrorKind, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Kind, true
	}
	return KindUnknown, false
}

func IsNotFound(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindNotFound
}

func IsAuth(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindAuth
}

func IsRateLimited(err error) bool {
	kind, ok := errorKind(err)
	return ok && kind == KindRateLimited
}
