package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindAuth           ErrorKind = "auth"
	KindRateLimit      ErrorKind = "rate_limit"
	KindInvalidRequest ErrorKind = "invalid_request"
	KindTimeout        ErrorKind = "timeout"
	KindUnavailable    ErrorKind = "unavailable"
	KindEmptyResponse  ErrorKind = "empty_response"
	KindCanceled       ErrorKind = "canceled"
	KindUnknown        ErrorKind = "unknown"
)

// ServiceError is a failed call to the external vision service.
type ServiceError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s vision call failed (%s, status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s vision call failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt may succeed. Authentication,
// validation and quota failures are never retried.
func (e *ServiceError) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindUnavailable, KindNetwork:
		return true
	}
	return false
}

// KindFromStatus maps an HTTP status code to an ErrorKind.
func KindFromStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return KindAuth
	case code == http.StatusTooManyRequests:
		return KindRateLimit
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return KindTimeout
	case code >= 500:
		return KindUnavailable
	case code >= 400:
		return KindInvalidRequest
	}
	return KindUnknown
}

// transportKind classifies errors that happen below the provider API:
// deadlines, cancellation and network failures.
func transportKind(err error) (ErrorKind, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout, true
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout, true
		}
		return KindNetwork, true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindNetwork, true
	}
	return "", false
}

func newServiceError(provider string, kind ErrorKind, status int, err error) *ServiceError {
	return &ServiceError{Provider: provider, Kind: kind, StatusCode: status, Err: err}
}

// wrapUnclassified turns any error into a ServiceError, keeping an existing
// classification if err already carries one.
func wrapUnclassified(provider string, err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	if kind, ok := transportKind(err); ok {
		return newServiceError(provider, kind, 0, err)
	}
	return newServiceError(provider, KindUnknown, 0, err)
}
