package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromStatus(t *testing.T) {
	tests := map[int]ErrorKind{
		401: KindAuth,
		403: KindAuth,
		429: KindRateLimit,
		408: KindTimeout,
		504: KindTimeout,
		500: KindUnavailable,
		503: KindUnavailable,
		400: KindInvalidRequest,
		404: KindInvalidRequest,
		413: KindInvalidRequest,
		200: KindUnknown,
	}
	for code, want := range tests {
		assert.Equal(t, want, KindFromStatus(code), "status %d", code)
	}
}

func TestWrapUnclassified(t *testing.T) {
	se := wrapUnclassified("openai", fmt.Errorf("call: %w", context.DeadlineExceeded))
	assert.Equal(t, KindTimeout, se.Kind)
	assert.True(t, se.Retryable())

	se = wrapUnclassified("openai", context.Canceled)
	assert.Equal(t, KindCanceled, se.Kind)
	assert.False(t, se.Retryable())

	se = wrapUnclassified("openai", &url.Error{Op: "Post", URL: "http://x", Err: errors.New("connection refused")})
	assert.Equal(t, KindNetwork, se.Kind)
	assert.True(t, se.Retryable())

	inner := &ServiceError{Provider: "claude", Kind: KindAuth}
	assert.Same(t, inner, wrapUnclassified("openai", fmt.Errorf("wrapped: %w", inner)))
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Provider: "openai", Kind: KindRateLimit, StatusCode: 429, Err: errors.New("slow down")}
	assert.Equal(t, "openai vision call failed (rate_limit, status 429): slow down", err.Error())

	err = &ServiceError{Provider: "gemini", Kind: KindTimeout, Err: context.DeadlineExceeded}
	assert.Equal(t, "gemini vision call failed (timeout): context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClaudeKind(t *testing.T) {
	assert.Equal(t, KindAuth, claudeKind("authentication_error"))
	assert.Equal(t, KindRateLimit, claudeKind("rate_limit_error"))
	assert.Equal(t, KindUnavailable, claudeKind("overloaded_error"))
	assert.Equal(t, KindInvalidRequest, claudeKind("invalid_request_error"))
	assert.Equal(t, KindUnknown, claudeKind("mystery"))
}
