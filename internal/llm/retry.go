package llm

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/agenthands/tagtally/internal/media"
)

// RetryingClient wraps a VisionClient with a per-attempt timeout and bounded
// exponential backoff for transient ServiceErrors.
type RetryingClient struct {
	Client          VisionClient
	MaxRetries      int
	InitialInterval time.Duration
	Timeout         time.Duration
	Logger          *zap.Logger
}

func NewRetryingClient(client VisionClient, maxRetries int, initialInterval, timeout time.Duration, logger *zap.Logger) *RetryingClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingClient{
		Client:          client,
		MaxRetries:      maxRetries,
		InitialInterval: initialInterval,
		Timeout:         timeout,
		Logger:          logger,
	}
}

func (r *RetryingClient) Name() string {
	return providerName(r.Client)
}

// Close releases the wrapped client's resources, if it holds any.
func (r *RetryingClient) Close() error {
	if c, ok := r.Client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *RetryingClient) Extract(ctx context.Context, img *media.Image, instruction string) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.InitialInterval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.MaxRetries)), ctx)

	var out string
	attempt := 0
	op := func() error {
		attempt++
		text, err := r.attempt(ctx, img, instruction)
		if err == nil {
			out = text
			return nil
		}
		se := wrapUnclassified(r.Name(), err)
		if ctx.Err() != nil || !se.Retryable() {
			return backoff.Permanent(se)
		}
		return se
	}
	notify := func(err error, wait time.Duration) {
		r.Logger.Warn("Vision call failed, retrying",
			zap.String("provider", r.Name()),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		var se *ServiceError
		if !errors.As(err, &se) {
			se = wrapUnclassified(r.Name(), err)
		}
		return "", se
	}
	return out, nil
}

func (r *RetryingClient) attempt(ctx context.Context, img *media.Image, instruction string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return r.Client.Extract(ctx, img, instruction)
}
