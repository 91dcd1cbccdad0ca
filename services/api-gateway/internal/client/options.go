package client

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	DefaultCallTimeout  = 5 * time.Second
	DefaultPollInterval = time.Minute
	DefaultTickInterval = time.Second
	HeartRefillInterval = 2 * time.Hour
	DefaultViewTTL      = 30 * time.Minute
)

type settings struct {
	timeout      time.Duration
	pollInterval time.Duration
	tickInterval time.Duration
	viewTTL      time.Duration
	now          func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		timeout:      DefaultCallTimeout,
		pollInterval: DefaultPollInterval,
		tickInterval: DefaultTickInterval,
		viewTTL:      DefaultViewTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// call bounds one remote call by the configured timeout.
func (s settings) call(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

type Option func(*settings)

// WithCallTimeout bounds every remote call.
func WithCallTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

// WithPollInterval sets how often the heart tracker re-syncs with the server.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) { s.pollInterval = d }
}

// WithTickInterval sets the countdown resolution.
func WithTickInterval(d time.Duration) Option {
	return func(s *settings) { s.tickInterval = d }
}

// WithViewTTL sets how long the jar tracker remembers a user nobody asked
// about.
func WithViewTTL(d time.Duration) Option {
	return func(s *settings) { s.viewTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// isRemoteFailure reports whether err means the economy could not be reached
// or failed internally, as opposed to rejecting the request.
func isRemoteFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition, codes.NotFound,
		codes.AlreadyExists, codes.PermissionDenied, codes.Unauthenticated, codes.OutOfRange:
		return false
	}
	return true
}
