package gourdiancodec

import (
	"time"

	"go.uber.org/zap"
)

// Option customizes an HMACCodec.
type Option func(*codecOptions)

type codecOptions struct {
	logger *zap.Logger
	now    func() time.Time
}

func defaultCodecOptions() codecOptions {
	return codecOptions{
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *codecOptions) {
		if logger == nil {
			logger = zap.NewNop()
		}
		o.logger = logger
	}
}

// WithClock replaces time.Now as the source of the current time for both
// exp computation and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *codecOptions) {
		if now != nil {
			o.now = now
		}
	}
}
