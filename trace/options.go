package trace

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/loopkit/tracefile/format"
	"github.com/loopkit/tracefile/internal/options"
)

// Option represents a functional option for configuring an Accumulator.
// This is a type alias for the generic Option interface specialized for
// *Accumulator.
type Option = options.Option[*Accumulator]

// WithMaxSeries sets the cap on distinct series names. Once the cap is
// reached, appends naming unseen series are dropped after a one-time
// diagnostic; existing series keep accepting values.
//
// A cap of 0 (the default) means unlimited.
func WithMaxSeries(n int) Option {
	return options.New(func(a *Accumulator) error {
		if n < 0 {
			return fmt.Errorf("max series must not be negative: %d", n)
		}
		a.maxSeries = n

		return nil
	})
}

// WithCapacityHint pre-sizes the internal structures for the expected number
// of distinct series. The hint affects only allocation, never behavior.
func WithCapacityHint(n int) Option {
	return options.NoError(func(a *Accumulator) {
		if n > 0 {
			a.capHint = n
		}
	})
}

// WithTimestampSuffix controls whether saved file names carry a
// "_YYYY_MM_DD-HHMM" suffix. The stamp is captured once per accumulator, at
// the first save, and reused for every subsequent save from that instance.
func WithTimestampSuffix(enabled bool) Option {
	return options.NoError(func(a *Accumulator) {
		a.stampSuffix = enabled
	})
}

// WithLogger attaches a diagnostics sink. The accumulator logs sparingly: a
// one-time warning when the series cap is first hit and a debug entry per
// save. Without a logger all diagnostics are discarded.
func WithLogger(logger logrus.FieldLogger) Option {
	return options.NoError(func(a *Accumulator) {
		a.logger = logger
	})
}

// WithMismatchFunc registers a callback invoked whenever an append targets
// an existing series with a value of the wrong dimension. The dropped
// value's dimension is passed as got. The append itself stays a silent
// no-op; the callback only observes it.
func WithMismatchFunc(fn func(name string, got format.Dimension)) Option {
	return options.NoError(func(a *Accumulator) {
		a.onMismatch = fn
	})
}
