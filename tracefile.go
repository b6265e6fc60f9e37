// Package tracefile provides a type-aware, in-memory accumulator for named
// time-series data with deferred, batched persistence in a self-describing
// flat-text format, and a matching loader.
//
// It targets producers such as periodic control loops that record many named
// scalar or planar-vector measurements per cycle without paying I/O latency
// on the hot path, and consumers that later replay the saved file for
// analysis.
//
// # Core behavior
//
//   - Series are created lazily at the first append naming them; the variant
//     (scalar or vector) is fixed by the shape of that first value.
//   - Appends targeting an existing series with the wrong value shape are
//     dropped silently; the drop is observable through a counter and an
//     optional callback.
//   - Saved files list series blocks in creation order, each a
//     "<name>: <dimension> <count>" header followed by one fixed-point data
//     line per entry, closed by a "-1" terminator line.
//   - Clear empties every series but never removes one; positions are
//     stable for the accumulator's lifetime.
//
// # Basic usage
//
//	acc, _ := tracefile.New()
//
//	for i := 0; i < 100; i++ {
//	    acc.AppendScalar("torque", readTorque())
//	    acc.AppendVector("com", comX(), comY())
//	}
//
//	path, err := acc.Save("traces", "run")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	acc.Clear()
//
// Replaying the file:
//
//	scalars := map[string][]float64{}
//	vectors := map[string][]series.Vec2{}
//	if err := tracefile.LoadAll("traces", "run", scalars, vectors); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package structure
//
// This package provides convenient top-level wrappers around the trace
// package. For fine-grained control (options, borrowed series handles, the
// io.Reader-level decoder), use the trace package directly.
//
// Note: accumulators are not thread-safe; see the trace package docs.
package tracefile

import (
	"github.com/sirupsen/logrus"

	"github.com/loopkit/tracefile/config"
	"github.com/loopkit/tracefile/series"
	"github.com/loopkit/tracefile/trace"
)

// New creates an empty accumulator with the given options.
//
// Available options:
//   - trace.WithMaxSeries(n)
//   - trace.WithCapacityHint(n)
//   - trace.WithTimestampSuffix(enabled)
//   - trace.WithLogger(logger)
//   - trace.WithMismatchFunc(fn)
func New(opts ...trace.Option) (*trace.Accumulator, error) {
	return trace.New(opts...)
}

// Recorder couples an accumulator with its configured save target so the
// owning application can call Save without re-supplying the directory and
// base name on every batch.
type Recorder struct {
	*trace.Accumulator

	dir  string
	base string
}

// NewRecorder builds a Recorder from a validated configuration. When
// diagnostics are enabled the standard logrus logger is attached.
func NewRecorder(cfg *config.Config) (*Recorder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []trace.Option{
		trace.WithMaxSeries(cfg.MaxSeries),
		trace.WithTimestampSuffix(cfg.TimestampSuffix),
	}
	if cfg.LogDiagnostics {
		opts = append(opts, trace.WithLogger(logrus.StandardLogger()))
	}

	acc, err := trace.New(opts...)
	if err != nil {
		return nil, err
	}

	return &Recorder{
		Accumulator: acc,
		dir:         cfg.Dir,
		base:        cfg.BaseName,
	}, nil
}

// Save persists the accumulated series to the configured target and returns
// the path written.
func (r *Recorder) Save() (string, error) {
	return r.Accumulator.Save(r.dir, r.base)
}

// LoadScalar parses dir/<base>.txt and populates out with every scalar
// series. See trace.LoadScalar.
func LoadScalar(dir, base string, out map[string][]float64) error {
	return trace.LoadScalar(dir, base, out)
}

// LoadVector parses dir/<base>.txt and populates out with every vector
// series. See trace.LoadVector.
func LoadVector(dir, base string, out map[string][]series.Vec2) error {
	return trace.LoadVector(dir, base, out)
}

// LoadAll parses dir/<base>.txt in a single pass, routing scalar series into
// scalars and vector series into vectors. See trace.LoadAll.
func LoadAll(dir, base string, scalars map[string][]float64, vectors map[string][]series.Vec2) error {
	return trace.LoadAll(dir, base, scalars, vectors)
}
