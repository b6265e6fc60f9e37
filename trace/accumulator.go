// Package trace implements the accumulator core: lazy creation of named
// series, typed append dispatch, and save/load of the flat-text trace
// format.
package trace

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/loopkit/tracefile/errs"
	"github.com/loopkit/tracefile/format"
	"github.com/loopkit/tracefile/internal/options"
	"github.com/loopkit/tracefile/internal/registry"
	"github.com/loopkit/tracefile/series"
)

// Accumulator collects named time-series values in memory and persists them
// in batch via Save. Series are created lazily at the first append naming
// them, with the variant fixed by the shape of that first value. Creation
// order is preserved and determines block order in saved files.
//
// Note: the Accumulator is NOT thread-safe. Concurrent appends from multiple
// goroutines require external mutual exclusion.
type Accumulator struct {
	reg  *registry.Registry
	list []series.Series // creation order; positions match the registry

	maxSeries int
	capHint   int
	capWarned bool

	mismatches uint64
	onMismatch func(name string, got format.Dimension)

	stampSuffix bool
	stamped     bool
	stamp       time.Time
	now         func() time.Time

	logger logrus.FieldLogger
}

// New creates an empty Accumulator.
//
// Available options:
//   - WithMaxSeries(n): cap on distinct series names (default unlimited)
//   - WithCapacityHint(n): pre-allocation hint
//   - WithTimestampSuffix(enabled): stamped save file names
//   - WithLogger(logger): diagnostics sink
//   - WithMismatchFunc(fn): observer for dropped type-mismatched appends
//
// Returns an error only if an option is invalid.
func New(opts ...Option) (*Accumulator, error) {
	a := &Accumulator{now: time.Now}

	if err := options.Apply(a, opts...); err != nil {
		return nil, err
	}

	a.reg = registry.New(a.capHint)
	a.list = make([]series.Series, 0, a.capHint)

	return a, nil
}

// AppendScalar records one value for the named scalar series, creating the
// series if the name is unseen and the cap allows it.
//
// The call never fails. A value targeting an existing vector series is
// dropped (observable via Mismatches and WithMismatchFunc); an unseen name
// past the cap is dropped after a one-time diagnostic; an invalid name is
// dropped.
func (a *Accumulator) AppendScalar(name string, v float64) {
	if pos, ok := a.reg.Lookup(name); ok {
		sc, ok := a.list[pos].(*series.ScalarSeries)
		if !ok {
			a.dropMismatch(name, format.DimScalar)
			return
		}
		sc.Append(v)

		return
	}

	if !validName(name) {
		return
	}

	sc := series.NewScalar(name)
	if a.register(sc) {
		sc.Append(v)
	}
}

// AppendVector records one (x, y) pair for the named vector series, creating
// the series if the name is unseen and the cap allows it. Drop behavior
// matches AppendScalar.
func (a *Accumulator) AppendVector(name string, x, y float64) {
	if pos, ok := a.reg.Lookup(name); ok {
		vs, ok := a.list[pos].(*series.VectorSeries)
		if !ok {
			a.dropMismatch(name, format.DimVector)
			return
		}
		vs.Append(series.Vec2{X: x, Y: y})

		return
	}

	if !validName(name) {
		return
	}

	vs := series.NewVector(name)
	if a.register(vs) {
		vs.Append(series.Vec2{X: x, Y: y})
	}
}

// Scalar returns a borrowed handle to the named scalar series, creating it
// if the name is unseen. Hot loops can hold the handle and append without
// repeated name resolution. The handle is valid for the accumulator's
// lifetime and must not outlive it.
//
// Returns ErrMixedDimension if the name belongs to a vector series,
// ErrSeriesCapExceeded if creating would exceed the cap, or
// ErrInvalidSeriesName for an empty name or one containing a colon.
func (a *Accumulator) Scalar(name string) (*series.ScalarSeries, error) {
	if pos, ok := a.reg.Lookup(name); ok {
		sc, ok := a.list[pos].(*series.ScalarSeries)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s", errs.ErrMixedDimension, name, a.list[pos].Dimension())
		}

		return sc, nil
	}

	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidSeriesName, name)
	}

	sc := series.NewScalar(name)
	if !a.register(sc) {
		return nil, fmt.Errorf("%w: cap is %d", errs.ErrSeriesCapExceeded, a.maxSeries)
	}

	return sc, nil
}

// Vector returns a borrowed handle to the named vector series, creating it
// if the name is unseen. Error behavior matches Scalar.
func (a *Accumulator) Vector(name string) (*series.VectorSeries, error) {
	if pos, ok := a.reg.Lookup(name); ok {
		vs, ok := a.list[pos].(*series.VectorSeries)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s", errs.ErrMixedDimension, name, a.list[pos].Dimension())
		}

		return vs, nil
	}

	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidSeriesName, name)
	}

	vs := series.NewVector(name)
	if !a.register(vs) {
		return nil, fmt.Errorf("%w: cap is %d", errs.ErrSeriesCapExceeded, a.maxSeries)
	}

	return vs, nil
}

// Clear resets every series to zero entries. Registry membership, positions,
// and any captured save stamp are untouched; series are never removed once
// created.
func (a *Accumulator) Clear() {
	for _, s := range a.list {
		s.Clear()
	}
}

// Len returns the number of distinct series created so far.
func (a *Accumulator) Len() int {
	return len(a.list)
}

// Names returns the series names in creation order. The slice is borrowed
// and must not be mutated.
func (a *Accumulator) Names() []string {
	return a.reg.Names()
}

// Mismatches returns the number of appends dropped because their value shape
// did not match the target series' dimension.
func (a *Accumulator) Mismatches() uint64 {
	return a.mismatches
}

// register adds a freshly created series to the registry and the ordered
// collection, enforcing the distinct-name cap. The first refused creation
// logs a warning; later refusals are silent.
func (a *Accumulator) register(s series.Series) bool {
	if a.maxSeries > 0 && a.reg.Len() >= a.maxSeries {
		if !a.capWarned {
			a.capWarned = true
			if a.logger != nil {
				a.logger.WithFields(logrus.Fields{
					"series": s.Name(),
					"cap":    a.maxSeries,
				}).Warn("series cap reached; new series will be dropped")
			}
		}

		return false
	}

	a.reg.Add(s.Name())
	a.list = append(a.list, s)

	return true
}

func (a *Accumulator) dropMismatch(name string, got format.Dimension) {
	a.mismatches++
	if a.onMismatch != nil {
		a.onMismatch(name, got)
	}
}

// validName reports whether name can appear in a header line: non-empty and
// free of the colon separator.
func validName(name string) bool {
	return name != "" && !strings.ContainsRune(name, ':')
}
