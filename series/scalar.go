package series

import (
	"io"

	"github.com/loopkit/tracefile/format"
)

// ScalarSeries is a dimension-1 series: one real number per entry.
//
// Note: ScalarSeries is NOT thread-safe. External mutual exclusion is
// required for multi-producer use.
type ScalarSeries struct {
	name   string
	values []float64
}

// NewScalar creates an empty scalar series with the given name.
func NewScalar(name string) *ScalarSeries {
	return &ScalarSeries{name: name}
}

// Append adds one value to the end of the series.
func (s *ScalarSeries) Append(v float64) {
	s.values = append(s.values, v)
}

// Values returns the ordered value sequence. The slice is borrowed: it is
// valid until the next Append or Clear and must not be mutated.
func (s *ScalarSeries) Values() []float64 {
	return s.values
}

// Name returns the series name.
func (s *ScalarSeries) Name() string { return s.name }

// Dimension returns format.DimScalar.
func (s *ScalarSeries) Dimension() format.Dimension { return format.DimScalar }

// Len returns the number of entries currently held.
func (s *ScalarSeries) Len() int { return len(s.values) }

// Clear resets the series to zero entries, retaining capacity.
func (s *ScalarSeries) Clear() {
	s.values = s.values[:0]
}

// WriteTo emits the header line followed by one data line per entry.
func (s *ScalarSeries) WriteTo(w io.Writer) (int64, error) {
	var total int64

	buf := appendHeader(nil, s.name, format.DimScalar, len(s.values))
	n, err := w.Write(buf)
	total += int64(n)
	if err != nil {
		return total, err
	}

	for _, v := range s.values {
		buf = appendValue(buf[:0], v)
		buf = append(buf, '\n')

		n, err = w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
