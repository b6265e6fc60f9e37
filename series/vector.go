package series

import (
	"io"

	"github.com/loopkit/tracefile/format"
)

// VectorSeries is a dimension-2 series: one planar (x, y) pair per entry.
//
// Note: VectorSeries is NOT thread-safe. External mutual exclusion is
// required for multi-producer use.
type VectorSeries struct {
	name   string
	values []Vec2
}

// NewVector creates an empty vector series with the given name.
func NewVector(name string) *VectorSeries {
	return &VectorSeries{name: name}
}

// Append adds one (x, y) pair to the end of the series.
func (s *VectorSeries) Append(v Vec2) {
	s.values = append(s.values, v)
}

// Values returns the ordered value sequence. The slice is borrowed: it is
// valid until the next Append or Clear and must not be mutated.
func (s *VectorSeries) Values() []Vec2 {
	return s.values
}

// Name returns the series name.
func (s *VectorSeries) Name() string { return s.name }

// Dimension returns format.DimVector.
func (s *VectorSeries) Dimension() format.Dimension { return format.DimVector }

// Len returns the number of entries currently held.
func (s *VectorSeries) Len() int { return len(s.values) }

// Clear resets the series to zero entries, retaining capacity.
func (s *VectorSeries) Clear() {
	s.values = s.values[:0]
}

// WriteTo emits the header line followed by one data line per entry. Each
// data line holds the two components separated by a single space.
func (s *VectorSeries) WriteTo(w io.Writer) (int64, error) {
	var total int64

	buf := appendHeader(nil, s.name, format.DimVector, len(s.values))
	n, err := w.Write(buf)
	total += int64(n)
	if err != nil {
		return total, err
	}

	for _, v := range s.values {
		buf = appendValue(buf[:0], v.X)
		buf = append(buf, ' ')
		buf = appendValue(buf, v.Y)
		buf = append(buf, '\n')

		n, err = w.Write(buf)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}
