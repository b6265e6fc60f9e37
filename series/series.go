// Package series implements the two series variants stored by an
// accumulator: scalar series holding one real number per entry and vector
// series holding one planar (x, y) pair per entry.
//
// A series is created with its variant fixed permanently; append is the only
// mutator that grows it, so the entry count always equals the length of the
// value sequence. Series do not know about each other and carry no
// synchronization; ownership and ordering live in the accumulator.
package series

import (
	"io"
	"strconv"

	"github.com/loopkit/tracefile/format"
)

// Series is the closed two-case interface the accumulator iterates when
// saving. Both implementations also expose a typed Append that the
// accumulator dispatches to after deciding the value shape, so the series
// itself never re-checks types.
type Series interface {
	// Name returns the unique name the series was registered under.
	Name() string

	// Dimension returns the fixed variant of the series.
	Dimension() format.Dimension

	// Len returns the number of entries currently held.
	Len() int

	// Clear resets the series to zero entries. Capacity is retained.
	Clear()

	// WriteTo emits the series header line followed by one formatted data
	// line per entry. It implements io.WriterTo.
	WriteTo(w io.Writer) (int64, error)
}

// Vec2 is a single entry of a vector series: a planar (x, y) pair.
type Vec2 struct {
	X float64
	Y float64
}

// appendHeader appends the series header line "<name>: <dimension> <count>"
// to buf and returns the extended buffer.
func appendHeader(buf []byte, name string, dim format.Dimension, count int) []byte {
	buf = append(buf, name...)
	buf = append(buf, ':', ' ')
	buf = strconv.AppendInt(buf, int64(dim), 10)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(count), 10)
	buf = append(buf, '\n')

	return buf
}

// appendValue appends one value in the fixed-point notation used by the text
// format: ValuePrecision digits after the decimal point.
func appendValue(buf []byte, v float64) []byte {
	return strconv.AppendFloat(buf, v, 'f', format.ValuePrecision, 64)
}
