package format

// Dimension identifies the variant of a series: how many real numbers each
// entry carries. The set is closed; only scalar and planar-vector series
// exist.
type Dimension uint8

const (
	DimScalar Dimension = 1 // DimScalar represents one real number per entry.
	DimVector Dimension = 2 // DimVector represents one (x, y) pair per entry.
)

// Valid reports whether d is one of the two supported dimensions.
func (d Dimension) Valid() bool {
	return d == DimScalar || d == DimVector
}

func (d Dimension) String() string {
	switch d {
	case DimScalar:
		return "Scalar"
	case DimVector:
		return "Vector"
	default:
		return "Unknown"
	}
}

// ValuePrecision is the number of digits emitted after the decimal point for
// every value in a trace file. Round-trips are exact to this precision.
const ValuePrecision = 12

// Terminator is the literal line that closes a trace file. It is the sole
// explicit end-of-data signal and doubles as minimal truncation detection.
const Terminator = "-1"
