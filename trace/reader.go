package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/loopkit/tracefile/errs"
	"github.com/loopkit/tracefile/format"
	"github.com/loopkit/tracefile/series"
)

// LoadScalar parses dir/<base>.txt and populates out with the value
// sequences of every scalar series. Vector blocks are recognized but their
// data lines are skipped, not stored.
//
// On error the contents of out are unspecified.
func LoadScalar(dir, base string, out map[string][]float64) error {
	return loadFile(filepath.Join(dir, base+fileExt), out, nil)
}

// LoadVector parses dir/<base>.txt and populates out with the value
// sequences of every vector series. Scalar blocks are recognized but their
// data lines are skipped, not stored.
//
// On error the contents of out are unspecified.
func LoadVector(dir, base string, out map[string][]series.Vec2) error {
	return loadFile(filepath.Join(dir, base+fileExt), nil, out)
}

// LoadAll parses dir/<base>.txt in a single pass, routing every scalar
// series into scalars and every vector series into vectors. It is equivalent
// to LoadScalar plus LoadVector but reads the file once.
//
// On error the contents of the output maps are unspecified.
func LoadAll(dir, base string, scalars map[string][]float64, vectors map[string][]series.Vec2) error {
	return loadFile(filepath.Join(dir, base+fileExt), scalars, vectors)
}

func loadFile(path string, scalars map[string][]float64, vectors map[string][]series.Vec2) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	return Decode(f, scalars, vectors)
}

// Decode parses the flat-text trace format from r. Scalar series are routed
// into scalars and vector series into vectors; a nil map skips (but still
// consumes) blocks of that dimension.
//
// Decoding stops successfully at the terminator line or, tolerating older
// files, at end-of-input. Any other line where a header is expected yields
// ErrMalformedHeader. A block that ends before its declared entry count
// yields ErrTruncatedSeries; a stored data line that does not match its
// dimension yields ErrMalformedValue. Content after the terminator is
// ignored.
func Decode(r io.Reader, scalars map[string][]float64, vectors map[string][]series.Vec2) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		line := sc.Text()

		name, dim, count, ok := parseHeader(line)
		if !ok {
			if strings.TrimSpace(line) == format.Terminator {
				return nil
			}

			return fmt.Errorf("%w: %q", errs.ErrMalformedHeader, line)
		}

		var err error
		switch dim {
		case format.DimScalar:
			err = readScalarBlock(sc, name, count, scalars)
		case format.DimVector:
			err = readVectorBlock(sc, name, count, vectors)
		}
		if err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read trace: %w", err)
	}

	// End-of-input without a terminator is tolerated.
	return nil
}

// parseHeader parses "name: dimension count". ok is false for any line that
// does not match the grammar, including the terminator.
func parseHeader(line string) (name string, dim format.Dimension, count int, ok bool) {
	name, rest, found := strings.Cut(line, ":")
	if !found || name == "" {
		return "", 0, 0, false
	}

	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return "", 0, 0, false
	}

	// Validate the raw int before narrowing to Dimension: out-of-range
	// values such as 257 or -255 would otherwise wrap modulo 256 into the
	// valid set.
	d, err := strconv.Atoi(fields[0])
	if err != nil || (d != int(format.DimScalar) && d != int(format.DimVector)) {
		return "", 0, 0, false
	}
	dim = format.Dimension(d)

	count, err = strconv.Atoi(fields[1])
	if err != nil || count < 0 {
		return "", 0, 0, false
	}

	return name, dim, count, true
}

func readScalarBlock(sc *bufio.Scanner, name string, count int, out map[string][]float64) error {
	var values []float64
	if out != nil {
		values = make([]float64, 0, count)
	}

	for i := range count {
		line, err := nextDataLine(sc, name, i, count)
		if err != nil {
			return err
		}
		if out == nil {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 1 {
			return fmt.Errorf("%w: series %q entry %d: want 1 field, got %d", errs.ErrMalformedValue, name, i, len(fields))
		}

		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("%w: series %q entry %d: %w", errs.ErrMalformedValue, name, i, err)
		}
		values = append(values, v)
	}

	if out != nil {
		out[name] = values
	}

	return nil
}

func readVectorBlock(sc *bufio.Scanner, name string, count int, out map[string][]series.Vec2) error {
	var values []series.Vec2
	if out != nil {
		values = make([]series.Vec2, 0, count)
	}

	for i := range count {
		line, err := nextDataLine(sc, name, i, count)
		if err != nil {
			return err
		}
		if out == nil {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("%w: series %q entry %d: want 2 fields, got %d", errs.ErrMalformedValue, name, i, len(fields))
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return fmt.Errorf("%w: series %q entry %d: %w", errs.ErrMalformedValue, name, i, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("%w: series %q entry %d: %w", errs.ErrMalformedValue, name, i, err)
		}
		values = append(values, series.Vec2{X: x, Y: y})
	}

	if out != nil {
		out[name] = values
	}

	return nil
}

func nextDataLine(sc *bufio.Scanner, name string, i, count int) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("read trace: %w", err)
		}

		return "", fmt.Errorf("%w: series %q: got %d of %d entries", errs.ErrTruncatedSeries, name, i, count)
	}

	return sc.Text(), nil
}
