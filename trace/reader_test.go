package trace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loopkit/tracefile/errs"
	"github.com/loopkit/tracefile/series"
)

func writeTrace(t *testing.T, content string) (dir, base string) {
	t.Helper()

	dir = t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "run.txt"), []byte(content), 0o644)
	require.NoError(t, err)

	return dir, "run"
}

func TestLoadAll_RoundTrip(t *testing.T) {
	acc, err := New()
	require.NoError(t, err)

	acc.AppendScalar("t", 0.0)
	acc.AppendScalar("t", 1.0)
	acc.AppendVector("p", 1.5, 2.3)
	acc.AppendScalar("u", -0.125)

	dir := t.TempDir()
	_, err = acc.Save(dir, "run")
	require.NoError(t, err)

	scalars := map[string][]float64{}
	vectors := map[string][]series.Vec2{}
	err = LoadAll(dir, "run", scalars, vectors)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{
		"t": {0.0, 1.0},
		"u": {-0.125},
	}, scalars)
	require.Equal(t, map[string][]series.Vec2{
		"p": {{X: 1.5, Y: 2.3}},
	}, vectors)
}

func TestLoadScalar_FiltersVectors(t *testing.T) {
	dir, base := writeTrace(t,
		"t: 1 1\n1.000000000000\n"+
			"p: 2 1\n1.500000000000 2.300000000000\n"+
			"-1\n")

	out := map[string][]float64{}
	err := LoadScalar(dir, base, out)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{"t": {1.0}}, out)
	require.NotContains(t, out, "p")
}

func TestLoadVector_FiltersScalars(t *testing.T) {
	dir, base := writeTrace(t,
		"t: 1 1\n1.000000000000\n"+
			"p: 2 1\n1.500000000000 2.300000000000\n"+
			"-1\n")

	out := map[string][]series.Vec2{}
	err := LoadVector(dir, base, out)

	require.NoError(t, err)
	require.Equal(t, map[string][]series.Vec2{"p": {{X: 1.5, Y: 2.3}}}, out)
}

func TestLoadAll_MissingFile(t *testing.T) {
	err := LoadAll(t.TempDir(), "absent", map[string][]float64{}, map[string][]series.Vec2{})

	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_EmptyFile(t *testing.T) {
	scalars := map[string][]float64{}
	err := Decode(strings.NewReader(""), scalars, nil)

	require.NoError(t, err)
	require.Empty(t, scalars)
}

func TestDecode_TerminatorOnly(t *testing.T) {
	err := Decode(strings.NewReader("-1\n"), map[string][]float64{}, nil)
	require.NoError(t, err)
}

func TestDecode_MissingTerminatorTolerated(t *testing.T) {
	scalars := map[string][]float64{}
	err := Decode(strings.NewReader("t: 1 1\n2.000000000000\n"), scalars, nil)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{"t": {2.0}}, scalars)
}

func TestDecode_StopsAtTerminator(t *testing.T) {
	scalars := map[string][]float64{}
	err := Decode(strings.NewReader("t: 1 1\n2.000000000000\n-1\nthis is ignored\n"), scalars, nil)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{"t": {2.0}}, scalars)
}

func TestDecode_MalformedHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no colon", "garbage line\n"},
		{"missing count", "t: 1\n"},
		{"extra field", "t: 1 2 3\n"},
		{"bad dimension", "t: 3 1\n0.0\n"},
		{"dimension wraps uint8", "t: 257 1\n4.000000000000\n"},
		{"negative dimension wraps uint8", "t: -255 1\n4.000000000000\n"},
		{"dimension zero", "t: 0 1\n0.0\n"},
		{"negative count", "t: 1 -2\n"},
		{"non-numeric", "t: one two\n"},
		{"empty name", ": 1 1\n0.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(strings.NewReader(tt.input), map[string][]float64{}, nil)
			require.ErrorIs(t, err, errs.ErrMalformedHeader)
		})
	}
}

func TestDecode_TruncatedSeries(t *testing.T) {
	err := Decode(strings.NewReader("t: 1 3\n1.000000000000\n"), map[string][]float64{}, nil)

	require.ErrorIs(t, err, errs.ErrTruncatedSeries)
}

func TestDecode_MalformedValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "t: 1 1\nabc\n-1\n"},
		{"scalar with two fields", "t: 1 1\n1.0 2.0\n-1\n"},
		{"vector with one field", "p: 2 1\n1.0\n-1\n"},
		{"vector bad second", "p: 2 1\n1.0 xyz\n-1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode(strings.NewReader(tt.input), map[string][]float64{}, map[string][]series.Vec2{})
			require.ErrorIs(t, err, errs.ErrMalformedValue)
		})
	}
}

func TestDecode_SkippedBlocksNotValidated(t *testing.T) {
	// A vector block is consumed but not parsed when only scalars are
	// requested, so bad numbers inside it pass through.
	scalars := map[string][]float64{}
	err := Decode(strings.NewReader("p: 2 1\nnot numbers\nt: 1 1\n4.000000000000\n-1\n"), scalars, nil)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{"t": {4.0}}, scalars)
}

func TestDecode_ZeroCountBlocks(t *testing.T) {
	scalars := map[string][]float64{}
	vectors := map[string][]series.Vec2{}
	err := Decode(strings.NewReader("t: 1 0\np: 2 0\n-1\n"), scalars, vectors)

	require.NoError(t, err)
	require.Equal(t, map[string][]float64{"t": {}}, scalars)
	require.Equal(t, map[string][]series.Vec2{"p": {}}, vectors)
}

func TestDecode_PrecisionRoundTrip(t *testing.T) {
	acc, err := New()
	require.NoError(t, err)

	values := []float64{3.14159265358979, -2.71828182845905, 0.000000000001, 12345.6789}
	for _, v := range values {
		acc.AppendScalar("v", v)
	}

	dir := t.TempDir()
	_, err = acc.Save(dir, "run")
	require.NoError(t, err)

	scalars := map[string][]float64{}
	require.NoError(t, LoadScalar(dir, "run", scalars))

	require.Len(t, scalars["v"], len(values))
	for i, v := range values {
		require.InDelta(t, v, scalars["v"][i], 5e-13)
	}
}
