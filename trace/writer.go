package trace

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kjk/common/atomicfile"
	"github.com/sirupsen/logrus"

	"github.com/loopkit/tracefile/format"
)

const (
	// fileExt is the extension of every saved trace file.
	fileExt = ".txt"

	// stampLayout formats the per-accumulator save stamp. Minute resolution:
	// saves from the same instance within one minute target the same file.
	stampLayout = "2006_01_02-1504"
)

// Save writes every series, in creation order, to dir/<base>[_stamp].txt and
// returns the path written.
//
// The first call captures the accumulator's save stamp (when the timestamp
// suffix is enabled); subsequent calls reuse it regardless of when they
// happen, so one accumulator instance keeps overwriting the same file. The
// directory is created recursively if missing. The file is written through a
// temporary file renamed into place, so a failed save never leaves a
// partially written destination.
//
// Save does not mutate any series; accumulation can continue afterwards.
func (a *Accumulator) Save(dir, base string) (string, error) {
	path := filepath.Join(dir, a.FileName(base))

	// Best effort; a failure here surfaces on the open below.
	_ = os.MkdirAll(dir, 0o755)

	f, err := atomicfile.New(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.RemoveIfNotClosed()

	w := bufio.NewWriter(f)
	for _, s := range a.list {
		if _, err := s.WriteTo(w); err != nil {
			return "", fmt.Errorf("write series %q: %w", s.Name(), err)
		}
	}

	if _, err := w.WriteString(format.Terminator + "\n"); err != nil {
		return "", fmt.Errorf("write terminator: %w", err)
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{
			"path":   path,
			"series": len(a.list),
		}).Debug("trace saved")
	}

	return path, nil
}

// FileName returns the file name Save uses for the given base name,
// including the stamp suffix when timestamp mode is enabled. Computing the
// name captures the stamp if it has not been captured yet.
func (a *Accumulator) FileName(base string) string {
	if !a.stampSuffix {
		return base + fileExt
	}

	if !a.stamped {
		a.stamp = a.now()
		a.stamped = true
	}

	return base + "_" + a.stamp.Format(stampLayout) + fileExt
}
