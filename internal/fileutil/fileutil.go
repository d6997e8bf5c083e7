// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrOutputExists is returned when the output path is already occupied and
// overwriting was not requested.
var ErrOutputExists = errors.New("output file already exists")

// CheckOverwrite returns ErrOutputExists when path exists and force is false.
// The check happens before gpg is invoked so gpg never has to prompt about
// overwriting.
func CheckOverwrite(path string, force bool) error {
	_, err := os.Stat(path)

	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %q", ErrOutputExists, path)
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("stat %q: %w", path, err)
	}
}

// FinalizeOutput optionally restores the source timestamps on the produced
// output file and returns its size.
func FinalizeOutput(outPath string, preserveTimestamps bool, modTime time.Time) (int64, error) {
	if preserveTimestamps {
		if err := os.Chtimes(outPath, modTime, modTime); err != nil {
			return 0, fmt.Errorf("preserving timestamps: %w", err)
		}
	}

	info, err := os.Stat(outPath)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", outPath, err)
	}

	return info.Size(), nil
}
