package placement

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// CheckWritable verifies dir exists, is a directory, and is writable by the
// current process. Run before enabling moves so permission problems surface
// as one clear error instead of a per-file failure trail.
func CheckWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat target directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %q is not a directory", dir)
	}
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("insufficient permissions on %q: %w", dir, err)
	}
	return nil
}
