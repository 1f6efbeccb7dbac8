package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// lockName is the run-level mutual-exclusion guard in the destination root.
// The design assumes a single daily invocation with no overlapping runs; the
// lock file makes that assumption explicit.
const lockName = ".valorinv.lock"

// acquireRunLock takes the run lock, returning a release func. A second
// concurrent run fails here before touching the workbook.
func acquireRunLock(dir string) (func(), error) {
	path := filepath.Join(dir, lockName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("run lock %s already held (stale lock from a crashed run must be removed manually)", path)
		}
		return nil, fmt.Errorf("failed to acquire run lock %s: %w", path, err)
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()))
	_ = f.Close()

	return func() {
		_ = os.Remove(path)
	}, nil
}
