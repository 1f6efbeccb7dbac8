package domain

import (
	"fmt"
	"strings"
)

// SourceUnavailableError marks a soft failure: a required extract or column
// is missing, the step is skipped and the run continues.
type SourceUnavailableError struct {
	Kind    string
	Missing []string
}

func (e *SourceUnavailableError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("source %s unavailable", e.Kind)
	}
	return fmt.Sprintf("source %s missing required columns: %s", e.Kind, strings.Join(e.Missing, ", "))
}

// PersistenceError marks a failed whole-sheet read or write against the
// workbook. The failing step is aborted; later steps still run.
type PersistenceError struct {
	Sheet string
	Op    string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("workbook %s %s failed: %v", e.Op, e.Sheet, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FatalConfigError aborts the whole run before any write.
type FatalConfigError struct {
	Path string
	Err  error
}

func (e *FatalConfigError) Error() string {
	return fmt.Sprintf("destination %s inaccessible: %v", e.Path, e.Err)
}

func (e *FatalConfigError) Unwrap() error {
	return e.Err
}
