package files

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/output"
)

// Mode selects what the creator does with a batch.
type Mode int

const (
	// ModeCreate writes new files and refuses to overwrite unless forced.
	ModeCreate Mode = iota

	// ModeUpdate overwrites existing files, except KeepExisting ones.
	ModeUpdate
)

// Status is the outcome for one artifact.
type Status string

// Artifact statuses.
const (
	StatusCreated   Status = "created"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusSkipped   Status = "skipped"
	StatusDiffers   Status = "differs"
)

// Options configure a batch.
type Options struct {
	Mode Mode

	// Force allows create mode to overwrite existing files.
	Force bool

	// DiffOnly reports differences to disk and writes nothing.
	DiffOnly bool
}

// Result is the outcome for one artifact.
type Result struct {
	File   Info
	Status Status

	// Diff is the unified diff in diff mode, empty when nothing differs.
	Diff string
}

// Report is the outcome of a batch.
type Report struct {
	Results []Result
}

// HasDifferences reports whether any diff-mode result differs from disk.
func (r *Report) HasDifferences() bool {
	for _, res := range r.Results {
		if res.Diff != "" {
			return true
		}
	}
	return false
}

// Count returns the number of results with status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// ExistsError reports files that create mode would overwrite.
type ExistsError struct {
	Paths []string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing files (use --force): %s", strings.Join(e.Paths, ", "))
}

func (e *ExistsError) Unwrap() error {
	return oerrors.ErrExists
}

// WriteError reports a failure during the write phase. Files written
// before the failure stay on disk.
type WriteError struct {
	Path    string
	Written []string
	Err     error
}

func (e *WriteError) Error() string {
	if len(e.Written) == 0 {
		return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("writing %s: %v (already written: %s)", e.Path, e.Err, strings.Join(e.Written, ", "))
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Apply runs a batch. Every precondition is checked before the first write,
// so a refused create or an unreadable file leaves the disk untouched.
func Apply(m Map, opts Options) (*Report, error) {
	all := m.All()
	existing := make([][]byte, len(all))
	exists := make([]bool, len(all))

	var conflicts []string
	for i, f := range all {
		data, err := os.ReadFile(f.Path)
		switch {
		case err == nil:
			existing[i] = data
			exists[i] = true
			if opts.Mode == ModeCreate && !opts.Force && !opts.DiffOnly && !bytes.Equal(data, []byte(f.Content)) {
				conflicts = append(conflicts, f.PrintableName)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading %s: %w", f.Path, err)
		}
	}

	if len(conflicts) > 0 {
		return nil, &ExistsError{Paths: conflicts}
	}

	report := &Report{Results: make([]Result, 0, len(all))}

	if opts.DiffOnly {
		for i, f := range all {
			if skipped(f, exists[i], opts) {
				report.Results = append(report.Results, Result{File: f, Status: StatusSkipped})
				continue
			}
			d := Diff(f, string(existing[i]))
			status := StatusUnchanged
			if d != "" {
				status = StatusDiffers
			}
			report.Results = append(report.Results, Result{File: f, Status: status, Diff: d})
		}
		return report, nil
	}

	var written []string
	for i, f := range all {
		if skipped(f, exists[i], opts) {
			output.Debug("keeping existing file", "path", f.Path)
			report.Results = append(report.Results, Result{File: f, Status: StatusSkipped})
			continue
		}
		if exists[i] && bytes.Equal(existing[i], []byte(f.Content)) {
			output.Debug("file unchanged", "path", f.Path)
			report.Results = append(report.Results, Result{File: f, Status: StatusUnchanged})
			continue
		}

		if err := write(f); err != nil {
			return report, &WriteError{Path: f.Path, Written: written, Err: err}
		}
		written = append(written, f.PrintableName)

		status := StatusCreated
		if exists[i] {
			status = StatusUpdated
		}
		output.Debug("file written", "path", f.Path, "status", status)
		report.Results = append(report.Results, Result{File: f, Status: status})
	}
	return report, nil
}

// skipped reports whether an update leaves an existing developer file alone.
func skipped(f Info, exists bool, opts Options) bool {
	return opts.Mode == ModeUpdate && f.KeepExisting && exists && !opts.Force
}

func write(f Info) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, []byte(f.Content), 0o644)
}
