package cmdutil

import (
	"errors"
	"io"

	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/output"
)

// ErrDifferences is returned in diff mode when generated files differ from
// disk.
var ErrDifferences = errors.New("generated files differ from disk")

// ApplyOptions control how a generated batch is applied and reported.
type ApplyOptions struct {
	Flags *GenerateFlags
	Mode  files.Mode

	// Root labels the file tree in verbose output.
	Root    string
	Verbose bool
}

// Apply filters m by the --only selector, writes or diffs it, and prints
// the outcome to w. The 'which' selector lists the artifacts and writes
// nothing. In diff mode differences are reported as ErrDifferences.
func Apply(w io.Writer, m files.Map, opts ApplyOptions) (*files.Report, error) {
	only := opts.Flags.Only
	if files.IsWhich(only) {
		files.PrintAvailable(w, m)
		return &files.Report{}, nil
	}

	selected, err := files.Filter(m, only)
	if err != nil {
		return nil, err
	}

	report, err := files.Apply(selected, opts.Flags.Options(opts.Mode))
	if err != nil {
		if report != nil {
			WriteReport(w, report, opts.Root, false)
		}
		return report, err
	}

	if opts.Flags.Diff {
		WriteDiffs(w, report)
		if report.HasDifferences() {
			return report, ErrDifferences
		}
		return report, nil
	}

	WriteReport(w, report, opts.Root, opts.Verbose)
	if opts.Verbose {
		WriteSummary(w, report)
	}
	output.Debug("batch applied", "files", len(report.Results))
	return report, nil
}
