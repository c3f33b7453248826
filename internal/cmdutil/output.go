package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/files"
	"github.com/cienporcien/everest-core/internal/output"
)

// Fail reports err and returns it as an already printed ExitError carrying
// the exit code for its category. Differences found in diff mode were
// printed as diffs and exit with 1.
func Fail(msg string, err error) error {
	if errors.Is(err, ErrDifferences) {
		return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err, Printed: true}
	}
	PrintError(msg, err)
	return &oerrors.ExitError{
		Code:    oerrors.ExitCodeFromError(err),
		Err:     err,
		Printed: true,
	}
}

// PrintError prints err in a user-friendly format. Detailed errors keep
// their multi-line layout; unknown selectors list what is available.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	var selector *files.UnknownSelectorError

	switch {
	case errors.As(err, &detail):
		output.Error(msg)
		fmt.Fprint(os.Stderr, detail.Error())
	case errors.As(err, &selector):
		output.Error(msg, "error", err)
		for _, name := range selector.Available {
			output.Info(fmt.Sprintf("  %s", name))
		}
	default:
		output.Error(msg, "error", err)
	}
}

// WriteReport prints one line per generated file. With tree set the files
// are printed as a tree below root instead.
func WriteReport(w io.Writer, report *files.Report, root string, tree bool) {
	if tree {
		statuses := make(map[string]string, len(report.Results))
		for _, res := range report.Results {
			statuses[filepath.ToSlash(res.File.PrintableName)] = string(res.Status)
		}
		fmt.Fprint(w, output.RenderFileTree(root, statuses))
		return
	}
	for _, res := range report.Results {
		fmt.Fprintln(w, output.FormatFileLine(res.File.PrintableName, string(res.Status)))
	}
}

// WriteDiffs prints the diff of every file that differs from disk.
func WriteDiffs(w io.Writer, report *files.Report) {
	for _, res := range report.Results {
		if res.Diff == "" {
			continue
		}
		fmt.Fprint(w, output.RenderUnifiedDiff(res.Diff))
	}
}

// WriteSummary prints the counts of a written batch.
func WriteSummary(w io.Writer, report *files.Report) {
	summary := fmt.Sprintf("%d created, %d updated, %d unchanged, %d skipped",
		report.Count(files.StatusCreated),
		report.Count(files.StatusUpdated),
		report.Count(files.StatusUnchanged),
		report.Count(files.StatusSkipped),
	)
	fmt.Fprintln(w, output.FormatCheckmark(output.StyleSummary.Render(summary)))
}
