package codegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

// FormattingError reports a clang-format failure.
type FormattingError struct {
	Path   string
	Reason string
}

func (e *FormattingError) Error() string {
	if e.Path == "" {
		return "clang-format: " + e.Reason
	}
	return fmt.Sprintf("clang-format %s: %s", e.Path, e.Reason)
}

func (e *FormattingError) Unwrap() error {
	return oerrors.ErrFormatting
}

// Formatter rewrites generated source before it is compared or written.
type Formatter interface {
	Format(ctx context.Context, path, content string) (string, error)
}

// ClangFormat runs clang-format with the .clang-format file of ConfigDir.
type ClangFormat struct {
	Executable string
	ConfigDir  string
}

// NewClangFormat locates clang-format and checks that dir holds a
// .clang-format file.
func NewClangFormat(dir string) (*ClangFormat, error) {
	exe, err := exec.LookPath("clang-format")
	if err != nil {
		return nil, &FormattingError{Reason: "executable not found in PATH"}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, &FormattingError{Reason: fmt.Sprintf("directory %s does not exist", dir)}
	}
	if _, err := os.Stat(filepath.Join(dir, ".clang-format")); err != nil {
		return nil, &FormattingError{Reason: fmt.Sprintf("directory %s does not contain a .clang-format file", dir)}
	}
	return &ClangFormat{Executable: exe, ConfigDir: dir}, nil
}

// Format formats C++ sources. Other files are returned unchanged.
func (c *ClangFormat) Format(ctx context.Context, path, content string) (string, error) {
	switch filepath.Ext(path) {
	case ".hpp", ".cpp":
	default:
		return content, nil
	}

	cmd := exec.CommandContext(ctx, c.Executable, "--style=file")
	cmd.Dir = c.ConfigDir
	cmd.Stdin = strings.NewReader(content)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		return "", &FormattingError{Path: path, Reason: reason}
	}
	return stdout.String(), nil
}
