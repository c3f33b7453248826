// Package loader finds definition files in the definition tree, validates
// them and builds the typed model.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/model"
)

// NotFoundError reports a definition that is missing from every root of
// the tree.
type NotFoundError struct {
	// Rel is the path searched for, relative to each root.
	Rel string

	// Roots lists every searched root in search order.
	Roots []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not resolve %q in any of the definition roots [%s]", e.Rel, strings.Join(e.Roots, ", "))
}

func (e *NotFoundError) Unwrap() error {
	return oerrors.ErrNotFound
}

// Tree is an ordered list of root directories. Lookups return the first
// root that holds the requested file.
type Tree []string

// NewTree creates a tree from root directories, made absolute.
func NewTree(roots ...string) (Tree, error) {
	tree := make(Tree, 0, len(roots))
	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving definition root %s: %w", root, err)
		}
		tree = append(tree, abs)
	}
	return tree, nil
}

// Resolve returns the path of rel under the first root that contains it.
// rel is slash-separated and must not leave the roots.
func (t Tree) Resolve(rel string) (string, error) {
	if err := model.CheckLookupPath(rel); err != nil {
		return "", oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("invalid definition path: %v", err))
	}
	for _, root := range t {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", &NotFoundError{Rel: rel, Roots: append([]string(nil), t...)}
}

// List returns the names of all YAML definitions below dir in every root,
// without extension and with slash separators. A name found in several
// roots is listed once.
func (t Tree) List(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	for _, root := range t {
		base := filepath.Join(root, dir)
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}
			rel, err := filepath.Rel(base, path)
			if err != nil {
				return err
			}
			name := strings.TrimSuffix(filepath.ToSlash(rel), ".yaml")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", base, err)
		}
	}

	sort.Strings(names)
	return names, nil
}
