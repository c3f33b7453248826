package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cienporcien/everest-core/internal/document"
	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/schema"
)

// ValidateFile checks the config file at path against the configuration
// schema and returns its contents.
func ValidateFile(v schema.Validator, path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	doc, err := document.Load(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				"config file not found",
				expanded,
				"Run 'ev-cli config init' to create one",
			)
		}
		return nil, err
	}

	if err := v.Validate(schema.KindConfig, expanded, doc.Plain()); err != nil {
		return nil, err
	}
	return NewLoader().Load(expanded)
}
