// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/module, internal/cmd/config, ...).
package cmdtypes

import (
	"github.com/cienporcien/everest-core/internal/config"
	oerrors "github.com/cienporcien/everest-core/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Flags are the raw global flag values.
	Flags config.Flags

	// Config is the loaded config file, empty when none exists.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Settings are the resolved values commands run with.
	Settings *config.Settings

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
