// Package config provides configuration loading and management.
package config

// ClangFormatConfig controls formatting of generated C++ sources.
type ClangFormatConfig struct {
	// File is the directory holding the .clang-format file.
	// Env: EV_CLI_CLANG_FORMAT_FILE
	File string `json:"file,omitempty" mapstructure:"file"`

	// Disabled turns formatting off even when File is set.
	// Env: EV_CLI_DISABLE_CLANG_FORMAT
	Disabled bool `json:"disabled,omitempty" mapstructure:"disabled"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config is the ev-cli configuration file, ~/.ev-cli/config.yaml.
type Config struct {
	// WorkDir holds the modules/ directory with manifests.
	// Env: EV_CLI_WORK_DIR, Default: "."
	WorkDir string `json:"workDir,omitempty" mapstructure:"workDir"`

	// EverestDirs are the roots searched for interfaces/ and types/, in
	// order. Env: EV_CLI_EVEREST_DIRS (path list), Default: [WorkDir]
	EverestDirs []string `json:"everestDirs,omitempty" mapstructure:"everestDirs"`

	// SchemasDir overrides the embedded definition schemas.
	// Env: EV_CLI_SCHEMAS_DIR
	SchemasDir string `json:"schemasDir,omitempty" mapstructure:"schemasDir"`

	// OutputDir receives loader, interface and type headers.
	// Env: EV_CLI_OUTPUT_DIR, Default: <WorkDir>/build/generated
	OutputDir string `json:"outputDir,omitempty" mapstructure:"outputDir"`

	ClangFormat ClangFormatConfig `json:"clangFormat,omitempty" mapstructure:"clangFormat"`

	Log LogConfig `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfig returns the configuration written by `ev-cli config init`.
func DefaultConfig() *Config {
	return &Config{
		WorkDir:     ".",
		EverestDirs: []string{"."},
		ClangFormat: ClangFormatConfig{Disabled: true},
	}
}
