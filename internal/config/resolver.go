package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/output"
)

// Environment variables read by the resolver.
const (
	EnvPrefix             = "EV_CLI_"
	EnvConfig             = EnvPrefix + "CONFIG"
	EnvWorkDir            = EnvPrefix + "WORK_DIR"
	EnvEverestDirs        = EnvPrefix + "EVEREST_DIRS"
	EnvSchemasDir         = EnvPrefix + "SCHEMAS_DIR"
	EnvOutputDir          = EnvPrefix + "OUTPUT_DIR"
	EnvClangFormatFile    = EnvPrefix + "CLANG_FORMAT_FILE"
	EnvDisableClangFormat = EnvPrefix + "DISABLE_CLANG_FORMAT"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolvedValue records one resolved setting and the values it shadowed.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}

// Flags carries the global flag values. Unset flags are zero; Set records
// which flags the user gave explicitly.
type Flags struct {
	WorkDir            string
	EverestDirs        []string
	SchemasDir         string
	OutputDir          string
	ClangFormatFile    string
	DisableClangFormat bool
	Set                map[string]bool
}

// Settings are the resolved values the commands run with. Paths are
// absolute.
type Settings struct {
	WorkDir            string
	EverestDirs        []string
	SchemasDir         string
	OutputDir          string
	ClangFormatFile    string
	DisableClangFormat bool

	// Values lists every resolution for debug logging.
	Values []ResolvedValue
}

// FormattingEnabled reports whether generated sources go through
// clang-format.
func (s *Settings) FormattingEnabled() bool {
	return s.ClangFormatFile != "" && !s.DisableClangFormat
}

type candidate struct {
	source ConfigSource
	value  any
	ok     bool
}

// pick returns the first present candidate; later present ones are
// recorded as shadowed.
func pick(key string, candidates ...candidate) ResolvedValue {
	rv := ResolvedValue{Key: key, Shadowed: make(map[ConfigSource]any)}
	found := false
	for _, c := range candidates {
		if !c.ok {
			continue
		}
		if !found {
			rv.Value, rv.Source, found = c.value, c.source, true
			continue
		}
		rv.Shadowed[c.source] = c.value
	}
	return rv
}

func stringCandidate(source ConfigSource, v string) candidate {
	return candidate{source: source, value: v, ok: v != ""}
}

func envCandidate(name string) candidate {
	v, ok := os.LookupEnv(name)
	return candidate{source: SourceEnv, value: v, ok: ok && v != ""}
}

// Resolve applies flag > env > config > default to every setting.
func Resolve(flags Flags, cfg *Config) (*Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Settings{}
	add := func(rv ResolvedValue) ResolvedValue {
		s.Values = append(s.Values, rv)
		return rv
	}

	workDir := add(pick("workDir",
		stringCandidate(SourceFlag, flags.WorkDir),
		envCandidate(EnvWorkDir),
		stringCandidate(SourceConfig, cfg.WorkDir),
		stringCandidate(SourceDefault, "."),
	))
	var err error
	if s.WorkDir, err = absPath(workDir.Value.(string)); err != nil {
		return nil, err
	}

	var envDirs []string
	if v := os.Getenv(EnvEverestDirs); v != "" {
		envDirs = filepath.SplitList(v)
	}
	everest := add(pick("everestDirs",
		candidate{source: SourceFlag, value: flags.EverestDirs, ok: len(flags.EverestDirs) > 0},
		candidate{source: SourceEnv, value: envDirs, ok: len(envDirs) > 0},
		candidate{source: SourceConfig, value: cfg.EverestDirs, ok: len(cfg.EverestDirs) > 0},
		candidate{source: SourceDefault, value: []string{s.WorkDir}, ok: true},
	))
	for _, dir := range everest.Value.([]string) {
		abs, err := absPath(dir)
		if err != nil {
			return nil, err
		}
		s.EverestDirs = append(s.EverestDirs, abs)
	}

	schemas := add(pick("schemasDir",
		stringCandidate(SourceFlag, flags.SchemasDir),
		envCandidate(EnvSchemasDir),
		stringCandidate(SourceConfig, cfg.SchemasDir),
	))
	if schemas.Value != nil {
		if s.SchemasDir, err = absPath(schemas.Value.(string)); err != nil {
			return nil, err
		}
	}

	out := add(pick("outputDir",
		stringCandidate(SourceFlag, flags.OutputDir),
		envCandidate(EnvOutputDir),
		stringCandidate(SourceConfig, cfg.OutputDir),
		stringCandidate(SourceDefault, filepath.Join(s.WorkDir, "build", "generated")),
	))
	if s.OutputDir, err = absPath(out.Value.(string)); err != nil {
		return nil, err
	}

	clang := add(pick("clangFormat.file",
		stringCandidate(SourceFlag, flags.ClangFormatFile),
		envCandidate(EnvClangFormatFile),
		stringCandidate(SourceConfig, cfg.ClangFormat.File),
	))
	if clang.Value != nil {
		if s.ClangFormatFile, err = absPath(clang.Value.(string)); err != nil {
			return nil, err
		}
	}

	envDisable, envDisableSet, err := envBool(EnvDisableClangFormat)
	if err != nil {
		return nil, err
	}
	disable := add(pick("clangFormat.disabled",
		candidate{source: SourceFlag, value: flags.DisableClangFormat, ok: flags.Set["disable-clang-format"]},
		candidate{source: SourceEnv, value: envDisable, ok: envDisableSet},
		candidate{source: SourceConfig, value: cfg.ClangFormat.Disabled, ok: cfg.ClangFormat.Disabled},
		candidate{source: SourceDefault, value: false, ok: true},
	))
	s.DisableClangFormat = disable.Value.(bool)

	return s, nil
}

func envBool(name string) (value, set bool, err error) {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	if err != nil {
		return false, false, oerrors.NewValidationError(
			fmt.Sprintf("invalid boolean %q in %s", raw, name),
			"", "Use true or false")
	}
	return value, true, nil
}

func absPath(p string) (string, error) {
	expanded, err := ExpandPath(p)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolving path %s: %w", p, err)
	}
	return abs, nil
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	ConfigPath string
	Source     ConfigSource
	Shadowed   map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) EV_CLI_CONFIG env, (3) ~/.ev-cli/config.yaml
func ResolveConfigPath(flagValue string) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{Shadowed: make(map[ConfigSource]string)}

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	envValue := os.Getenv(EnvConfig)

	switch {
	case flagValue != "":
		result.ConfigPath, result.Source = flagValue, SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = paths.ConfigFile
	case envValue != "":
		result.ConfigPath, result.Source = envValue, SourceEnv
		result.Shadowed[SourceDefault] = paths.ConfigFile
	default:
		result.ConfigPath, result.Source = paths.ConfigFile, SourceDefault
	}
	return result, nil
}

// LogResolvedValues logs each resolution at debug level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
