// Package config provides hierarchical configuration management for relbump using koanf.
// Configuration is loaded with priority: environment variables > project config (.relbump/config.yml)
// > user config (~/.config/relbump/config.yml) > defaults. A legacy .relbump.json project file is
// still read when no YAML project config exists.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. RELBUMP_LOG_LEVEL.
// A double underscore separates nested keys: RELBUMP_IMAGE__NAME sets image.name.
const EnvPrefix = "RELBUMP_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault ConfigSource = "default"
	SourceUser    ConfigSource = "user"
	SourceProject ConfigSource = "project"
	SourceEnv     ConfigSource = "env"
)

// Source is a configuration layer that contributed to the loaded config.
type Source struct {
	Kind ConfigSource
	Path string
}

// VersionSource locates the current version inside a file.
type VersionSource struct {
	Path string `koanf:"path" yaml:"path"`
	// Pattern is a regular expression with a named group "version".
	Pattern string `koanf:"pattern" yaml:"pattern"`
}

// Image configures files referencing a container image tagged with the version.
type Image struct {
	Name  string   `koanf:"name" yaml:"name"`
	Files []string `koanf:"files" yaml:"files"`
}

// Changelog is one changelog updated on release.
type Changelog struct {
	Path           string `koanf:"path" yaml:"path" validate:"required"`
	Name           string `koanf:"name" yaml:"name" validate:"required"`
	PendingHeading string `koanf:"pending_heading" yaml:"pending_heading" validate:"required"`
}

// AlphaFlags locates the TOML table holding alpha feature flags.
type AlphaFlags struct {
	File  string `koanf:"file" yaml:"file"`
	Table string `koanf:"table" yaml:"table"`
}

// History configures the release log written by 'relbump bump'.
type History struct {
	// File is the log location. Empty disables the history.
	File       string `koanf:"file" yaml:"file"`
	MaxEntries int    `koanf:"max_entries" yaml:"max_entries" validate:"min=0"`
}

// Configuration represents the relbump configuration
type Configuration struct {
	// CurrentVersion pins the current version. When empty it is read from VersionSource.
	CurrentVersion string        `koanf:"current_version" yaml:"current_version"`
	VersionSource  VersionSource `koanf:"version_source" yaml:"version_source"`
	// VersionFiles are paths or glob patterns whose first occurrence of the version is replaced.
	VersionFiles []string    `koanf:"version_files" yaml:"version_files"`
	Image        Image       `koanf:"image" yaml:"image"`
	Changelogs   []Changelog `koanf:"changelogs" yaml:"changelogs" validate:"dive"`

	CommitMessageFile string     `koanf:"commit_message_file" yaml:"commit_message_file"`
	ChangelogMarker   string     `koanf:"changelog_marker" yaml:"changelog_marker" validate:"required"`
	AlphaFlags        AlphaFlags `koanf:"alpha_flags" yaml:"alpha_flags"`

	History  History `koanf:"history" yaml:"history"`
	LockFile string  `koanf:"lock_file" yaml:"lock_file"`

	LogLevel  string `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" yaml:"log_format" validate:"oneof=text logfmt json"`

	// Sources lists the layers that were loaded, lowest priority first.
	Sources []Source `koanf:"-" yaml:"-"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relbump/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)
	sources := []Source{{Kind: SourceDefault}}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		path, err := loadUserConfig(k)
		if err != nil {
			return nil, err
		}
		if path != "" {
			sources = append(sources, Source{Kind: SourceUser, Path: path})
		}
	}

	path, err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings)
	if err != nil {
		return nil, err
	}
	if path != "" {
		sources = append(sources, Source{Kind: SourceProject, Path: path})
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	if hasEnvOverrides() {
		sources = append(sources, Source{Kind: SourceEnv})
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	cfg.Sources = sources
	return cfg, nil
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads ~/.config/relbump/config.yml when it exists and
// returns its path.
func loadUserConfig(k *koanf.Koanf) (string, error) {
	userYAMLPath, err := UserConfigPath()
	if err != nil || !fileExists(userYAMLPath) {
		return "", nil
	}
	if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
		return "", fmt.Errorf("loading user YAML config: %w", err)
	}
	return userYAMLPath, nil
}

// loadProjectConfig loads the project config (YAML preferred, legacy JSON
// supported) and returns the path that was used.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) (string, error) {
	projectYAMLPath := ProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
	}
	legacyProjectPath := LegacyProjectConfigPath()

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	switch {
	case projectYAMLExists:
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return "", fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
		return projectYAMLPath, nil
	case customPath != "":
		return "", fmt.Errorf("config file %s not found", customPath)
	case legacyProjectExists:
		if err := loadLegacyJSONConfig(k, legacyProjectPath, warningWriter, skipWarnings); err != nil {
			return "", fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		return legacyProjectPath, nil
	}
	return "", nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'relbump config migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'relbump config migrate' to remove the legacy file.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged layers
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func hasEnvOverrides() bool {
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, EnvPrefix) {
			return true
		}
	}
	return false
}

// envTransform converts environment variable names to config keys
// Example: RELBUMP_IMAGE__NAME -> image.name
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
