package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/spf13/afero"

	"github.com/relbump/relbump/internal/release"
)

// DefaultVersionPattern matches assignments such as `__version__ = "1.2.3"`
// or `version: 1.2.3b1`.
const DefaultVersionPattern = `(?m)^\s*(?:__version__|version)\s*[:=]\s*["']?(?P<version>\d+\.\d+\.\d+(?:[ab]\d+)?)`

// versionGroup is the named group holding the version in a version_source pattern.
const versionGroup = "version"

// ErrNoVersionSource is returned when neither current_version nor
// version_source.path is configured.
var ErrNoVersionSource = errors.New("no current version configured: set current_version or version_source.path")

// CurrentVersion returns the configured current version. An explicit
// current_version wins; otherwise the first match of version_source.pattern
// in version_source.path is parsed.
func CurrentVersion(fs afero.Fs, cfg *Configuration) (release.Version, error) {
	if cfg.CurrentVersion != "" {
		return release.Parse(cfg.CurrentVersion)
	}
	if cfg.VersionSource.Path == "" {
		return release.Version{}, ErrNoVersionSource
	}

	re, err := compileVersionPattern(cfg.VersionSource.Pattern)
	if err != nil {
		return release.Version{}, err
	}

	data, err := afero.ReadFile(fs, cfg.VersionSource.Path)
	if err != nil {
		return release.Version{}, fmt.Errorf("reading version source: %w", err)
	}

	m := re.FindSubmatch(data)
	if m == nil {
		return release.Version{}, fmt.Errorf("no version found in %s", cfg.VersionSource.Path)
	}
	return release.Parse(string(m[re.SubexpIndex(versionGroup)]))
}

func compileVersionPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = DefaultVersionPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid version pattern: %w", err)
	}
	if re.SubexpIndex(versionGroup) < 0 {
		return nil, fmt.Errorf("version pattern %q has no (?P<%s>...) group", pattern, versionGroup)
	}
	return re, nil
}
