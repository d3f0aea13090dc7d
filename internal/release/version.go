package release

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Stage is the prerelease stage of a Version.
type Stage int

const (
	// StageNone marks a final release.
	StageNone Stage = iota
	// StageAlpha marks an alpha prerelease (aN).
	StageAlpha
	// StageBeta marks a beta prerelease (bN).
	StageBeta
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageAlpha:
		return "alpha"
	case StageBeta:
		return "beta"
	default:
		return "none"
	}
}

func (s Stage) suffix() string {
	switch s {
	case StageAlpha:
		return "a"
	case StageBeta:
		return "b"
	default:
		return ""
	}
}

// Version is a release version. Number is positive exactly when Stage is not StageNone.
type Version struct {
	Major  uint64
	Minor  uint64
	Patch  uint64
	Stage  Stage
	Number int
}

// InvalidVersionError is returned when a version string cannot be parsed.
type InvalidVersionError struct {
	Input  string
	Reason string
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

var versionPattern = regexp.MustCompile(`^(\d+\.\d+\.\d+)(?:([ab])(\d+))?$`)

// Parse reads a version such as "1.2.3", "2.0.0a1" or "2.0.0b3".
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, &InvalidVersionError{Input: s, Reason: "expected MAJOR.MINOR.PATCH with optional aN or bN suffix"}
	}

	core, err := semver.StrictNewVersion(m[1])
	if err != nil {
		return Version{}, &InvalidVersionError{Input: s, Reason: err.Error()}
	}

	v := Version{Major: core.Major(), Minor: core.Minor(), Patch: core.Patch()}
	if m[2] == "" {
		return v, nil
	}

	n, err := strconv.Atoi(m[3])
	if err != nil || n < 1 {
		return Version{}, &InvalidVersionError{Input: s, Reason: "prerelease number must be a positive integer"}
	}
	v.Number = n
	if m[2] == "a" {
		v.Stage = StageAlpha
	} else {
		v.Stage = StageBeta
	}
	return v, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version with no separator before the suffix, e.g. "2.0.0b1".
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Stage == StageNone {
		return base
	}
	return fmt.Sprintf("%s%s%d", base, v.Stage.suffix(), v.Number)
}

// IsPrerelease returns true for alpha and beta versions.
func (v Version) IsPrerelease() bool {
	return v.Stage != StageNone
}

// core returns the numeric part as a semver version without prerelease data.
func (v Version) core() semver.Version {
	return *semver.New(v.Major, v.Minor, v.Patch, "", "")
}

func fromCore(c semver.Version) Version {
	return Version{Major: c.Major(), Minor: c.Minor(), Patch: c.Patch()}
}
