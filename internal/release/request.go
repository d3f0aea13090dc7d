package release

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoTransitionRequested is returned when neither a bump nor a stage change was asked for.
	ErrNoTransitionRequested = errors.New("no version transition requested: specify one of major, minor, patch, alpha, beta or stable")
	// ErrConflictingTransition is returned when more than one bump or more than one stage change was asked for.
	ErrConflictingTransition = errors.New("conflicting version transitions requested")
)

// Bump selects the version field to increment.
type Bump int

const (
	BumpNone Bump = iota
	BumpMajor
	BumpMinor
	BumpPatch
)

// String returns the bump name.
func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "none"
	}
}

// StageChange selects the prerelease stage to move to.
type StageChange int

const (
	StageChangeNone StageChange = iota
	StageChangeAlpha
	StageChangeBeta
	StageChangeStable
)

// String returns the stage change name.
func (s StageChange) String() string {
	switch s {
	case StageChangeAlpha:
		return "alpha"
	case StageChangeBeta:
		return "beta"
	case StageChangeStable:
		return "stable"
	default:
		return "none"
	}
}

// Request is a validated version transition: at most one bump and at most
// one stage change, and at least one of the two.
type Request struct {
	Bump  Bump
	Stage StageChange
}

// IsZero reports whether the request asks for nothing.
func (r Request) IsZero() bool {
	return r.Bump == BumpNone && r.Stage == StageChangeNone
}

// String describes the request, e.g. "minor", "alpha" or "major+beta".
func (r Request) String() string {
	switch {
	case r.Bump != BumpNone && r.Stage != StageChangeNone:
		return r.Bump.String() + "+" + r.Stage.String()
	case r.Bump != BumpNone:
		return r.Bump.String()
	default:
		return r.Stage.String()
	}
}

// NewRequest builds a Request from independent flags, as received from a
// command line. It is the only place flag combinations are checked.
func NewRequest(major, minor, patch, alpha, beta, stable bool) (Request, error) {
	var req Request

	bumps := 0
	for _, f := range []struct {
		set  bool
		bump Bump
	}{{major, BumpMajor}, {minor, BumpMinor}, {patch, BumpPatch}} {
		if f.set {
			bumps++
			req.Bump = f.bump
		}
	}

	stages := 0
	for _, f := range []struct {
		set   bool
		stage StageChange
	}{{alpha, StageChangeAlpha}, {beta, StageChangeBeta}, {stable, StageChangeStable}} {
		if f.set {
			stages++
			req.Stage = f.stage
		}
	}

	if bumps > 1 {
		return Request{}, fmt.Errorf("%w: only one of major, minor or patch may be given", ErrConflictingTransition)
	}
	if stages > 1 {
		return Request{}, fmt.Errorf("%w: only one of alpha, beta or stable may be given", ErrConflictingTransition)
	}
	if req.IsZero() {
		return Request{}, ErrNoTransitionRequested
	}
	return req, nil
}

// ParseBump maps "major", "minor" or "patch" (case-insensitive) to a Bump.
func ParseBump(s string) (Bump, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return BumpNone, fmt.Errorf("unknown bump %q (expected major, minor or patch)", s)
	}
}
