package release

import (
	"errors"
	"fmt"
)

// IllegalTransitionError is returned when a stage change leaves the path
// none -> alpha -> beta -> stable.
type IllegalTransitionError struct {
	From    Version
	To      StageChange
	Message string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.From, e.To, e.Message)
}

// IsIllegalTransition returns true if the error is an IllegalTransitionError.
func IsIllegalTransition(err error) bool {
	var it *IllegalTransitionError
	return errors.As(err, &it)
}

// Next applies req to current and returns the resulting version.
//
// Stage changes: alpha advances an alpha or starts at a1 from a final release;
// beta advances a beta or starts at b1 from an alpha; stable strips the suffix
// of a prerelease. A bump increments its field, zeroes the lower ones and
// carries the suffix of a stage change requested alongside it.
func Next(current Version, req Request) (Version, error) {
	if req.IsZero() {
		return Version{}, ErrNoTransitionRequested
	}

	stage, number, err := nextStage(current, req.Stage)
	if err != nil {
		return Version{}, err
	}

	var next Version
	switch req.Bump {
	case BumpMajor:
		next = fromCore(current.core().IncMajor())
	case BumpMinor:
		next = fromCore(current.core().IncMinor())
	case BumpPatch:
		next = fromCore(current.core().IncPatch())
	default:
		next = fromCore(current.core())
	}

	next.Stage = stage
	next.Number = number
	return next, nil
}

// nextStage computes the suffix for a stage change against the current version.
func nextStage(current Version, change StageChange) (Stage, int, error) {
	switch change {
	case StageChangeAlpha:
		switch current.Stage {
		case StageAlpha:
			return StageAlpha, current.Number + 1, nil
		case StageBeta:
			return 0, 0, &IllegalTransitionError{From: current, To: change, Message: "a beta prerelease cannot go back to alpha"}
		default:
			return StageAlpha, 1, nil
		}
	case StageChangeBeta:
		switch current.Stage {
		case StageAlpha:
			return StageBeta, 1, nil
		case StageBeta:
			return StageBeta, current.Number + 1, nil
		default:
			return 0, 0, &IllegalTransitionError{From: current, To: change, Message: "only an alpha prerelease can move to beta"}
		}
	case StageChangeStable:
		if current.Stage == StageNone {
			return 0, 0, &IllegalTransitionError{From: current, To: change, Message: "version is not a prerelease"}
		}
		return StageNone, 0, nil
	default:
		return StageNone, 0, nil
	}
}
