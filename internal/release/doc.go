// Package release computes the next release version.
//
// Versions have the form MAJOR.MINOR.PATCH with an optional alpha (aN) or
// beta (bN) suffix. A Request combines an optional field bump with an optional
// prerelease stage change; Next applies it along the stage path
// none -> alpha -> beta -> stable and rejects every other move.
package release
