// Package lock serializes relbump runs on one repository.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// DefaultFile is the lock file name used when none is configured.
const DefaultFile = ".relbump.lock"

// ErrLocked is returned when another run already holds the lock.
var ErrLocked = errors.New("another relbump run is in progress")

// RunLock is an exclusive, non-blocking file lock.
type RunLock struct {
	fl *flock.Flock
}

// Path returns the lock file path.
func (l *RunLock) Path() string {
	return l.fl.Path()
}

// Acquire takes the lock at path, creating the file and its directory if
// needed. It fails immediately with ErrLocked when the lock is held.
func Acquire(path string) (*RunLock, error) {
	if path == "" {
		path = DefaultFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lock directory: %w", err)
		}
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock file: %s)", ErrLocked, path)
	}
	return &RunLock{fl: fl}, nil
}

// Release unlocks and removes the lock file.
func (l *RunLock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	if err := os.Remove(l.fl.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing lock file: %w", err)
	}
	return nil
}
