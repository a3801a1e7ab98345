// Package lockedfile provides a file-based mutex for coordinating
// builds between processes.
package lockedfile

import (
	"fmt"
	"os"
)

// A Mutex guards a critical section by holding an exclusive lock on a
// file. The file is created if missing and never removed; holding the
// lock is what matters, not the file contents.
type Mutex struct {
	Path string
}

// MutexAt returns a Mutex backed by the file at the given path.
func MutexAt(path string) *Mutex {
	return &Mutex{Path: path}
}

// Lock acquires the lock, blocking until it is available, and returns
// the function that releases it.
func (mu *Mutex) Lock() (unlock func(), err error) {
	if mu.Path == "" {
		panic("lockedfile.Mutex: missing Path during Lock")
	}
	f, err := os.OpenFile(mu.Path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", mu.Path, err)
	}
	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}
