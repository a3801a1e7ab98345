//go:build !unix && !windows

package lockedfile

import (
	"errors"
	"os"
)

var errNotSupported = errors.New("file locking not supported on this platform")

func lockFile(f *os.File) error {
	return errNotSupported
}

func unlockFile(f *os.File) error {
	return nil
}
