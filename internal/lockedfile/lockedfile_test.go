package lockedfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestLockSequential(t *testing.T) {
	mu := MutexAt(filepath.Join(t.TempDir(), ".lock"))
	for i := 0; i < 3; i++ {
		unlock, err := mu.Lock()
		if err != nil {
			t.Fatalf("Lock() attempt %d error = %v", i, err)
		}
		unlock()
	}
}

func TestLockExcludes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lock")
	probe := filepath.Join(dir, "probe")

	// Each Lock opens its own descriptor, so goroutines contend on the
	// file lock, not on the Mutex value. While holding the lock each
	// goroutine creates and removes a probe file with O_EXCL; any
	// overlap makes the exclusive create fail.
	const n = 8
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := MutexAt(path).Lock()
			if err != nil {
				t.Error(err)
				return
			}
			defer unlock()
			f, err := os.OpenFile(probe, os.O_CREATE|os.O_EXCL, 0o666)
			if err != nil {
				t.Errorf("lock did not exclude: %v", err)
				return
			}
			f.Close()
			time.Sleep(time.Millisecond)
			if err := os.Remove(probe); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}

func TestLockMissingPath(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Lock() with empty path did not panic")
		}
	}()
	new(Mutex).Lock()
}
