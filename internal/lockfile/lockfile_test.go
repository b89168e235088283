//go:build !windows

package lockfile

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestWithLockRunsFn(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".iotprov.lock")
	ran := false
	err := WithLock(path, func() error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("WithLock error: %v", err)
	}
	if !ran {
		t.Fatal("fn did not run")
	}
}

func TestWithLockPropagatesFnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".iotprov.lock")
	want := errors.New("boom")
	err := WithLock(path, func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("expected fn error, got %v", err)
	}
}

func TestWithLockTimesOutWhenContended(t *testing.T) {
	origFlock := flockFn
	origTimeout := lockWaitTimeout
	origSleep := lockSleep
	t.Cleanup(func() {
		flockFn = origFlock
		lockWaitTimeout = origTimeout
		lockSleep = origSleep
	})

	flockFn = func(fd int, how int) error {
		if how&unix.LOCK_UN != 0 {
			return nil
		}
		return unix.EWOULDBLOCK
	}
	lockWaitTimeout = 10 * time.Millisecond
	lockSleep = func(time.Duration) {}

	path := filepath.Join(t.TempDir(), ".iotprov.lock")
	err := WithLock(path, func() error {
		t.Fatal("fn must not run when the lock cannot be acquired")
		return nil
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWithLockSurfacesUnexpectedFlockError(t *testing.T) {
	origFlock := flockFn
	t.Cleanup(func() { flockFn = origFlock })
	flockFn = func(fd int, how int) error {
		if how&unix.LOCK_UN != 0 {
			return nil
		}
		return unix.EBADF
	}

	path := filepath.Join(t.TempDir(), ".iotprov.lock")
	if err := WithLock(path, func() error { return nil }); err == nil {
		t.Fatal("expected flock error")
	}
}
