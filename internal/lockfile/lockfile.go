//go:build !windows

// Package lockfile serializes runs that write into the same working folder.
package lockfile

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/iotprov/internal/messages"
)

var (
	flockFn   = unix.Flock
	lockSleep = time.Sleep

	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// WithLock acquires an exclusive lock on path, runs fn, and releases the
// lock. It polls for up to 30 seconds before giving up.
func WithLock(path string, fn func() error) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf(messages.LockOpenFmt, path, err)
	}
	defer file.Close()

	if err := acquire(file, path); err != nil {
		return err
	}
	defer func() {
		_ = flockFn(int(file.Fd()), unix.LOCK_UN)
	}()

	return fn()
}

// acquire polls a non-blocking flock until it succeeds or the wait times out.
func acquire(file *os.File, path string) error {
	deadline := time.Now().Add(lockWaitTimeout)
	for {
		err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return nil
		}
		if err != unix.EWOULDBLOCK && err != unix.EAGAIN {
			return fmt.Errorf(messages.LockAcquireFmt, path, err)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf(messages.LockTimeoutFmt, path)
		}
		lockSleep(lockPollEvery)
	}
}
