//go:build windows

package lockfile

// WithLock runs fn without locking. Concurrent runs against the same folder
// are a unix workflow; on Windows the tool is driven interactively one run
// at a time.
func WithLock(path string, fn func() error) error {
	return fn()
}
