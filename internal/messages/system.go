package messages

// Filesystem and locking messages.
const (
	LockOpenFmt    = "failed to open lock file %s: %v"
	LockAcquireFmt = "failed to lock %s: %v"
	LockTimeoutFmt = "timed out waiting for lock on %s"

	TelegrafSyntaxFmt = "generated config is not valid TOML: %v"
)
