package remote

import "errors"

// Error sentinels for the per-flow failure taxonomy. All are fatal to the
// flow that hits them; callers match with errors.Is.
var (
	// ErrConnect wraps network-level connection failures.
	ErrConnect = errors.New("connect failed")
	// ErrAuth wraps credential rejections during the handshake.
	ErrAuth = errors.New("authentication failed")
	// ErrTransfer wraps upload and download failures.
	ErrTransfer = errors.New("transfer failed")
	// ErrExec wraps command dispatch failures. A remote command exiting
	// non-zero is not an ErrExec; only transport-level failures are.
	ErrExec = errors.New("command failed")
)
