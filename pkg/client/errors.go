package client

import "errors"

// Sentinel errors returned by the client. Wrapped errors keep the details,
// match them with errors.Is.
var (
	ErrDaemonNotRunning = errors.New("battnotify daemon is not running")
	ErrPermissionDenied = errors.New("permission denied on the daemon socket")
	ErrNotFound         = errors.New("daemon does not serve this endpoint")
)
