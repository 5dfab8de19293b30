package runner

import "errors"

var (
	ErrAlreadyRunning = errors.New("process already running")
	ErrNotRunning     = errors.New("process not running")
	ErrStartFailed    = errors.New("failed to start process")
)
