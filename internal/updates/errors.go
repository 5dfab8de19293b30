package updates

import "errors"

var (
	ErrNotFound        = errors.New("update cycle not found")
	ErrCycleInProgress = errors.New("update cycle already in progress")
)
