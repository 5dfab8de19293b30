package git

import "errors"

var (
	ErrRepositoryNotFound = errors.New("repository not found")
	ErrInvalidRepository  = errors.New("invalid repository")
	ErrFetchFailed        = errors.New("failed to fetch remote")
	ErrPullFailed         = errors.New("failed to pull repository")
	ErrRevisionNotFound   = errors.New("revision not found")
)
