package httpapi

import "github.com/cockroachdb/errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
