package util

import "errors"

var (
	ErrMissingSession    = errors.New("missing smartschool session")
	ErrUpstreamAuth      = errors.New("smartschool rejected the session")
	ErrUpstreamStatus    = errors.New("unexpected smartschool response status")
	ErrUpstreamPayload   = errors.New("malformed smartschool payload")
	ErrUpstreamDown      = errors.New("smartschool unreachable")
	ErrUnknownSubject    = errors.New("subject not found in selected periods")
	ErrUnsupportedExport = errors.New("unsupported export format")
)
