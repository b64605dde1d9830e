package server

import "errors"

var (
	ErrViewerClosed         = errors.New("viewer closed")
	ErrViewerAlreadyRunning = errors.New("viewer already running")
	ErrViewerNotRunning     = errors.New("viewer not running")
)
