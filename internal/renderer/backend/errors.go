package backend

import "errors"

// ErrClosed is returned when presenting to a surface after Shutdown.
var ErrClosed = errors.New("backend: presenter closed")
