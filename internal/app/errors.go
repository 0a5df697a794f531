package service

import "errors"

// ErrNotStarted is returned by session operations before Start succeeded.
var ErrNotStarted = errors.New("service not started")
