package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrInvalidNamespace = errors.New("invalid metrics namespace")
)
