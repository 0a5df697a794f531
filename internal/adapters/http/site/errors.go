package site

import "errors"

// Error constants.
var (
	ErrRender  = errors.New("lobby page render failed")
	ErrSession = errors.New("lobby session unavailable")
)
