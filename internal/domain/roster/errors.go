package roster

import "errors"

// Sentinel errors for roster operations.
var (
	ErrInsufficientCatalogSize = errors.New("insufficient catalog size")
	ErrInvalidRosterSize       = errors.New("invalid roster size")
	ErrUnknownSlot             = errors.New("unknown slot")
	ErrUnknownChampion         = errors.New("unknown champion")
)
