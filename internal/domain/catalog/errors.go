package catalog

import "errors"

// ErrCatalogUnavailable is returned when the champion catalog cannot be built
// or fetched. Startup treats it as fatal.
var ErrCatalogUnavailable = errors.New("catalog unavailable")
