package repos

import "errors"

// ErrNotFound is returned when an id does not resolve to a stored row.
// Handlers map it to a 404.
var ErrNotFound = errors.New("not found")
