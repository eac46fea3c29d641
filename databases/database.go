// Package databases holds the in-memory tables and stores the app reads from. Nothing in here
// outlives the process.
package databases

import "errors"

// ErrNotFound is returned when a lookup matches nothing
var ErrNotFound = errors.New("not found")
