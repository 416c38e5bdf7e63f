package session

import "errors"

// Sentinel failures surfaced by mutation operations. Every operation is
// total: on any of these the model is left exactly as it was.
var (
	ErrPageNotFound    = errors.New("session: page not found")
	ErrSectionNotFound = errors.New("session: section not found")
	ErrItemNotFound    = errors.New("session: item not found")
	ErrSectionLocked   = errors.New("session: section is locked")
)
