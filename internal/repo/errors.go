package repo

import "errors"

// ErrNotFound is returned when an operation references a missing primary key.
// It is a repository-level error: the store itself reports absence with a
// found flag, and the repositories add this single layer of translation.
var ErrNotFound = errors.New("not found")
