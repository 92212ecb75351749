// Package repository holds the storage backends the in-memory stores mirror
// to and hydrate from.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("record not found")
