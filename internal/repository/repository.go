// Package repository holds the per-entity collection accessors. Every read
// takes the owning user's id explicitly; there is no ambient current-user
// state anywhere below the HTTP layer.
package repository

import "errors"

// ErrNotFound is returned when an item does not exist or belongs to a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")
