// Package models holds the catalog's domain entities and their invariants.
// The same structs are mapped by gorm for the relational backend.
package models

import "errors"

// ErrInvalid is wrapped by every constructor or setter that rejects its input.
var ErrInvalid = errors.New("invalid value")
