// Package smallstr provides a fixed-capacity collection of short immutable
// strings packed into cache-line sized blocks.
//
// Each string lives inline in a Cell: one length byte followed by a small
// data buffer. Cells are grouped into lines that occupy exactly LineWidth
// bytes and start on a LineWidth boundary, so a vocabulary of a few dozen
// short keys spans only a handful of cache lines. Lookup is a linear scan
// over those lines. For the small, bounded sets this package targets (tags,
// symbol names, enum labels) that beats hashing and pointer chasing.
//
// A Collection is built once, atomically, and is immutable afterwards.
// It may be shared between goroutines without locking.
package smallstr

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Callers can use errors.Is to
// distinguish invalid input (ErrStringEmpty, ErrStringTooBig) from a valid
// query that is simply absent (ErrMatchNotFound) and from damaged storage
// (ErrUninit, ErrInvalidUTF8, ErrCorrupt).
var (
	ErrStringEmpty   = errors.New("string is empty")
	ErrStringTooBig  = errors.New("string exceeds inline capacity")
	ErrMatchNotFound = errors.New("no matching string")
	ErrUninit        = errors.New("cell is not initialized")
	ErrInvalidUTF8   = errors.New("invalid utf-8")
	ErrDuplicate     = errors.New("duplicate string")
	ErrCorrupt       = errors.New("corrupt encoding")
)

// UTF8Error reports the byte offset of the first invalid UTF-8 sequence.
// It matches ErrInvalidUTF8 under errors.Is.
type UTF8Error struct {
	Offset int
}

func (e *UTF8Error) Error() string {
	return fmt.Sprintf("invalid utf-8 at byte %d", e.Offset)
}

func (e *UTF8Error) Unwrap() error {
	return ErrInvalidUTF8
}
