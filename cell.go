// Inline string cells.
//
// A Cell is a length byte followed by Capacity bytes of UTF-8 data. A zero
// length byte marks a padding slot that has never held a string. The length
// must stay strictly below Capacity, so the longest storable string is
// MaxLen bytes.
package smallstr

import (
	"unicode/utf8"
	"unsafe"
)

// Cell sizing. Everything else about the layout is derived from these and
// LineWidth.
const (
	Capacity = 9            // data bytes per cell
	CellSize = 1 + Capacity // length byte + data
	MaxLen   = Capacity - 1 // longest storable string in bytes
)

// Cell holds one short string inline. The zero value is an uninitialized
// padding cell.
type Cell struct {
	n    uint8
	data [Capacity]byte
}

// Cells are byte arrays as far as the compiler is concerned: no internal
// padding, alignment of one.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(Cell{})-CellSize]
	_ = [1]struct{}{}[unsafe.Alignof(Cell{})-1]
)

// NewCell encodes s into a cell.
func NewCell(s string) (Cell, error) {
	if err := check(s); err != nil {
		return Cell{}, err
	}
	if err := validString(s); err != nil {
		return Cell{}, err
	}
	var c Cell
	c.n = uint8(len(s))
	copy(c.data[:], s)
	return c, nil
}

// check applies the length rules shared by encoding and lookup.
func check(s string) error {
	if len(s) == 0 {
		return ErrStringEmpty
	}
	if len(s) > MaxLen {
		return ErrStringTooBig
	}
	return nil
}

// String returns the stored string without validation. It is only
// meaningful on a cell produced by NewCell; a zero cell yields "".
func (c Cell) String() string {
	return string(c.data[:c.n])
}

// Checked returns the stored string after verifying the cell was
// initialized and holds well-formed UTF-8.
func (c Cell) Checked() (string, error) {
	if c.n == 0 {
		return "", ErrUninit
	}
	if int(c.n) > MaxLen {
		return "", ErrStringTooBig
	}
	if err := validBytes(c.data[:c.n]); err != nil {
		return "", err
	}
	return string(c.data[:c.n]), nil
}

// Len returns the stored string length in bytes.
func (c Cell) Len() int {
	return int(c.n)
}

// IsZero reports whether the cell is an uninitialized padding slot.
func (c Cell) IsZero() bool {
	return c.n == 0
}

// view aliases the cell bytes as a string. Only used on cells inside
// collection storage, which is never written after construction. Unlike
// the exported methods it needs the storage address, not a copy.
func (c *Cell) view() string {
	return unsafe.String(&c.data[0], int(c.n))
}

// equal compares the cell content with q without allocating.
func (c *Cell) equal(q string) bool {
	return int(c.n) == len(q) && string(c.data[:c.n]) == q
}

func validString(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &UTF8Error{Offset: i}
		}
		i += size
	}
	return nil
}

func validBytes(b []byte) error {
	if utf8.Valid(b) {
		return nil
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return &UTF8Error{Offset: i}
		}
		i += size
	}
	return nil
}
