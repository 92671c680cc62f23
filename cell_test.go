// Cell encode/decode tests.
//
// A cell is the unit every other layer builds on. Two properties matter:
// anything NewCell accepts must come back byte-for-byte, and anything it
// rejects must be rejected with the right sentinel so callers can tell an
// empty value from an oversized one.
package smallstr

import (
	"errors"
	"strings"
	"testing"
)

// TestCellRoundTrip verifies every accepted length decodes to the input
// through both the unchecked and checked paths.
func TestCellRoundTrip(t *testing.T) {
	inputs := []string{"a", "ab", "tag", "é", "日本", "12345678", "a\x00b"}
	for n := 1; n <= MaxLen; n++ {
		inputs = append(inputs, strings.Repeat("x", n))
	}

	for _, s := range inputs {
		c, err := NewCell(s)
		if err != nil {
			t.Fatalf("NewCell(%q): %v", s, err)
		}
		if got := c.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
		got, err := c.Checked()
		if err != nil {
			t.Errorf("Checked(%q): %v", s, err)
		}
		if got != s {
			t.Errorf("Checked() = %q, want %q", got, s)
		}
		if c.Len() != len(s) {
			t.Errorf("Len() = %d, want %d", c.Len(), len(s))
		}
		if c.IsZero() {
			t.Errorf("IsZero() = true for %q", s)
		}
	}
}

// TestCellEmpty verifies the empty string is refused. A zero length byte
// is the padding marker, so an empty value would be indistinguishable
// from an unused slot.
func TestCellEmpty(t *testing.T) {
	_, err := NewCell("")
	if !errors.Is(err, ErrStringEmpty) {
		t.Errorf("NewCell(\"\") = %v, want ErrStringEmpty", err)
	}
}

// TestCellTooBig verifies the bound sits at Capacity: MaxLen bytes fit,
// one more does not.
func TestCellTooBig(t *testing.T) {
	if _, err := NewCell(strings.Repeat("x", MaxLen)); err != nil {
		t.Errorf("NewCell at MaxLen: %v", err)
	}
	for _, n := range []int{Capacity, Capacity + 1, 20, 300} {
		_, err := NewCell(strings.Repeat("x", n))
		if !errors.Is(err, ErrStringTooBig) {
			t.Errorf("NewCell(len %d) = %v, want ErrStringTooBig", n, err)
		}
	}
}

// TestCellLengthInBytes verifies the bound counts bytes, not runes. Four
// three-byte runes are 12 bytes and must not fit.
func TestCellLengthInBytes(t *testing.T) {
	_, err := NewCell("日本語字")
	if !errors.Is(err, ErrStringTooBig) {
		t.Errorf("NewCell(12 bytes) = %v, want ErrStringTooBig", err)
	}
}

// TestCellInvalidUTF8 verifies malformed input is rejected at encode time
// with the offset of the first bad byte.
func TestCellInvalidUTF8(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{"\xff", 0},
		{"ab\xfe", 2},
		{"é\xc3", 2},
	}
	for _, tt := range tests {
		_, err := NewCell(tt.in)
		if !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("NewCell(%q) = %v, want ErrInvalidUTF8", tt.in, err)
			continue
		}
		var ue *UTF8Error
		if !errors.As(err, &ue) {
			t.Fatalf("NewCell(%q) error is %T, want *UTF8Error", tt.in, err)
		}
		if ue.Offset != tt.offset {
			t.Errorf("NewCell(%q) offset = %d, want %d", tt.in, ue.Offset, tt.offset)
		}
	}
}

// TestCellZero verifies the zero value reads as uninitialized through the
// checked path and as "" through the unchecked one.
func TestCellZero(t *testing.T) {
	var c Cell
	if !c.IsZero() {
		t.Error("zero Cell: IsZero() = false")
	}
	if _, err := c.Checked(); !errors.Is(err, ErrUninit) {
		t.Errorf("Checked() on zero cell = %v, want ErrUninit", err)
	}
	if s := c.String(); s != "" {
		t.Errorf("String() on zero cell = %q, want empty", s)
	}
}

// TestCellCheckedDamaged verifies Checked catches cells that NewCell could
// never have produced: an oversized length byte and non-UTF-8 bytes.
func TestCellCheckedDamaged(t *testing.T) {
	c := Cell{n: Capacity}
	if _, err := c.Checked(); !errors.Is(err, ErrStringTooBig) {
		t.Errorf("Checked() with length %d = %v, want ErrStringTooBig", Capacity, err)
	}

	c = Cell{n: 3, data: [Capacity]byte{'a', 0xff, 'b'}}
	_, err := c.Checked()
	var ue *UTF8Error
	if !errors.As(err, &ue) || ue.Offset != 1 {
		t.Errorf("Checked() = %v, want UTF8Error at offset 1", err)
	}
}

// TestCellStringIsCopy verifies String does not alias the cell, so a
// caller-owned Cell can be reassigned without changing earlier results.
func TestCellStringIsCopy(t *testing.T) {
	c, _ := NewCell("first")
	s := c.String()
	c, _ = NewCell("other")
	if s != "first" {
		t.Errorf("String() result changed to %q after reassignment", s)
	}
	_ = c
}
