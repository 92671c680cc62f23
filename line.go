// Packed lines.
//
// A line is CellsPerLine cells followed by padding, exactly LineWidth bytes.
// Lines contain no pointers, so a run of them can be carved out of a byte
// buffer and aligned by hand; Go offers no way to declare an alignment
// larger than a word on the type itself.
package smallstr

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Line geometry derived from LineWidth and CellSize.
const (
	CellsPerLine = LineWidth / CellSize
	linePadding  = LineWidth - CellsPerLine*CellSize
)

// HostLineWidth returns the cache-line size golang.org/x/sys/cpu assumes
// for the GOARCH this binary was built for. It is a build-time constant,
// not a measurement of the running CPU. Compare it with LineWidth to pick
// the build tag.
func HostLineWidth() int {
	return int(unsafe.Sizeof(cpu.CacheLinePad{}))
}

type line struct {
	cells [CellsPerLine]Cell
	_     [linePadding]byte
}

// A line must fill its cache line exactly. A mismatch fails the build:
// too large indexes out of range, too small overflows uintptr.
var (
	_ = [1]struct{}{}[unsafe.Sizeof(line{})-LineWidth]
	_ = [1]struct{}{}[unsafe.Alignof(line{})-1]
)

// newLine encodes exactly CellsPerLine values. The first failure aborts the
// line and is reported against slot base+i.
func newLine(values []string, base int) (line, error) {
	var l line
	if len(values) != CellsPerLine {
		return l, fmt.Errorf("line needs %d values, got %d", CellsPerLine, len(values))
	}
	for i, s := range values {
		c, err := NewCell(s)
		if err != nil {
			return line{}, &slotError{slot: base + i, err: err}
		}
		l.cells[i] = c
	}
	return l, nil
}

// allocLines returns n zeroed lines whose first byte sits on a LineWidth
// boundary. The backing array is over-allocated by LineWidth-1 bytes and
// the slice starts at the first aligned offset; the interior pointer keeps
// the whole buffer reachable.
func allocLines(n int) []line {
	if n == 0 {
		return nil
	}
	buf := make([]byte, n*LineWidth+LineWidth-1)
	off := 0
	if r := uintptr(unsafe.Pointer(unsafe.SliceData(buf))) % LineWidth; r != 0 {
		off = int(LineWidth - r)
	}
	return unsafe.Slice((*line)(unsafe.Pointer(&buf[off])), n)
}

// lineBytes views lines as their raw bytes.
func lineBytes(lines []line) []byte {
	if len(lines) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(lines))), len(lines)*LineWidth)
}

// slotError carries the position of a failed encode while matching the
// underlying sentinel under errors.Is.
type slotError struct {
	slot int
	err  error
}

func (e *slotError) Error() string {
	return fmt.Sprintf("slot %d: %v", e.slot, e.err)
}

func (e *slotError) Unwrap() error {
	return e.err
}
