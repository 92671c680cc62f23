// Collection construction and lookup.
//
// Values are laid out in insertion order, CellsPerLine to a line. The last
// line may be partially filled; its trailing cells stay zero and are never
// read. Lookup validates the query, then scans cells in storage order and
// returns the first exact match.
package smallstr

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"
)

// Collection is an immutable, fixed-size set of short strings. Copies share
// the same read-only storage.
type Collection struct {
	lines []line
	n     int // live slots
}

// New builds a collection holding values in order. Construction is atomic:
// if any value is rejected the first error is returned and no collection is
// produced. Errors match ErrStringEmpty, ErrStringTooBig or ErrInvalidUTF8
// under errors.Is.
func New(values []string) (Collection, error) {
	return NewWithConfig(values, Config{})
}

// NewWithConfig is New with explicit options.
func NewWithConfig(values []string, config Config) (Collection, error) {
	config = config.withDefaults()
	log := config.Logger

	c, err := build(values)
	if err == nil && config.RejectDuplicates {
		err = unique(values)
	}
	if err != nil {
		log.Debug("collection rejected",
			zap.Int("size", len(values)),
			zap.Error(err),
		)
		return Collection{}, err
	}

	log.Debug("collection built",
		zap.Int("size", c.n),
		zap.Int("lines", len(c.lines)),
		zap.Int("line_width", LineWidth),
	)
	return c, nil
}

// MustNew is like New but panics on invalid input. It is meant for
// package-level variables built from literals, where a bad value is a
// programming error.
func MustNew(values ...string) Collection {
	c, err := New(values)
	if err != nil {
		panic(fmt.Sprintf("smallstr: MustNew: %v", err))
	}
	return c
}

// build partitions values into lines. Full groups go through newLine; the
// final partial group is encoded cell by cell over a zeroed line.
func build(values []string) (Collection, error) {
	count := (len(values) + CellsPerLine - 1) / CellsPerLine
	lines := allocLines(count)

	for i := range count {
		start := i * CellsPerLine
		end := start + CellsPerLine
		if end <= len(values) {
			l, err := newLine(values[start:end], start)
			if err != nil {
				return Collection{}, err
			}
			lines[i] = l
			continue
		}
		for j, s := range values[start:] {
			cell, err := NewCell(s)
			if err != nil {
				return Collection{}, &slotError{slot: start + j, err: err}
			}
			lines[i].cells[j] = cell
		}
	}
	return Collection{lines: lines, n: len(values)}, nil
}

// unique reports the first repeated value.
func unique(values []string) error {
	seen := make(map[string]int, len(values))
	for i, s := range values {
		if first, ok := seen[s]; ok {
			return fmt.Errorf("%w: %q at slots %d and %d", ErrDuplicate, s, first, i)
		}
		seen[s] = i
	}
	return nil
}

// Find returns the stored string equal to q. The result aliases collection
// storage and is valid for the life of the program.
func (c Collection) Find(q string) (string, error) {
	i, err := c.FindIndex(q)
	if err != nil {
		return "", err
	}
	return c.cell(i).view(), nil
}

// FindIndex returns the slot of the first stored string equal to q.
// Queries that could never be stored fail with ErrStringEmpty or
// ErrStringTooBig before any scan.
func (c Collection) FindIndex(q string) (int, error) {
	if err := check(q); err != nil {
		return -1, err
	}
	slot := 0
	for li := range c.lines {
		cells := &c.lines[li].cells
		for ci := range cells {
			if slot == c.n {
				return -1, ErrMatchNotFound
			}
			if cells[ci].equal(q) {
				return slot, nil
			}
			slot++
		}
	}
	return -1, ErrMatchNotFound
}

// Contains reports whether q is stored.
func (c Collection) Contains(q string) bool {
	_, err := c.FindIndex(q)
	return err == nil
}

// Index returns a copy of the cell at slot i. It panics if i is not a live
// slot.
func (c Collection) Index(i int) Cell {
	if i < 0 || i >= c.n {
		panic(fmt.Sprintf("smallstr: index %d out of range for collection of length %d", i, c.n))
	}
	return *c.cell(i)
}

func (c Collection) cell(i int) *Cell {
	return &c.lines[i/CellsPerLine].cells[i%CellsPerLine]
}

// Size returns the number of values the collection was built from.
func (c Collection) Size() int {
	return c.n
}

// Len returns the number of live slots. It always equals Size.
func (c Collection) Len() int {
	return c.n
}

// Lines returns the number of cache lines backing the collection.
func (c Collection) Lines() int {
	return len(c.lines)
}

// All iterates live slots in storage order.
func (c Collection) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := range c.n {
			if !yield(i, c.cell(i).view()) {
				return
			}
		}
	}
}

// Strings returns the stored values in storage order in a new slice.
func (c Collection) Strings() []string {
	out := make([]string, 0, c.n)
	for _, s := range c.All() {
		out = append(out, s)
	}
	return out
}

// Sorted returns a new collection holding the same values in ascending
// byte order. Slot numbers in the result differ from c.
func (c Collection) Sorted() Collection {
	values := c.Strings()
	slices.Sort(values)
	sorted, err := build(values)
	if err != nil {
		// Values came out of valid cells; reaching this means storage was
		// damaged after construction.
		panic(fmt.Sprintf("smallstr: Sorted: %v", err))
	}
	return sorted
}
