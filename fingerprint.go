// Content fingerprints.
//
// A fingerprint is 16 hex characters identifying the stored values and
// their order. It covers each live cell's length byte and data bytes only,
// so padding and stale buffer bytes never change the result. Three
// algorithms are supported.
package smallstr

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithms. The numbers are stable so callers can store
// them next to a fingerprint.
const (
	AlgXXHash3 = 1 // used when alg is 0
	AlgFNV1a   = 2 // reproducible with any language's standard FNV-1a
	AlgBlake2b = 3 // for fingerprints compared across trust boundaries
)

// Fingerprint hashes the collection content with alg. Zero selects
// AlgXXHash3. An unknown algorithm yields "".
func (c Collection) Fingerprint(alg int) string {
	data := c.canonical()
	switch alg {
	case 0, AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(data))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}

// canonical concatenates length byte and data for each live slot.
func (c Collection) canonical() []byte {
	buf := make([]byte, 0, c.n*CellSize)
	for i := range c.n {
		cell := c.cell(i)
		buf = append(buf, cell.n)
		buf = append(buf, cell.data[:cell.n]...)
	}
	return buf
}
