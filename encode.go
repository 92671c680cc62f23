// Serialised forms of a collection.
//
// The binary form is the in-memory layout behind a 12 byte header:
//
//	"sstr" | version (1) | line width (1) | reserved (2) | count (uint32 LE)
//
// followed by the raw lines. Decoding never trusts the payload: every live
// cell goes through Checked and every slot past the count must be all zero
// bytes. Line padding is copied but never read.
//
// The text form is the binary form Zstd-compressed and Ascii85-encoded, so
// it can sit in a config file or a flag value. JSON is a plain array of
// strings rebuilt through New.
package smallstr

import (
	"bytes"
	"encoding/ascii85"
	"encoding/binary"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// Binary header layout.
const (
	headerSize    = 12
	formatVersion = 1
)

var magic = [4]byte{'s', 's', 't', 'r'}

// Shared encoder/decoder, both safe for concurrent use. Construction is
// expensive relative to the payloads here.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// MarshalBinary implements encoding.BinaryMarshaler.
func (c Collection) MarshalBinary() ([]byte, error) {
	raw := lineBytes(c.lines)
	buf := make([]byte, headerSize, headerSize+len(raw))
	copy(buf, magic[:])
	buf[4] = formatVersion
	buf[5] = LineWidth
	binary.LittleEndian.PutUint32(buf[8:], uint32(c.n))
	return append(buf, raw...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error the
// receiver is left unchanged.
func (c *Collection) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize || !bytes.Equal(data[:4], magic[:]) {
		return fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if data[4] != formatVersion {
		return fmt.Errorf("%w: version %d", ErrCorrupt, data[4])
	}
	if data[5] != LineWidth {
		return fmt.Errorf("%w: line width %d, built for %d", ErrCorrupt, data[5], LineWidth)
	}

	// The count is checked against the payload in 64-bit arithmetic before
	// it becomes an int, so it cannot wrap on 32-bit platforms.
	raw := uint64(binary.LittleEndian.Uint32(data[8:]))
	payload := data[headerSize:]
	if (raw+CellsPerLine-1)/CellsPerLine*LineWidth != uint64(len(payload)) {
		return fmt.Errorf("%w: %d bytes for %d values", ErrCorrupt, len(payload), raw)
	}
	n := int(raw)
	count := len(payload) / LineWidth

	lines := allocLines(count)
	copy(lineBytes(lines), payload)
	decoded := Collection{lines: lines, n: n}

	for i := range count * CellsPerLine {
		cell := decoded.cell(i)
		if i >= n {
			if *cell != (Cell{}) {
				return fmt.Errorf("%w: slot %d past count %d is populated", ErrCorrupt, i, n)
			}
			continue
		}
		if _, err := cell.Checked(); err != nil {
			return fmt.Errorf("%w: slot %d: %w", ErrCorrupt, i, err)
		}
	}

	*c = decoded
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Collection) MarshalText() ([]byte, error) {
	raw, err := c.MarshalBinary()
	if err != nil {
		return nil, err
	}
	compressed := zstdEncoder.EncodeAll(raw, nil)

	var encoded bytes.Buffer
	enc := ascii85.NewEncoder(&encoded)
	// bytes.Buffer.Write never errors; Close flushes the trailing group.
	_, _ = enc.Write(compressed)
	_ = enc.Close()
	return encoded.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Collection) UnmarshalText(text []byte) error {
	dec := ascii85.NewDecoder(bytes.NewReader(text))
	compressed, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("%w: ascii85: %w", ErrCorrupt, err)
	}
	raw, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
	}
	return c.UnmarshalBinary(raw)
}

// MarshalJSON encodes the collection as an array of strings.
func (c Collection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Strings())
}

// UnmarshalJSON rebuilds the collection from an array of strings with the
// same validation as New.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	decoded, err := New(values)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
