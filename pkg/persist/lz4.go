package persist

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// lz4Extension is appended to the wrapped codec's extension.
const lz4Extension = ".lz4"

// Block modes stored in the first byte of a compressed stream.
const (
	blockRaw        byte = 0
	blockCompressed byte = 1
)

// maxExpansion bounds how much one compressed byte can expand.
const maxExpansion = 255

// ErrCorruptBlock is returned when a compressed stream cannot be decoded.
var ErrCorruptBlock = errors.New("persist: corrupt lz4 block")

// LZ4Codec compresses the output of another codec as one LZ4 block.
//
// Layout: mode byte, uvarint length of the uncompressed payload, payload.
// Payloads LZ4 cannot shrink are stored raw.
type LZ4Codec struct {
	Inner Codec
}

// NewLZ4Codec wraps inner with LZ4 block compression.
func NewLZ4Codec(inner Codec) *LZ4Codec {
	return &LZ4Codec{Inner: inner}
}

// Encode implements Codec.Encode.
func (c *LZ4Codec) Encode(w io.Writer, state any) error {
	var plain bytes.Buffer

	err := c.Inner.Encode(&plain, state)
	if err != nil {
		return err
	}

	compressed := make([]byte, lz4.CompressBlockBound(plain.Len()))

	written, err := lz4.CompressBlock(plain.Bytes(), compressed, nil)
	if err != nil {
		return fmt.Errorf("lz4 compress: %w", err)
	}

	mode, payload := blockCompressed, compressed[:written]
	if written == 0 {
		mode, payload = blockRaw, plain.Bytes()
	}

	header := binary.AppendUvarint([]byte{mode}, uint64(plain.Len()))

	_, err = w.Write(append(header, payload...))
	if err != nil {
		return fmt.Errorf("lz4 write: %w", err)
	}

	return nil
}

// Decode implements Codec.Decode.
func (c *LZ4Codec) Decode(r io.Reader, state any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("lz4 read: %w", err)
	}

	plain, err := uncompress(data)
	if err != nil {
		return err
	}

	return c.Inner.Decode(bytes.NewReader(plain), state)
}

// Extension implements Codec.Extension.
func (c *LZ4Codec) Extension() string {
	return c.Inner.Extension() + lz4Extension
}

func uncompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty stream", ErrCorruptBlock)
	}

	mode := data[0]

	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad length header", ErrCorruptBlock)
	}

	payload := data[1+n:]

	switch mode {
	case blockRaw:
		if uint64(len(payload)) != size {
			return nil, fmt.Errorf("%w: raw length mismatch", ErrCorruptBlock)
		}

		return payload, nil
	case blockCompressed:
		if size > uint64(len(payload))*maxExpansion {
			return nil, fmt.Errorf("%w: implausible length %d", ErrCorruptBlock, size)
		}

		plain := make([]byte, size)

		written, err := lz4.UncompressBlock(payload, plain)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}

		if uint64(written) != size {
			return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrCorruptBlock, size, written)
		}

		return plain, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %d", ErrCorruptBlock, mode)
	}
}
