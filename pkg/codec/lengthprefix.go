package codec

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ssargent/framewire/pkg/buffer"
	"github.com/ssargent/framewire/pkg/framing"
)

// Errors returned by the codecs in this package.
var (
	// ErrPayloadTooLarge is returned when a payload exceeds the codec's
	// configured or representable maximum.
	ErrPayloadTooLarge = errors.New("codec: payload too large")
	// ErrChecksumMismatch is returned when a frame's CRC32 does not
	// match its payload.
	ErrChecksumMismatch = errors.New("codec: checksum mismatch")
	// ErrEmbeddedNewline is returned when a line message contains the
	// delimiter itself.
	ErrEmbeddedNewline = errors.New("codec: message contains newline")
)

// DefaultMaxPayload is the payload limit applied when none is
// configured (1MB).
const DefaultMaxPayload = 1024 * 1024

// LengthPrefixCodec frames payloads with a big-endian length prefix of
// 2 or 4 bytes. It implements framing.Decoder[[]byte] and
// framing.Encoder[[]byte]. The zero value is not valid; use
// NewLengthPrefixCodec.
type LengthPrefixCodec struct {
	prefixLen  int
	maxPayload int
}

// NewLengthPrefixCodec creates a codec with the given prefix width.
// prefixLen must be 2 or 4; anything else panics, since it is a
// programming error rather than runtime input. The payload limit
// defaults to DefaultMaxPayload, clamped to what the prefix can
// represent.
func NewLengthPrefixCodec(prefixLen int) *LengthPrefixCodec {
	return NewLengthPrefixCodecWithLimit(prefixLen, DefaultMaxPayload)
}

// NewLengthPrefixCodecWithLimit creates a codec with an explicit
// payload limit.
func NewLengthPrefixCodecWithLimit(prefixLen, maxPayload int) *LengthPrefixCodec {
	if prefixLen != 2 && prefixLen != 4 {
		panic(fmt.Sprintf("codec: unsupported length prefix width %d", prefixLen))
	}
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}
	if prefixLen == 2 && maxPayload > 0xffff {
		maxPayload = 0xffff
	}
	return &LengthPrefixCodec{prefixLen: prefixLen, maxPayload: maxPayload}
}

// Decode extracts one length-prefixed frame from src. The payload is
// copied out, so it remains valid after the buffer is reused.
func (c *LengthPrefixCodec) Decode(src *buffer.Buffer) ([]byte, bool, error) {
	view := src.Bytes()
	if len(view) < c.prefixLen {
		return nil, false, nil
	}

	var size int
	switch c.prefixLen {
	case 2:
		size = int(binary.BigEndian.Uint16(view))
	default:
		size = int(binary.BigEndian.Uint32(view))
	}
	if size > c.maxPayload {
		return nil, false, &framing.DecodeError{
			Examined: c.prefixLen,
			Err:      fmt.Errorf("%w: declared %d bytes, limit %d", ErrPayloadTooLarge, size, c.maxPayload),
		}
	}
	if len(view) < c.prefixLen+size {
		return nil, false, nil
	}

	payload := make([]byte, size)
	copy(payload, view[c.prefixLen:c.prefixLen+size])
	src.Consume(c.prefixLen + size)
	return payload, true, nil
}

// Encode appends msg to dst as one length-prefixed frame.
func (c *LengthPrefixCodec) Encode(msg []byte, dst *buffer.Buffer) error {
	if len(msg) > c.maxPayload {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(msg), c.maxPayload)
	}
	switch c.prefixLen {
	case 2:
		var prefix [2]byte
		binary.BigEndian.PutUint16(prefix[:], uint16(len(msg)))
		dst.Append(prefix[:])
	default:
		var prefix [4]byte
		binary.BigEndian.PutUint32(prefix[:], uint32(len(msg)))
		dst.Append(prefix[:])
	}
	dst.Append(msg)
	return nil
}

// FrameOverhead returns the per-frame byte overhead added by the codec.
func (c *LengthPrefixCodec) FrameOverhead() int {
	return c.prefixLen
}
