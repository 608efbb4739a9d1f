package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/ssargent/framewire/pkg/buffer"
	"github.com/ssargent/framewire/pkg/framing"
)

// checksumHeaderLen is Length(4) + CRC32(4).
const checksumHeaderLen = 8

// ChecksumCodec frames payloads with a little-endian length and a
// CRC32 (IEEE) integrity guard:
//
//	[Length(4 LE)][CRC32(4 LE)][Payload]
//
// It implements framing.Decoder[[]byte] and framing.Encoder[[]byte].
type ChecksumCodec struct {
	maxPayload int
}

// NewChecksumCodec creates a checksummed codec. maxPayload <= 0
// selects DefaultMaxPayload.
func NewChecksumCodec(maxPayload int) *ChecksumCodec {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayload
	}
	return &ChecksumCodec{maxPayload: maxPayload}
}

// Decode extracts and verifies one frame from src. A checksum failure
// leaves the frame's bytes buffered: resynchronization is the
// caller's explicit decision.
func (c *ChecksumCodec) Decode(src *buffer.Buffer) ([]byte, bool, error) {
	view := src.Bytes()
	if len(view) < checksumHeaderLen {
		return nil, false, nil
	}

	size := int(binary.LittleEndian.Uint32(view))
	if size > c.maxPayload {
		return nil, false, &framing.DecodeError{
			Examined: 4,
			Err:      fmt.Errorf("%w: declared %d bytes, limit %d", ErrPayloadTooLarge, size, c.maxPayload),
		}
	}
	if len(view) < checksumHeaderLen+size {
		return nil, false, nil
	}

	want := binary.LittleEndian.Uint32(view[4:])
	body := view[checksumHeaderLen : checksumHeaderLen+size]
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, false, &framing.DecodeError{
			Examined: checksumHeaderLen + size,
			Err:      fmt.Errorf("%w: computed %08x, frame declares %08x", ErrChecksumMismatch, got, want),
		}
	}

	payload := make([]byte, size)
	copy(payload, body)
	src.Consume(checksumHeaderLen + size)
	return payload, true, nil
}

// Encode appends msg to dst as one checksummed frame.
func (c *ChecksumCodec) Encode(msg []byte, dst *buffer.Buffer) error {
	if len(msg) > c.maxPayload {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(msg), c.maxPayload)
	}
	var header [checksumHeaderLen]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(msg)))
	binary.LittleEndian.PutUint32(header[4:], crc32.ChecksumIEEE(msg))
	dst.Append(header[:])
	dst.Append(msg)
	return nil
}

// FrameOverhead returns the per-frame byte overhead added by the codec.
func (c *ChecksumCodec) FrameOverhead() int {
	return checksumHeaderLen
}
