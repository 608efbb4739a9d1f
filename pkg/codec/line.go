package codec

import (
	"bytes"
	"strings"

	"github.com/ssargent/framewire/pkg/buffer"
)

// LineCodec frames newline-delimited text. Messages are strings
// without the delimiter; a trailing carriage return before the newline
// is stripped on decode. It implements framing.Decoder[string],
// framing.EOFDecoder[string], and framing.Encoder[string].
type LineCodec struct{}

// NewLineCodec creates a line codec.
func NewLineCodec() *LineCodec {
	return &LineCodec{}
}

// Decode extracts one newline-terminated line from src.
func (c *LineCodec) Decode(src *buffer.Buffer) (string, bool, error) {
	view := src.Bytes()
	i := bytes.IndexByte(view, '\n')
	if i < 0 {
		return "", false, nil
	}
	line := view[:i]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	msg := string(line)
	src.Consume(i + 1)
	return msg, true, nil
}

// DecodeEOF delivers an unterminated trailing line once the stream has
// closed, so peers that terminate the final frame by closing the
// connection are handled.
func (c *LineCodec) DecodeEOF(src *buffer.Buffer) (string, bool, error) {
	if msg, ok, err := c.Decode(src); ok || err != nil {
		return msg, ok, err
	}
	if src.Len() == 0 {
		return "", false, nil
	}
	view := src.Bytes()
	if len(view) > 0 && view[len(view)-1] == '\r' {
		view = view[:len(view)-1]
	}
	msg := string(view)
	src.Consume(src.Len())
	return msg, true, nil
}

// Encode appends msg and a newline to dst. Messages containing the
// delimiter are rejected, since they would decode as multiple frames.
func (c *LineCodec) Encode(msg string, dst *buffer.Buffer) error {
	if strings.ContainsRune(msg, '\n') {
		return ErrEmbeddedNewline
	}
	dst.Append([]byte(msg))
	dst.AppendByte('\n')
	return nil
}
