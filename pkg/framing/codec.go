package framing

import "github.com/ssargent/framewire/pkg/buffer"

// Decoder extracts messages of type M from buffered bytes.
//
// Decode examines the unconsumed bytes of src and must do exactly one
// of the following:
//
//   - Recognize a complete frame: consume exactly that frame's bytes
//     from the front of src and return (msg, true, nil).
//   - Recognize the data is incomplete: consume nothing and return
//     (zero, false, nil). The Reader will fetch more bytes and call
//     Decode again.
//   - Recognize malformed data: return (zero, false, err). Returning a
//     *DecodeError lets the caller know how many bytes were examined;
//     plain errors are wrapped by the Reader. The decoder may consume
//     bytes on error, but the Reader never discards bytes on its own.
//
// Decode must be deterministic over the same prefix of the stream,
// unless the decoder deliberately carries state across calls (which is
// permitted).
type Decoder[M any] interface {
	Decode(src *buffer.Buffer) (M, bool, error)
}

// EOFDecoder is implemented by decoders for formats in which the end
// of the stream itself terminates a frame (for example, a final line
// with no trailing newline). When the underlying source is exhausted
// and buffered bytes remain, the Reader calls DecodeEOF instead of
// Decode for the final attempt. Returning (zero, false, nil) from
// DecodeEOF signals a truncated frame.
type EOFDecoder[M any] interface {
	DecodeEOF(src *buffer.Buffer) (M, bool, error)
}

// Encoder appends the wire representation of messages of type M to a
// buffer.
//
// Encode must be a pure append: it may grow dst but must never mutate
// bytes already present. If Encode returns an error the Writer rolls
// dst back to its prior state, so a failed encode never corrupts the
// outgoing byte stream.
type Encoder[M any] interface {
	Encode(msg M, dst *buffer.Buffer) error
}
