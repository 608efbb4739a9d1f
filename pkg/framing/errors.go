package framing

import "fmt"

// TransportError reports a failed read or write on the underlying
// transport. It is terminal for the half of the connection that
// surfaced it; retry policy belongs to the caller.
type TransportError struct {
	Op  string // "read" or "write"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("framing: transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// TruncatedFrameError reports that the stream ended while a partial,
// undecodable frame was still buffered. It is distinct from a clean
// end of stream (io.EOF with zero leftover bytes) and usually signals
// peer misbehavior or an abrupt disconnect.
type TruncatedFrameError struct {
	Buffered int // unconsumed bytes left at close
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("framing: stream closed with %d-byte partial frame", e.Buffered)
}

// DecodeError reports that the decoder rejected the buffered bytes as
// malformed. Examined is how many bytes of history the decoder looked
// at, so the caller can decide whether to resynchronize (for example
// via Reader.Discard) or abandon the stream.
type DecodeError struct {
	Examined int
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("framing: decode failed after examining %d bytes: %v", e.Examined, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports that the encoder could not represent a message.
// The write buffer is guaranteed to be unchanged by the failed attempt.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("framing: encode failed: %v", e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// FrameSizeError reports that the buffered unconsumed bytes exceeded
// the configured maximum frame size before the decoder recognized a
// complete frame. It is terminal for the stream unless the caller
// resets the Reader.
type FrameSizeError struct {
	Buffered int
	Limit    int
}

func (e *FrameSizeError) Error() string {
	return fmt.Sprintf("framing: %d buffered bytes exceed the %d-byte frame limit", e.Buffered, e.Limit)
}
