package framing

import (
	"errors"
	"io"

	"github.com/ssargent/framewire/pkg/buffer"
)

// DefaultHighWaterMark is the buffered-byte threshold at which Send
// triggers an automatic Flush (32KB).
const DefaultHighWaterMark = 32 * 1024

// WriterConfig holds configuration for a Writer.
type WriterConfig struct {
	InitialCapacity int // initial buffer size (0 = buffer default)
	GrowthFactor    int // buffer growth multiplier (0 = buffer default)
	HighWaterMark   int // auto-flush threshold (0 = default, negative = never auto-flush)
}

// Writer turns messages into buffered wire bytes and drains them to an
// ordered byte sink. It owns its buffer exclusively and must be driven
// from a single goroutine.
type Writer[M any] struct {
	dst io.Writer
	enc Encoder[M]
	buf *buffer.Buffer
	cfg WriterConfig

	fatal error
}

// NewWriter creates a Writer over dst using enc to serialize messages.
// Zero config fields select defaults.
func NewWriter[M any](dst io.Writer, enc Encoder[M], cfg WriterConfig) *Writer[M] {
	return &Writer[M]{
		dst: dst,
		enc: enc,
		buf: buffer.NewWithConfig(buffer.Config{
			InitialCapacity: cfg.InitialCapacity,
			GrowthFactor:    cfg.GrowthFactor,
		}),
		cfg: cfg,
	}
}

// Send encodes msg into the internal buffer. It does not by itself
// guarantee transport delivery; call Flush for that. When the buffered
// bytes reach the high-water mark, Send flushes automatically to bound
// memory.
//
// A failed encode leaves the buffer exactly as it was: previously
// queued frames are not corrupted and will still be delivered.
func (w *Writer[M]) Send(msg M) error {
	if w.fatal != nil {
		return w.fatal
	}
	mark := w.buf.Len()
	if err := w.enc.Encode(msg, w.buf); err != nil {
		w.buf.Truncate(mark)
		return w.asEncodeError(err)
	}
	if hwm := w.highWaterMark(); hwm > 0 && w.buf.Len() >= hwm {
		return w.Flush()
	}
	return nil
}

// Flush drains the buffered bytes to the underlying sink with repeated
// writes until the buffer is empty or a write fails. Only bytes the
// sink actually accepted are consumed, so a partial write leaves the
// remainder queued for the next attempt.
//
// A write error is returned as a *TransportError and is terminal:
// bytes already accepted are assumed delivered or lost (the
// transport's problem), the rest stay buffered, and the Writer refuses
// further use until Reset.
func (w *Writer[M]) Flush() error {
	if w.fatal != nil {
		return w.fatal
	}
	for w.buf.Len() > 0 {
		n, err := w.dst.Write(w.buf.Bytes())
		if n > 0 {
			w.buf.Consume(n)
		}
		if err != nil {
			w.fatal = &TransportError{Op: "write", Err: err}
			return w.fatal
		}
	}
	return nil
}

// Buffered returns the number of encoded bytes awaiting delivery.
func (w *Writer[M]) Buffered() int {
	return w.buf.Len()
}

// Reset drops all buffered bytes and clears any terminal error,
// allowing the Writer to be reused after the caller has recovered the
// underlying transport.
func (w *Writer[M]) Reset() {
	w.buf.Reset()
	w.fatal = nil
}

func (w *Writer[M]) asEncodeError(err error) error {
	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}
	return &EncodeError{Err: err}
}

func (w *Writer[M]) highWaterMark() int {
	if w.cfg.HighWaterMark == 0 {
		return DefaultHighWaterMark
	}
	return w.cfg.HighWaterMark
}
