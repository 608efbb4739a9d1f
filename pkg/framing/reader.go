package framing

import (
	"errors"
	"io"

	"github.com/ssargent/framewire/pkg/buffer"
)

// Default configuration values.
const (
	// DefaultReadChunkSize is the minimum spare tail requested from the
	// buffer before each underlying read.
	DefaultReadChunkSize = 4 * 1024
	// DefaultMaxFrameSize bounds how many bytes may be buffered while
	// waiting for the decoder to recognize a frame (1MB).
	DefaultMaxFrameSize = 1024 * 1024
)

// ReaderConfig holds configuration for a Reader.
type ReaderConfig struct {
	InitialCapacity int // initial buffer size (0 = buffer default)
	GrowthFactor    int // buffer growth multiplier (0 = buffer default)
	ReadChunkSize   int // minimum region offered to each underlying read (0 = default)
	MaxFrameSize    int // buffered-byte bound before FrameSizeError (0 = default, negative = unlimited)
}

// Reader turns an ordered byte source into a pull-based sequence of
// decoded messages. It owns its buffer exclusively and must be driven
// from a single goroutine.
type Reader[M any] struct {
	src io.Reader
	dec Decoder[M]
	buf *buffer.Buffer
	cfg ReaderConfig

	eof   bool
	fatal error
}

// NewReader creates a Reader over src using dec to extract frames.
// Zero config fields select defaults.
func NewReader[M any](src io.Reader, dec Decoder[M], cfg ReaderConfig) *Reader[M] {
	return &Reader[M]{
		src: src,
		dec: dec,
		buf: buffer.NewWithConfig(buffer.Config{
			InitialCapacity: cfg.InitialCapacity,
			GrowthFactor:    cfg.GrowthFactor,
		}),
		cfg: cfg,
	}
}

// Next returns the next decoded message.
//
// Buffered bytes are always offered to the decoder before a read is
// issued, so frames already held in memory are drained without
// touching the transport. Next blocks inside the underlying Read when
// more bytes are needed.
//
// Errors:
//   - io.EOF: clean end of stream, no leftover bytes.
//   - *TruncatedFrameError: stream ended mid-frame. Terminal.
//   - *TransportError: the underlying read failed. Terminal.
//   - *FrameSizeError: buffered bytes exceeded MaxFrameSize. Terminal.
//   - *DecodeError: the decoder rejected the data. The Reader remains
//     usable; the caller decides whether to Discard bytes and retry.
//
// After a terminal error Next keeps returning that error until Reset.
func (r *Reader[M]) Next() (M, error) {
	var zero M
	if r.fatal != nil {
		return zero, r.fatal
	}
	for {
		if r.buf.Len() > 0 {
			examined := r.buf.Len()
			msg, ok, err := r.decode()
			if err != nil {
				return zero, r.asDecodeError(err, examined)
			}
			if ok {
				return msg, nil
			}
			if r.eof {
				// One final decode attempt was just made; the leftover
				// bytes can never form a frame.
				r.fatal = &TruncatedFrameError{Buffered: r.buf.Len()}
				return zero, r.fatal
			}
			if limit := r.maxFrameSize(); limit > 0 && r.buf.Len() > limit {
				r.fatal = &FrameSizeError{Buffered: r.buf.Len(), Limit: limit}
				return zero, r.fatal
			}
		} else if r.eof {
			return zero, io.EOF
		}

		if err := r.fill(); err != nil {
			return zero, err
		}
	}
}

// fill performs one underlying read into the buffer's spare tail.
func (r *Reader[M]) fill() error {
	tail := r.buf.WritableTail(r.readChunkSize())
	n, err := r.src.Read(tail)
	if n > 0 {
		r.buf.Extend(n)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.eof = true
			return nil
		}
		r.fatal = &TransportError{Op: "read", Err: err}
		return r.fatal
	}
	return nil
}

// decode invokes the decoder, switching to DecodeEOF for the final
// attempt when the source is exhausted and the decoder supports it.
func (r *Reader[M]) decode() (M, bool, error) {
	if r.eof {
		if d, ok := r.dec.(EOFDecoder[M]); ok {
			return d.DecodeEOF(r.buf)
		}
	}
	return r.dec.Decode(r.buf)
}

func (r *Reader[M]) asDecodeError(err error, examined int) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Examined: examined, Err: err}
}

// Buffered returns the number of unconsumed bytes held by the Reader.
func (r *Reader[M]) Buffered() int {
	return r.buf.Len()
}

// Discard drops up to n buffered bytes and returns how many were
// dropped. It is the explicit resynchronization hook after a
// *DecodeError: the Reader itself never throws bytes away.
func (r *Reader[M]) Discard(n int) int {
	if n > r.buf.Len() {
		n = r.buf.Len()
	}
	if n > 0 {
		r.buf.Consume(n)
	}
	return n
}

// Reset clears buffered bytes and any terminal error, allowing the
// Reader to be reused after the caller has recovered the underlying
// transport. It does not touch the transport itself.
func (r *Reader[M]) Reset() {
	r.buf.Reset()
	r.eof = false
	r.fatal = nil
}

func (r *Reader[M]) readChunkSize() int {
	if r.cfg.ReadChunkSize > 0 {
		return r.cfg.ReadChunkSize
	}
	return DefaultReadChunkSize
}

func (r *Reader[M]) maxFrameSize() int {
	if r.cfg.MaxFrameSize == 0 {
		return DefaultMaxFrameSize
	}
	return r.cfg.MaxFrameSize
}
