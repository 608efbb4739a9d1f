package framing

import "io"

// FramedConfig holds configuration for both halves of a Framed.
type FramedConfig struct {
	Reader ReaderConfig
	Writer WriterConfig
}

// Framed composes a Reader and a Writer over one full-duplex
// transport. The two halves share no state: each owns its own buffer,
// and an error on one half does not affect the other.
type Framed[M any] struct {
	reader *Reader[M]
	writer *Writer[M]

	rc io.Closer // close handle for the read half, if any
	wc io.Closer // close handle for the write half, if any
}

// NewFramed creates a Framed over a single duplex handle. dec and enc
// are commonly the same codec value implementing both contracts.
func NewFramed[M any](rw io.ReadWriter, dec Decoder[M], enc Encoder[M], cfg FramedConfig) *Framed[M] {
	f := &Framed[M]{
		reader: NewReader[M](rw, dec, cfg.Reader),
		writer: NewWriter[M](rw, enc, cfg.Writer),
	}
	if c, ok := rw.(io.Closer); ok {
		f.rc = c
		f.wc = c
	}
	return f
}

// NewFramedSplit creates a Framed over separate read and write
// handles, for transports that expose the two directions as distinct
// objects.
func NewFramedSplit[M any](r io.Reader, w io.Writer, dec Decoder[M], enc Encoder[M], cfg FramedConfig) *Framed[M] {
	f := &Framed[M]{
		reader: NewReader[M](r, dec, cfg.Reader),
		writer: NewWriter[M](w, enc, cfg.Writer),
	}
	if c, ok := r.(io.Closer); ok {
		f.rc = c
	}
	if c, ok := w.(io.Closer); ok {
		f.wc = c
	}
	return f
}

// Next returns the next decoded message from the read half.
func (f *Framed[M]) Next() (M, error) {
	return f.reader.Next()
}

// Send encodes msg into the write half's buffer.
func (f *Framed[M]) Send(msg M) error {
	return f.writer.Send(msg)
}

// Flush drains the write half's buffer to the transport.
func (f *Framed[M]) Flush() error {
	return f.writer.Flush()
}

// Reader exposes the read half for direct use.
func (f *Framed[M]) Reader() *Reader[M] {
	return f.reader
}

// Writer exposes the write half for direct use.
func (f *Framed[M]) Writer() *Writer[M] {
	return f.writer
}

// Close is a convenience joint close: it closes whichever underlying
// handles support io.Closer, once each even when both halves share one
// handle. A full shutdown remains the transport's responsibility;
// buffered unsent bytes are not flushed.
func (f *Framed[M]) Close() error {
	var first error
	if f.rc != nil {
		if err := f.rc.Close(); err != nil {
			first = err
		}
	}
	if f.wc != nil && f.wc != f.rc {
		if err := f.wc.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
