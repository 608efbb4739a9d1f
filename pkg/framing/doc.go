// Package framing provides synchronous message framing over ordered
// byte transports.
//
// The package sits between an application's typed messages and a raw
// byte stream (typically a TCP connection, but any io.Reader/io.Writer
// pair qualifies). Given a user-supplied Decoder and Encoder it manages
// buffering, partial-read and partial-write bookkeeping, and frame
// boundary detection, so application code deals only in whole messages.
//
// # Reading
//
// Reader drives the decode loop: it reads from the underlying source
// into an internal buffer and repeatedly offers the buffered bytes to
// the Decoder until one complete frame is extracted.
//
//	r := framing.NewReader[[]byte](conn, codec.NewLengthPrefixCodec(2), framing.ReaderConfig{})
//	for {
//	    msg, err := r.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    handle(msg)
//	}
//
// The decoder is always tried before a read is issued, so multiple
// frames delivered in a single underlying read are drained one by one
// without touching the transport again. Frames may span any number of
// underlying reads; the decoded output never depends on how the
// transport chunks the bytes.
//
// # Writing
//
// Writer drives the encode loop: Send appends one message's wire bytes
// to an internal buffer, and Flush drains the buffer to the underlying
// sink, advancing past only the bytes the sink actually accepted.
// A partial write leaves the remainder intact for the next attempt.
//
//	w := framing.NewWriter[[]byte](conn, codec.NewLengthPrefixCodec(2), framing.WriterConfig{})
//	if err := w.Send(msg); err != nil {
//	    return err
//	}
//	if err := w.Flush(); err != nil {
//	    return err
//	}
//
// # Duplex use
//
// Framed composes a Reader and a Writer over one full-duplex transport.
// The two halves share nothing: each owns its own buffer, and closing
// one side never implicitly closes the other.
//
// # Concurrency
//
// Everything here is synchronous and blocking. There are no internal
// goroutines, no locks, and no timeouts; cancellation and deadlines
// belong to the underlying transport (for example net.Conn deadlines).
// A Reader, Writer, or Framed instance must be driven from a single
// goroutine, or externally synchronized by the caller.
//
// # Errors
//
// Every failure is returned to the immediate caller; nothing is logged,
// retried, or swallowed internally. See TransportError, DecodeError,
// EncodeError, TruncatedFrameError, and FrameSizeError for the
// taxonomy. Clean end of stream is io.EOF. An instance that has
// surfaced a TransportError or FrameSizeError is terminally failed and
// refuses further use until Reset is called.
package framing
