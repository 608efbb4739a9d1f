// Package codec provides ready-made frame codecs for use with the
// framing package.
//
// The framing core mandates no wire format; these codecs are optional
// conveniences covering the three most common self-delimiting schemes.
//
// # Length-prefix framing
//
// LengthPrefixCodec writes a big-endian length prefix followed by the
// payload:
//
//	[Length(2 or 4, big-endian)][Payload]
//
// The prefix width is chosen at construction (2 bytes for payloads up
// to 64KB-1, 4 bytes for larger). A configurable payload limit guards
// against malicious or broken peers declaring absurd lengths.
//
// # Checksummed framing
//
// ChecksumCodec extends length-prefix framing with a CRC32 (IEEE)
// integrity guard over the payload:
//
//	[Length(4, little-endian)][CRC32(4, little-endian)][Payload]
//
// A checksum mismatch surfaces as a decode error carrying
// ErrChecksumMismatch; the corrupt bytes stay buffered so the caller
// decides whether to resynchronize or abandon the stream.
//
// # Line framing
//
// LineCodec frames newline-delimited text. Decoding strips the
// trailing newline and an optional carriage return; an unterminated
// final line is delivered when the stream closes. Encoding appends a
// newline and rejects messages that already contain one.
//
// # Usage
//
//	c := codec.NewLengthPrefixCodec(2)
//	f := framing.NewFramed[[]byte](conn, c, c, framing.FramedConfig{})
//
//	if err := f.Send([]byte("hello")); err != nil {
//	    return err
//	}
//	if err := f.Flush(); err != nil {
//	    return err
//	}
//	reply, err := f.Next()
//
// All codecs in this package are stateless and safe to share between
// any number of readers and writers.
package codec
