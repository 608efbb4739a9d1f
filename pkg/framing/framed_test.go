package framing

import (
	"bytes"
	"io"
	"net"
	"testing"
)

// loopback is a duplex handle whose writes become its own reads: what
// the writer half flushes, the reader half decodes.
type loopback struct {
	bytes.Buffer
	closed int
}

func (l *loopback) Close() error {
	l.closed++
	return nil
}

func TestFramed_RoundTrip(t *testing.T) {
	lb := &loopback{}
	f := NewFramed[[]byte](lb, u16Decoder{}, u16Encoder{}, FramedConfig{})

	msgs := []string{"first", "", "a longer third frame"}
	for _, m := range msgs {
		if err := f.Send([]byte(m)); err != nil {
			t.Fatalf("Send(%q) error: %v", m, err)
		}
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}

	for _, want := range msgs {
		got, err := f.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if string(got) != want {
			t.Fatalf("Next() = %q, want %q", got, want)
		}
	}
	if _, err := f.Next(); err != io.EOF {
		t.Fatalf("Next() after draining = %v, want io.EOF", err)
	}
}

func TestFramed_HalvesAreIndependent(t *testing.T) {
	lb := &loopback{}
	f := NewFramed[[]byte](lb, u16Decoder{}, u16Encoder{}, FramedConfig{})

	// Fail the write half; the read half must keep working.
	f.Writer().dst = &abortWriter{err: io.ErrClosedPipe}
	if err := f.Send([]byte("x")); err != nil {
		t.Fatalf("Send() error: %v", err)
	}
	if err := f.Flush(); err == nil {
		t.Fatal("Flush() on a broken sink succeeded")
	}

	lb.Write(encodeU16Frame("still readable"))
	msg, err := f.Next()
	if err != nil {
		t.Fatalf("Next() after writer failure: %v", err)
	}
	if string(msg) != "still readable" {
		t.Fatalf("Next() = %q", msg)
	}
}

func TestFramed_CloseDedupesSharedHandle(t *testing.T) {
	lb := &loopback{}
	f := NewFramed[[]byte](lb, u16Decoder{}, u16Encoder{}, FramedConfig{})
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if lb.closed != 1 {
		t.Fatalf("shared handle closed %d times, want 1", lb.closed)
	}
}

func TestFramedSplit_ClosesBothHandles(t *testing.T) {
	r := &loopback{}
	w := &loopback{}
	f := NewFramedSplit[[]byte](r, w, u16Decoder{}, u16Encoder{}, FramedConfig{})
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if r.closed != 1 || w.closed != 1 {
		t.Fatalf("handles closed %d/%d times, want 1/1", r.closed, w.closed)
	}
}

func TestFramed_OverTCP(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	defer ln.Close()

	// Echo peer: frames in, same frames out.
	done := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			done <- err
			return
		}
		defer conn.Close()
		peer := NewFramed[[]byte](conn, u16Decoder{}, u16Encoder{}, FramedConfig{})
		for {
			msg, err := peer.Next()
			if err == io.EOF {
				done <- nil
				return
			}
			if err != nil {
				done <- err
				return
			}
			if err := peer.Send(msg); err != nil {
				done <- err
				return
			}
			if err := peer.Flush(); err != nil {
				done <- err
				return
			}
		}
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	f := NewFramed[[]byte](conn, u16Decoder{}, u16Encoder{}, FramedConfig{})

	for _, want := range []string{"ping", "a somewhat longer message", ""} {
		if err := f.Send([]byte(want)); err != nil {
			t.Fatalf("Send() error: %v", err)
		}
		if err := f.Flush(); err != nil {
			t.Fatalf("Flush() error: %v", err)
		}
		got, err := f.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if string(got) != want {
			t.Fatalf("echo = %q, want %q", got, want)
		}
	}

	conn.Close()
	if err := <-done; err != nil {
		t.Fatalf("echo peer: %v", err)
	}
}
