package buffer

import "fmt"

// Default configuration values.
const (
	// DefaultInitialCapacity is the backing storage size a Buffer starts with.
	DefaultInitialCapacity = 8 * 1024
	// DefaultGrowthFactor is the multiplier applied when the backing storage grows.
	DefaultGrowthFactor = 2
)

// Config holds construction parameters for a Buffer.
type Config struct {
	InitialCapacity int // starting size of the backing storage
	GrowthFactor    int // backing storage multiplier on growth (minimum 2)
}

// Buffer is a growable, contiguous byte accumulator with cheap
// front consumption.
//
// Valid, unconsumed data occupies buf[start:len(buf)]; the region
// buf[len(buf):cap(buf)] is spare capacity available for appends.
// Consume advances start without copying; the consumed prefix is
// reclaimed lazily by compaction so repeated small consumes stay cheap.
//
// A Buffer is owned by exactly one reader or writer and is not safe
// for concurrent use.
type Buffer struct {
	buf    []byte // data is buf[start:], spare is buf[len(buf):cap(buf)]
	start  int
	growth int
}

// New creates a Buffer with the given initial capacity.
// A capacity <= 0 selects DefaultInitialCapacity.
func New(capacity int) *Buffer {
	return NewWithConfig(Config{InitialCapacity: capacity})
}

// NewWithConfig creates a Buffer with explicit configuration,
// applying defaults for zero values.
func NewWithConfig(cfg Config) *Buffer {
	if cfg.InitialCapacity <= 0 {
		cfg.InitialCapacity = DefaultInitialCapacity
	}
	if cfg.GrowthFactor < 2 {
		cfg.GrowthFactor = DefaultGrowthFactor
	}
	return &Buffer{
		buf:    make([]byte, 0, cfg.InitialCapacity),
		growth: cfg.GrowthFactor,
	}
}

// Len returns the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.buf) - b.start
}

// Cap returns the total size of the backing storage.
func (b *Buffer) Cap() int {
	return cap(b.buf)
}

// Bytes returns the unconsumed bytes as a zero-copy view.
// The view is invalidated by any mutating call on the Buffer.
func (b *Buffer) Bytes() []byte {
	return b.buf[b.start:]
}

// Append copies p onto the tail, growing the backing storage if the
// spare capacity is insufficient.
func (b *Buffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	b.ensure(len(p))
	b.buf = append(b.buf, p...)
}

// AppendByte copies a single byte onto the tail.
func (b *Buffer) AppendByte(c byte) {
	b.ensure(1)
	b.buf = append(b.buf, c)
}

// Consume advances the window start by n, discarding the first n
// unconsumed bytes. n > Len() is a contract violation and panics.
func (b *Buffer) Consume(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: consume %d of %d unconsumed bytes", n, b.Len()))
	}
	b.start += n
	if b.start == len(b.buf) {
		// Window emptied; repack for free.
		b.buf = b.buf[:0]
		b.start = 0
	}
}

// Truncate discards all but the first n unconsumed bytes.
// n > Len() is a contract violation and panics.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("buffer: truncate to %d of %d unconsumed bytes", n, b.Len()))
	}
	b.buf = b.buf[:b.start+n]
	if b.Len() == 0 {
		b.buf = b.buf[:0]
		b.start = 0
	}
}

// Reset discards all unconsumed bytes, keeping the backing storage.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.start = 0
}

// WritableTail returns a spare region of at least min bytes at the
// tail, growing the backing storage if needed. Bytes written into the
// region become part of the unconsumed window only after Extend.
func (b *Buffer) WritableTail(min int) []byte {
	if min < 1 {
		min = 1
	}
	b.ensure(min)
	return b.buf[len(b.buf):cap(b.buf)]
}

// Extend commits n bytes previously written into WritableTail's
// region. n beyond the spare capacity panics.
func (b *Buffer) Extend(n int) {
	if n < 0 || len(b.buf)+n > cap(b.buf) {
		panic(fmt.Sprintf("buffer: extend %d beyond spare capacity %d", n, cap(b.buf)-len(b.buf)))
	}
	b.buf = b.buf[:len(b.buf)+n]
}

// ensure makes room for at least n more bytes at the tail. The
// consumed prefix is repacked in place when doing so frees enough
// space and the prefix dominates the storage; otherwise the storage
// grows by the configured factor.
func (b *Buffer) ensure(n int) {
	spare := cap(b.buf) - len(b.buf)
	if spare >= n {
		return
	}
	live := b.Len()
	if b.start > 0 && b.start >= cap(b.buf)/2 && spare+b.start >= n {
		b.compact()
		return
	}
	need := live + n
	newCap := cap(b.buf)
	if newCap == 0 {
		newCap = DefaultInitialCapacity
	}
	for newCap < need {
		newCap *= b.growthFactor()
	}
	grown := make([]byte, live, newCap)
	copy(grown, b.buf[b.start:])
	b.buf = grown
	b.start = 0
}

// compact copies the unconsumed window to offset 0, reclaiming the
// consumed prefix without reallocating.
func (b *Buffer) compact() {
	if b.start == 0 {
		return
	}
	live := copy(b.buf, b.buf[b.start:])
	b.buf = b.buf[:live]
	b.start = 0
}

func (b *Buffer) growthFactor() int {
	if b.growth < 2 {
		return DefaultGrowthFactor
	}
	return b.growth
}
