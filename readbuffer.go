package recordcodec

import "fmt"

// readBuffer is a growable byte store with two parallel stacks: marks
// (saved absolute read positions) and ends (saved per-layer end
// offsets). Each recursive decode call pushes its payload as a new
// layer whose remaining() is exactly that payload's length, so the
// inner loop can never read past into the outer stream; popping
// restores the outer call's own position (spec §4.4.3, §4.4.4, §9
// "Unbounded recursion vs stack depth"). Adapted from the teacher's
// single-layer Reader in reader.go, which this package extends with
// the layer stack the spec's nested decode needs.
type readBuffer struct {
	storage []byte
	pos     int
	marks   []int
	ends    []int
}

func newReadBuffer() *readBuffer {
	return &readBuffer{}
}

// reset discards all storage and stack state, readying the buffer for
// a fresh top-level Decode.
func (b *readBuffer) reset() {
	b.storage = b.storage[:0]
	b.pos = 0
	b.marks = b.marks[:0]
	b.ends = b.ends[:0]
}

func (b *readBuffer) currentEnd() int {
	if len(b.ends) == 0 {
		return 0
	}
	return b.ends[len(b.ends)-1]
}

// pushLayer writes payload into the backing storage right after the
// current layer's end, dropping whatever popped layers left there, and
// makes it the active layer: remaining() is scoped to exactly
// len(payload) bytes until the matching popLayer.
func (b *readBuffer) pushLayer(payload []byte) {
	priorEnd := b.currentEnd()
	b.marks = append(b.marks, b.pos)
	b.storage = append(b.storage[:priorEnd], payload...)
	b.ends = append(b.ends, priorEnd+len(payload))
	b.pos = priorEnd
}

// popLayer restores the read position saved by the matching pushLayer
// and discards the layer's end offset.
func (b *readBuffer) popLayer() {
	last := len(b.marks) - 1
	b.pos = b.marks[last]
	b.marks = b.marks[:last]
	b.ends = b.ends[:last]
}

// remaining returns the number of unread bytes in the active layer.
func (b *readBuffer) remaining() int {
	return b.currentEnd() - b.pos
}

// readByte returns the next byte in the active layer. Fails with
// ErrTruncatedInput if the layer is exhausted.
func (b *readBuffer) readByte() (byte, error) {
	if b.remaining() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte, %d remain", ErrTruncatedInput, b.remaining())
	}
	v := b.storage[b.pos]
	b.pos++
	return v, nil
}

// readBytes returns the next n bytes in the active layer. Fails with
// ErrTruncatedInput if fewer than n bytes remain.
func (b *readBuffer) readBytes(n int) ([]byte, error) {
	if b.remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, %d remain", ErrTruncatedInput, n, b.remaining())
	}
	v := b.storage[b.pos : b.pos+n]
	b.pos += n
	return v, nil
}

// readUint16 reads a 2-byte big-endian length prefix.
func (b *readBuffer) readUint16() (uint16, error) {
	v, err := b.readBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(v[0])<<8 | uint16(v[1]), nil
}
