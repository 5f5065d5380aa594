package recordcodec

// growthIncrement is the minimum chunk the write buffer grows by on
// overflow, rounding the required growth up to a multiple of this
// (spec §4.4.2 "Buffer growth policy").
const growthIncrement = 4096

// writeBuffer is a growable scratch byte array with a stack of marks
// (saved insertion positions). One mark is pushed per recursive
// encode call so that call can copy its slice out and rewind, letting
// every level of encode reuse the same backing array (spec §4.4.2,
// §4.4.4, §9 "Shared scratch buffers across recursion") — adapted
// from the teacher's pooled, append-only Buffer in buffer.go, which
// this package extends with the mark stack the spec's recursive
// encode needs. Pooling happens one level up, at the Processor that
// owns a writeBuffer (see codec.go's processorPool), mirroring the
// teacher's own NewBufferFromPool/ReturnToPool pairing.
type writeBuffer struct {
	bytes []byte
	marks []int
}

func (b *writeBuffer) grow(extra int) {
	need := len(b.bytes) + extra
	if need <= cap(b.bytes) {
		return
	}
	newCap := cap(b.bytes)*2 + growthIncrement
	for newCap < need {
		newCap += growthIncrement
	}
	grown := make([]byte, len(b.bytes), newCap)
	copy(grown, b.bytes)
	b.bytes = grown
}

// writeByte appends a single byte.
func (b *writeBuffer) writeByte(v byte) {
	b.grow(1)
	b.bytes = append(b.bytes, v)
}

// write appends v in full.
func (b *writeBuffer) write(v []byte) {
	b.grow(len(v))
	b.bytes = append(b.bytes, v...)
}

// writeUint16 appends v as two big-endian bytes.
func (b *writeBuffer) writeUint16(v uint16) {
	b.grow(2)
	b.bytes = append(b.bytes, byte(v>>8), byte(v))
}

// pushMark records the current write position as the start of a new
// (possibly nested) record.
func (b *writeBuffer) pushMark() {
	b.marks = append(b.marks, len(b.bytes))
}

// popMark drops the topmost mark without otherwise touching the buffer.
func (b *writeBuffer) popMark() {
	b.marks = b.marks[:len(b.marks)-1]
}

// lastMark returns the topmost saved position.
func (b *writeBuffer) lastMark() int {
	return b.marks[len(b.marks)-1]
}

// goToLastMark rewinds the write position to the topmost mark,
// discarding everything written since.
func (b *writeBuffer) goToLastMark() {
	b.bytes = b.bytes[:b.lastMark()]
}

// copyFromLastMark returns a fresh copy of the bytes written since the
// topmost mark. The caller owns the returned slice.
func (b *writeBuffer) copyFromLastMark() []byte {
	src := b.bytes[b.lastMark():]
	out := make([]byte, len(src))
	copy(out, src)
	return out
}
