package recordcodec

import (
	"fmt"
	"sync"
)

// Processor encodes a Struct to bytes and decodes bytes into a Struct
// against a known Schema. It owns the write and read scratch buffers
// that back encode/decode, reused across calls and across recursive
// nesting via the mark-stack and layer-stack disciplines in
// writebuffer.go and readbuffer.go (spec §4.4, §9 "Shared scratch
// buffers across recursion").
//
// A Processor is not safe for concurrent use: encode and decode both
// mutate its scratch buffers. Callers needing parallelism should use
// one Processor per worker or per logical stream (spec §5) — see
// processorPool below for a ready-made way to hand out exclusive
// instances, mirroring the teacher's sync.Pool-backed Buffer.
type Processor struct {
	wb *writeBuffer
	rb *readBuffer
}

// NewProcessor returns a Processor with fresh scratch buffers.
func NewProcessor() *Processor {
	return &Processor{wb: &writeBuffer{}, rb: newReadBuffer()}
}

var processorPool = sync.Pool{
	New: func() any { return NewProcessor() },
}

// NewProcessorFromPool obtains a Processor from a shared pool. Call
// ReturnToPool when finished; the instance returned is exclusive to
// the caller until then, satisfying the one-processor-per-worker
// model in spec §5.
func NewProcessorFromPool() *Processor {
	p := processorPool.Get().(*Processor)
	p.wb.bytes = p.wb.bytes[:0]
	p.wb.marks = p.wb.marks[:0]
	p.rb.reset()
	return p
}

// ReturnToPool releases the Processor back to the pool. Using it
// afterward results in undefined behavior.
func (p *Processor) ReturnToPool() {
	processorPool.Put(p)
}

// Encode serializes s to a fresh byte sequence per the wire format in
// spec §4.4.1: the concatenation of its fields in insertion order,
// each written as key[, length]?, payload. Fails with ErrFieldTooLong
// if any variable-length field (including a recursively-encoded
// nested struct) exceeds 65535 bytes.
//
// Encoding a STRUCT field mutates that Field in place, replacing its
// payload with the materialized nested bytes (spec §4.4.2, §9
// "Mutable-in-place Field during encode"). This is deliberate and
// matches the reference algorithm literally: treat s as consumed by
// Encode if it contains nested STRUCT fields you intend to re-encode
// unchanged.
func (p *Processor) Encode(s *Struct) ([]byte, error) {
	return p.encodeStruct(s)
}

func (p *Processor) encodeStruct(s *Struct) ([]byte, error) {
	p.wb.pushMark()
	if err := p.encodeFields(s); err != nil {
		p.wb.goToLastMark()
		p.wb.popMark()
		return nil, err
	}
	out := p.wb.copyFromLastMark()
	p.wb.goToLastMark()
	p.wb.popMark()
	return out, nil
}

func (p *Processor) encodeFields(s *Struct) error {
	for i := 0; i < s.Len(); i++ {
		key := s.keyAt(i)
		f := s.fieldAt(i)
		p.wb.writeByte(byte(key))

		if f.typ == Struct {
			nested := f.nested
			nestedBytes, err := p.encodeStruct(nested)
			if err != nil {
				return err
			}
			f.PutBytes(nestedBytes)
		}

		if f.typ.variableLength() {
			if f.length > MaxVariableLength {
				return fmt.Errorf("%w: key %d has %d bytes", ErrFieldTooLong, key, f.length)
			}
			p.wb.writeUint16(uint16(f.length))
		}

		p.wb.write(f.buf[:f.length])
	}
	return nil
}

// Decode populates s — which must be an empty Struct bound to the
// expected Schema — from data, per spec §4.4.3. On failure the
// partially-populated Struct is left in an unspecified state;
// callers should discard it or call Reset.
func (p *Processor) Decode(data []byte, s *Struct) error {
	s.Reset()
	p.rb.reset()
	p.rb.pushLayer(data)
	err := p.decodeFields(s)
	p.rb.popLayer()
	return err
}

func (p *Processor) decodeFields(s *Struct) error {
	schema := s.schema
	for p.rb.remaining() > 0 {
		keyByte, err := p.rb.readByte()
		if err != nil {
			return err
		}
		key := int(keyByte)

		typ, err := schema.TypeAt(key)
		if err != nil {
			return err
		}

		var length int
		if typ.variableLength() {
			l, err := p.rb.readUint16()
			if err != nil {
				return err
			}
			length = int(l)
		} else {
			length, _ = typ.fixedWidth()
		}

		payload, err := p.rb.readBytes(length)
		if err != nil {
			return err
		}

		if typ == Struct {
			nestedSchema, err := schema.NestedSchemaAt(key)
			if err != nil {
				return err
			}
			nested := NewStruct(nestedSchema)
			p.rb.pushLayer(payload)
			derr := p.decodeFields(nested)
			p.rb.popLayer()
			if derr != nil {
				return derr
			}
			if err := s.AppendByKey(key, NewStructField(nested)); err != nil {
				return err
			}
			continue
		}

		f := Field{typ: typ}
		f.PutBytes(payload)
		if err := s.AppendByKey(key, f); err != nil {
			return err
		}
	}
	return nil
}
