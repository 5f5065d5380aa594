package recordcodec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Field is a single typed value. Scalars carry their payload as raw,
// big-endian bytes so the codec can copy them onto the wire directly
// (spec §3, §4.3); STRING and RAW carry a byte run bounded by length;
// STRUCT owns a nested *Struct rather than its serialized form — the
// codec materializes that on demand during encoding (spec §3
// Ownership).
type Field struct {
	typ    FieldType
	buf    []byte  // payload; for STRUCT, the bytes stored by the last Encode
	length int     // meaningful bytes in buf (== len(buf) for scalars)
	nested *Struct // owning reference, only set when typ == Struct
}

func newScalarField(typ FieldType, width int) Field {
	return Field{typ: typ, buf: make([]byte, width), length: width}
}

// NewBoolField builds a BOOL field.
func NewBoolField(v bool) Field {
	f := newScalarField(Bool, 1)
	if v {
		f.buf[0] = 1
	}
	return f
}

// NewByteField builds a BYTE field.
func NewByteField(v byte) Field {
	f := newScalarField(Byte, 1)
	f.buf[0] = v
	return f
}

// NewShortField builds a SHORT field.
func NewShortField(v int16) Field {
	f := newScalarField(Short, 2)
	binary.BigEndian.PutUint16(f.buf, uint16(v))
	return f
}

// NewIntField builds an INT field.
func NewIntField(v int32) Field {
	f := newScalarField(Int, 4)
	binary.BigEndian.PutUint32(f.buf, uint32(v))
	return f
}

// NewLongField builds a LONG field.
func NewLongField(v int64) Field {
	f := newScalarField(Long, 8)
	binary.BigEndian.PutUint64(f.buf, uint64(v))
	return f
}

// NewFloatField builds a FLOAT field.
func NewFloatField(v float32) Field {
	f := newScalarField(Float, 4)
	binary.BigEndian.PutUint32(f.buf, math.Float32bits(v))
	return f
}

// NewDoubleField builds a DOUBLE field.
func NewDoubleField(v float64) Field {
	f := newScalarField(Double, 8)
	binary.BigEndian.PutUint64(f.buf, math.Float64bits(v))
	return f
}

// NewStringField builds a STRING field from a UTF-8 string.
func NewStringField(v string) Field {
	return Field{typ: String, buf: []byte(v), length: len(v)}
}

// NewRawField builds a RAW field from an opaque byte run.
func NewRawField(v []byte) Field {
	b := make([]byte, len(v))
	copy(b, v)
	return Field{typ: Raw, buf: b, length: len(v)}
}

// NewStructField builds a STRUCT field owning nested.
func NewStructField(nested *Struct) Field {
	return Field{typ: Struct, nested: nested}
}

// Type returns the Field's declared FieldType.
func (f Field) Type() FieldType {
	return f.typ
}

// Length returns the number of meaningful payload bytes. For scalars
// this equals the type's fixed width; for STRING/RAW it is the byte
// run length; for STRUCT it is 0 until Processor.Encode stores the
// nested struct's encoded bytes in the field, and then their length.
func (f Field) Length() int {
	return f.length
}

func (f Field) checkType(want FieldType) error {
	if f.typ != want {
		return fmt.Errorf("%w: field is %s, want %s", ErrTypeMismatch, f.typ, want)
	}
	return nil
}

// AsBool returns the field's value. Fails with ErrTypeMismatch if the
// field is not BOOL.
func (f Field) AsBool() (bool, error) {
	if err := f.checkType(Bool); err != nil {
		return false, err
	}
	return f.buf[0] != 0, nil
}

// AsByte returns the field's value. Fails with ErrTypeMismatch if the
// field is not BYTE.
func (f Field) AsByte() (byte, error) {
	if err := f.checkType(Byte); err != nil {
		return 0, err
	}
	return f.buf[0], nil
}

// AsShort returns the field's value. Fails with ErrTypeMismatch if the
// field is not SHORT.
func (f Field) AsShort() (int16, error) {
	if err := f.checkType(Short); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(f.buf)), nil
}

// AsInt returns the field's value. Fails with ErrTypeMismatch if the
// field is not INT.
func (f Field) AsInt() (int32, error) {
	if err := f.checkType(Int); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(f.buf)), nil
}

// AsLong returns the field's value. Fails with ErrTypeMismatch if the
// field is not LONG.
func (f Field) AsLong() (int64, error) {
	if err := f.checkType(Long); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(f.buf)), nil
}

// AsFloat returns the field's value. Fails with ErrTypeMismatch if the
// field is not FLOAT.
func (f Field) AsFloat() (float32, error) {
	if err := f.checkType(Float); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(f.buf)), nil
}

// AsDouble returns the field's value. Fails with ErrTypeMismatch if the
// field is not DOUBLE.
func (f Field) AsDouble() (float64, error) {
	if err := f.checkType(Double); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(f.buf)), nil
}

// AsString returns the field's value. Fails with ErrTypeMismatch if the
// field is not STRING.
func (f Field) AsString() (string, error) {
	if err := f.checkType(String); err != nil {
		return "", err
	}
	return string(f.buf[:f.length]), nil
}

// AsBytes returns the first Length() bytes of the payload. Unlike the
// other getters this never fails on type: it is the documented
// "bytes escape hatch" for RAW fields, usable against any
// variable-length field.
func (f Field) AsBytes() []byte {
	return f.buf[:f.length]
}

// AsStruct returns the owned nested Struct. Fails with ErrTypeMismatch
// if the field is not STRUCT.
func (f Field) AsStruct() (*Struct, error) {
	if err := f.checkType(Struct); err != nil {
		return nil, err
	}
	return f.nested, nil
}

// PutBytes overwrites the payload without checking the field's
// declared type against the caller's intent. It grows the backing
// buffer to fit and is the one setter in this package that does not
// type-check (spec §4.3, §9 "Duplicate-tag type-check
// inconsistency" — preserved literally here as a documented escape
// hatch, not a bug).
func (f *Field) PutBytes(v []byte) {
	if cap(f.buf) < len(v) {
		f.buf = make([]byte, len(v))
	} else {
		f.buf = f.buf[:len(v)]
	}
	copy(f.buf, v)
	f.length = len(v)
}

// PutStruct replaces the field's nested Struct. Fails with
// ErrTypeMismatch if the field is not STRUCT.
func (f *Field) PutStruct(nested *Struct) error {
	if err := f.checkType(Struct); err != nil {
		return err
	}
	f.nested = nested
	return nil
}
