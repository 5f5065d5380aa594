package recordcodec

import "fmt"

// Struct is an append-only, ordered sequence of (schema-key, Field)
// pairs bound to one Schema (spec §3). Duplicate schema-keys are
// permitted and preserve insertion order, which is how a "repeated"
// field under one tag is represented. A Struct is single-writer,
// single-reader and may be reused across many encode cycles via Reset.
type Struct struct {
	schema *Schema
	keys   []int
	fields []Field
}

// NewStruct returns an empty Struct bound to schema.
func NewStruct(schema *Schema) *Struct {
	return &Struct{schema: schema}
}

// Schema returns the Schema this Struct is bound to.
func (s *Struct) Schema() *Schema {
	return s.schema
}

// Len returns the number of appended fields.
func (s *Struct) Len() int {
	return len(s.fields)
}

// Reset truncates the Struct to zero length without releasing the
// backing arrays' capacity, so the Struct can be reused for the next
// encode cycle with no further allocation.
func (s *Struct) Reset() {
	s.keys = s.keys[:0]
	s.fields = s.fields[:0]
}

func (s *Struct) appendRaw(key int, f Field) {
	s.keys = append(s.keys, key)
	s.fields = append(s.fields, f)
}

// AppendByKey appends f under schema-key key, skipping the tag lookup.
// Fails with ErrInvalidKey if key is out of range, or ErrTypeMismatch
// if f's declared type does not match the FieldType registered at key.
func (s *Struct) AppendByKey(key int, f Field) error {
	typ, err := s.schema.TypeAt(key)
	if err != nil {
		return err
	}
	if f.typ != typ {
		return fmt.Errorf("%w: key %d declared %s, field is %s", ErrTypeMismatch, key, typ, f.typ)
	}
	s.appendRaw(key, f)
	return nil
}

// AppendByTag resolves tag to a schema-key and appends f there. Fails
// with ErrUnknownTag if tag is not declared, or ErrTypeMismatch on a
// type disagreement.
func (s *Struct) AppendByTag(tag string, f Field) error {
	key, ok := s.schema.Lookup(tag)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return s.AppendByKey(key, f)
}

// AppendBytesByKey stores v into a field typed according to the
// schema at key, without checking that the declared type is RAW (the
// documented "bytes escape hatch", spec §4.3). Fails only with
// ErrInvalidKey.
func (s *Struct) AppendBytesByKey(key int, v []byte) error {
	typ, err := s.schema.TypeAt(key)
	if err != nil {
		return err
	}
	f := Field{typ: typ}
	f.PutBytes(v)
	s.appendRaw(key, f)
	return nil
}

// AppendBytes resolves tag to a schema-key and behaves like
// AppendBytesByKey. Fails with ErrUnknownTag if tag is not declared.
func (s *Struct) AppendBytes(tag string, v []byte) error {
	key, ok := s.schema.Lookup(tag)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return s.AppendBytesByKey(key, v)
}

// AppendStringByKey type-checks against STRING and appends v, UTF-8
// encoded, under key.
func (s *Struct) AppendStringByKey(key int, v string) error {
	return s.AppendByKey(key, NewStringField(v))
}

// AppendString resolves tag and behaves like AppendStringByKey.
func (s *Struct) AppendString(tag string, v string) error {
	return s.AppendByTag(tag, NewStringField(v))
}

// AppendStructByKey type-checks against STRUCT and appends nested
// under key.
func (s *Struct) AppendStructByKey(key int, nested *Struct) error {
	return s.AppendByKey(key, NewStructField(nested))
}

// AppendStruct resolves tag and behaves like AppendStructByKey.
func (s *Struct) AppendStruct(tag string, nested *Struct) error {
	return s.AppendByTag(tag, NewStructField(nested))
}

// AppendBoolByKey type-checks against BOOL and appends v under key.
func (s *Struct) AppendBoolByKey(key int, v bool) error { return s.AppendByKey(key, NewBoolField(v)) }

// AppendBool resolves tag and behaves like AppendBoolByKey.
func (s *Struct) AppendBool(tag string, v bool) error { return s.AppendByTag(tag, NewBoolField(v)) }

// AppendByteByKey type-checks against BYTE and appends v under key.
func (s *Struct) AppendByteByKey(key int, v byte) error { return s.AppendByKey(key, NewByteField(v)) }

// AppendByte resolves tag and behaves like AppendByteByKey.
func (s *Struct) AppendByte(tag string, v byte) error { return s.AppendByTag(tag, NewByteField(v)) }

// AppendShortByKey type-checks against SHORT and appends v under key.
func (s *Struct) AppendShortByKey(key int, v int16) error {
	return s.AppendByKey(key, NewShortField(v))
}

// AppendShort resolves tag and behaves like AppendShortByKey.
func (s *Struct) AppendShort(tag string, v int16) error { return s.AppendByTag(tag, NewShortField(v)) }

// AppendIntByKey type-checks against INT and appends v under key.
func (s *Struct) AppendIntByKey(key int, v int32) error { return s.AppendByKey(key, NewIntField(v)) }

// AppendInt resolves tag and behaves like AppendIntByKey.
func (s *Struct) AppendInt(tag string, v int32) error { return s.AppendByTag(tag, NewIntField(v)) }

// AppendLongByKey type-checks against LONG and appends v under key.
func (s *Struct) AppendLongByKey(key int, v int64) error { return s.AppendByKey(key, NewLongField(v)) }

// AppendLong resolves tag and behaves like AppendLongByKey.
func (s *Struct) AppendLong(tag string, v int64) error { return s.AppendByTag(tag, NewLongField(v)) }

// AppendFloatByKey type-checks against FLOAT and appends v under key.
func (s *Struct) AppendFloatByKey(key int, v float32) error {
	return s.AppendByKey(key, NewFloatField(v))
}

// AppendFloat resolves tag and behaves like AppendFloatByKey.
func (s *Struct) AppendFloat(tag string, v float32) error {
	return s.AppendByTag(tag, NewFloatField(v))
}

// AppendDoubleByKey type-checks against DOUBLE and appends v under key.
func (s *Struct) AppendDoubleByKey(key int, v float64) error {
	return s.AppendByKey(key, NewDoubleField(v))
}

// AppendDouble resolves tag and behaves like AppendDoubleByKey.
func (s *Struct) AppendDouble(tag string, v float64) error {
	return s.AppendByTag(tag, NewDoubleField(v))
}

// FirstByKey returns the first field appended under key, in
// insertion order.
func (s *Struct) FirstByKey(key int) (Field, bool) {
	for i, k := range s.keys {
		if k == key {
			return s.fields[i], true
		}
	}
	return Field{}, false
}

// First resolves tag to a schema-key and returns its first match.
func (s *Struct) First(tag string) (Field, bool) {
	key, ok := s.schema.Lookup(tag)
	if !ok {
		return Field{}, false
	}
	return s.FirstByKey(key)
}

// AllForKey returns every field appended under key, in insertion order.
func (s *Struct) AllForKey(key int) []Field {
	var out []Field
	for i, k := range s.keys {
		if k == key {
			out = append(out, s.fields[i])
		}
	}
	return out
}

// AllFor resolves tag to a schema-key and returns every match, in
// insertion order.
func (s *Struct) AllFor(tag string) []Field {
	key, ok := s.schema.Lookup(tag)
	if !ok {
		return nil
	}
	return s.AllForKey(key)
}

// HasKey reports whether any field has been appended under key.
func (s *Struct) HasKey(key int) bool {
	_, ok := s.FirstByKey(key)
	return ok
}

// Has resolves tag and reports whether any field has been appended
// under it.
func (s *Struct) Has(tag string) bool {
	_, ok := s.First(tag)
	return ok
}

// keyAt and fieldAt give the encoder ordered, index-based access to
// the appended fields. Decode likewise appends by key rather than
// re-resolving the tag (spec §9 "Decode appends via tag"), without
// changing observable behavior.
func (s *Struct) keyAt(i int) int      { return s.keys[i] }
func (s *Struct) fieldAt(i int) *Field { return &s.fields[i] }
