package recordcodec

import "fmt"

// absentKey is returned by Lookup when a tag is not declared.
const absentKey = -1

// schemaEntry is one declared field within a Schema.
type schemaEntry struct {
	tag    string
	typ    FieldType
	nested *Schema // non-nil iff typ == Struct
}

// Schema is an ordered, append-only declaration of a record's field
// layout: for each schema-key (the dense insertion index, 0..255) it
// records the field's tag, FieldType and, for STRUCT fields, the
// nested Schema. A Schema is populated once by its owner and then
// treated as immutable for the lifetime of any Struct bound to it
// (spec §3, §4.1); it may be shared freely across goroutines once
// population is finished.
type Schema struct {
	entries []schemaEntry
	index   map[string]int
}

// NewSchema returns an empty Schema ready for AddField/AddStruct calls.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// AddField declares a scalar or variable-length, non-STRUCT field and
// returns its assigned schema-key. Fails with ErrDuplicateTag if tag
// is already declared, or ErrWrongBuilder if typ is Struct (nested
// schemas must go through AddStruct).
func (s *Schema) AddField(tag string, typ FieldType) (int, error) {
	if typ == Struct {
		return 0, fmt.Errorf("%w: tag %q", ErrWrongBuilder, tag)
	}
	return s.add(tag, typ, nil)
}

// AddStruct declares a nested-struct field bound to nested and returns
// its assigned schema-key. Fails with ErrDuplicateTag on a repeated tag.
func (s *Schema) AddStruct(tag string, nested *Schema) (int, error) {
	return s.add(tag, Struct, nested)
}

func (s *Schema) add(tag string, typ FieldType, nested *Schema) (int, error) {
	if _, exists := s.index[tag]; exists {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	if len(s.entries) >= MaxSchemaKeys {
		return 0, fmt.Errorf("%w: schema already has the maximum %d keys", ErrInvalidKey, MaxSchemaKeys)
	}
	key := len(s.entries)
	s.entries = append(s.entries, schemaEntry{tag: tag, typ: typ, nested: nested})
	s.index[tag] = key
	return key, nil
}

// Lookup resolves tag to its schema-key. ok is false if tag was never declared.
func (s *Schema) Lookup(tag string) (key int, ok bool) {
	k, exists := s.index[tag]
	if !exists {
		return absentKey, false
	}
	return k, true
}

// Len returns the number of declared schema-keys.
func (s *Schema) Len() int {
	return len(s.entries)
}

func (s *Schema) validKey(key int) bool {
	return key >= 0 && key < len(s.entries)
}

// TypeAt returns the FieldType declared at key.
func (s *Schema) TypeAt(key int) (FieldType, error) {
	if !s.validKey(key) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	return s.entries[key].typ, nil
}

// TagAt returns the tag declared at key.
func (s *Schema) TagAt(key int) (string, error) {
	if !s.validKey(key) {
		return "", fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	return s.entries[key].tag, nil
}

// NestedSchemaAt returns the nested Schema for a STRUCT field at key,
// or nil for any other field type.
func (s *Schema) NestedSchemaAt(key int) (*Schema, error) {
	if !s.validKey(key) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKey, key)
	}
	return s.entries[key].nested, nil
}
