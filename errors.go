package recordcodec

import "errors"

// Sentinel errors returned by Schema, Struct and the codec. Callers
// should use errors.Is against these; the wrapping fmt.Errorf calls
// throughout this package attach the offending tag, key or length.
var (
	// ErrDuplicateTag is returned when a tag is declared twice in one Schema.
	ErrDuplicateTag = errors.New("recordcodec: duplicate tag")

	// ErrWrongBuilder is returned when AddField is used for a STRUCT type;
	// nested schemas must be declared with AddStruct.
	ErrWrongBuilder = errors.New("recordcodec: struct fields must be declared with AddStruct")

	// ErrUnknownTag is returned when a tag has no entry in the Schema.
	ErrUnknownTag = errors.New("recordcodec: unknown tag")

	// ErrInvalidKey is returned when a schema-key is outside the declared range.
	ErrInvalidKey = errors.New("recordcodec: invalid schema key")

	// ErrTypeMismatch is returned when a Field's declared type does not
	// match the FieldType registered at its schema-key.
	ErrTypeMismatch = errors.New("recordcodec: field type mismatch")

	// ErrFieldTooLong is returned when a variable-length field exceeds
	// 65535 bytes.
	ErrFieldTooLong = errors.New("recordcodec: field exceeds 65535 bytes")

	// ErrTruncatedInput is returned when the decoder needs more bytes
	// than remain in the current layer.
	ErrTruncatedInput = errors.New("recordcodec: truncated input")
)

// MaxVariableLength is the largest payload, in bytes, a STRING, RAW or
// STRUCT field may carry on the wire (spec §6).
const MaxVariableLength = 65535

// MaxSchemaKeys is the largest number of distinct schema-keys a single
// Schema may declare (spec §6).
const MaxSchemaKeys = 256
