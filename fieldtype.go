package recordcodec

import "fmt"

// FieldType identifies the wire representation of a Field. The set is
// closed: nine variants, no self-describing extension point.
type FieldType uint8

const (
	Bool FieldType = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Raw
	Struct
)

// String names the variant, matching the identifiers above.
func (t FieldType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Byte:
		return "Byte"
	case Short:
		return "Short"
	case Int:
		return "Int"
	case Long:
		return "Long"
	case Float:
		return "Float"
	case Double:
		return "Double"
	case String:
		return "String"
	case Raw:
		return "Raw"
	case Struct:
		return "Struct"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
}

// fixedWidth returns the payload width in bytes for scalar types, and
// ok=false for the variable-length types (String, Raw, Struct) whose
// width is carried on the wire as a 2-byte length prefix instead.
func (t FieldType) fixedWidth() (width int, ok bool) {
	switch t {
	case Bool, Byte:
		return 1, true
	case Short:
		return 2, true
	case Int, Float:
		return 4, true
	case Long, Double:
		return 8, true
	default:
		return 0, false
	}
}

// variableLength reports whether the type carries a 2-byte length
// prefix on the wire (String, Raw, Struct).
func (t FieldType) variableLength() bool {
	_, fixed := t.fixedWidth()
	return !fixed
}
