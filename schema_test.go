package recordcodec

import (
	"errors"
	"fmt"
	"testing"
)

func TestSchemaAddFieldAssignsSequentialKeys(t *testing.T) {
	s := NewSchema()

	k0, err := s.AddField("a", Int)
	if err != nil {
		t.Fatalf("AddField(a): %v", err)
	}
	k1, err := s.AddField("b", String)
	if err != nil {
		t.Fatalf("AddField(b): %v", err)
	}

	if k0 != 0 || k1 != 1 {
		t.Fatalf("got keys %d, %d, want 0, 1", k0, k1)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestSchemaAddFieldDuplicateTag(t *testing.T) {
	s := NewSchema()
	if _, err := s.AddField("a", Int); err != nil {
		t.Fatalf("first AddField: %v", err)
	}
	_, err := s.AddField("a", String)
	if !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("got err %v, want ErrDuplicateTag", err)
	}
}

func TestSchemaAddFieldRejectsStruct(t *testing.T) {
	s := NewSchema()
	_, err := s.AddField("nested", Struct)
	if !errors.Is(err, ErrWrongBuilder) {
		t.Fatalf("got err %v, want ErrWrongBuilder", err)
	}
}

func TestSchemaAddStructDuplicateTag(t *testing.T) {
	inner := NewSchema()
	inner.AddField("x", Byte)

	s := NewSchema()
	if _, err := s.AddStruct("child", inner); err != nil {
		t.Fatalf("first AddStruct: %v", err)
	}
	if _, err := s.AddStruct("child", inner); !errors.Is(err, ErrDuplicateTag) {
		t.Fatalf("got err %v, want ErrDuplicateTag", err)
	}
}

func TestSchemaLookup(t *testing.T) {
	s := NewSchema()
	s.AddField("a", Int)
	s.AddField("b", String)

	if key, ok := s.Lookup("b"); !ok || key != 1 {
		t.Fatalf("Lookup(b) = %d, %v, want 1, true", key, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatalf("Lookup(missing) = ok, want absent")
	}
}

func TestSchemaTypeTagNestedAt(t *testing.T) {
	inner := NewSchema()
	inner.AddField("x", Byte)

	s := NewSchema()
	s.AddField("a", Int)
	structKey, _ := s.AddStruct("child", inner)

	typ, err := s.TypeAt(structKey)
	if err != nil || typ != Struct {
		t.Fatalf("TypeAt(structKey) = %v, %v, want Struct, nil", typ, err)
	}
	tag, err := s.TagAt(structKey)
	if err != nil || tag != "child" {
		t.Fatalf("TagAt(structKey) = %q, %v, want child, nil", tag, err)
	}
	nested, err := s.NestedSchemaAt(structKey)
	if err != nil || nested != inner {
		t.Fatalf("NestedSchemaAt(structKey) = %v, %v, want inner schema, nil", nested, err)
	}

	nonStruct, _ := s.NestedSchemaAt(0)
	if nonStruct != nil {
		t.Fatalf("NestedSchemaAt(non-struct key) = %v, want nil", nonStruct)
	}
}

func TestSchemaInvalidKey(t *testing.T) {
	s := NewSchema()
	s.AddField("a", Int)

	for _, key := range []int{-1, 1, 256} {
		if _, err := s.TypeAt(key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("TypeAt(%d) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestSchemaMaxKeysLimit(t *testing.T) {
	s := NewSchema()
	for i := 0; i < MaxSchemaKeys; i++ {
		if _, err := s.AddField(fmt.Sprintf("f%d", i), Byte); err != nil {
			t.Fatalf("AddField(f%d): %v", i, err)
		}
	}
	if _, err := s.AddField("overflow", Byte); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("AddField beyond %d keys = %v, want ErrInvalidKey", MaxSchemaKeys, err)
	}
}
