package recordcodec

import (
	"math"
	"testing"
)

// FuzzPrimitiveFieldsRoundtrip exercises the round-trip law (spec §8
// Testable Property 1) over arbitrary scalar/string/raw values,
// grounded on the teacher's FuzzPrimitiveTypesRoundtrip.
func FuzzPrimitiveFieldsRoundtrip(f *testing.F) {
	f.Add("greetings", int32(0), int64(0), float64(0.0), true, []byte(nil))
	f.Add("", int32(math.MinInt32), int64(math.MinInt64), math.NaN(), false, []byte{0x00})
	f.Add("world", int32(math.MaxInt32), int64(math.MaxInt64), math.Inf(1), true, []byte{0xFF, 0xFE})
	f.Add(string([]byte{0xFF, 0xFE, 0xFD}), int32(-1), int64(-1), math.Inf(-1), false, []byte("raw"))

	schema := NewSchema()
	schema.AddField("str", String)
	schema.AddField("i32", Int)
	schema.AddField("i64", Long)
	schema.AddField("f64", Double)
	schema.AddField("b", Bool)
	schema.AddField("raw", Raw)

	proc := NewProcessor()

	f.Fuzz(func(t *testing.T, str string, i32 int32, i64 int64, f64 float64, b bool, raw []byte) {
		if len(raw) > MaxVariableLength || len(str) > MaxVariableLength {
			t.Skip("exceeds the 65535-byte field limit")
		}

		rec := NewStruct(schema)
		rec.AppendString("str", str)
		rec.AppendInt("i32", i32)
		rec.AppendLong("i64", i64)
		rec.AppendDouble("f64", f64)
		rec.AppendBool("b", b)
		rec.AppendBytes("raw", raw)

		encoded, err := proc.Encode(rec)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}

		decoded := NewStruct(schema)
		if err := proc.Decode(encoded, decoded); err != nil {
			t.Fatalf("Decode: %v", err)
		}

		if gotStr, _ := mustFirst(t, decoded, "str").AsString(); gotStr != str {
			t.Errorf("str = %q, want %q", gotStr, str)
		}
		if gotI32, _ := mustFirst(t, decoded, "i32").AsInt(); gotI32 != i32 {
			t.Errorf("i32 = %d, want %d", gotI32, i32)
		}
		if gotI64, _ := mustFirst(t, decoded, "i64").AsLong(); gotI64 != i64 {
			t.Errorf("i64 = %d, want %d", gotI64, i64)
		}
		gotF64, _ := mustFirst(t, decoded, "f64").AsDouble()
		if math.Float64bits(gotF64) != math.Float64bits(f64) {
			t.Errorf("f64 = %v, want %v", gotF64, f64)
		}
		if gotB, _ := mustFirst(t, decoded, "b").AsBool(); gotB != b {
			t.Errorf("b = %v, want %v", gotB, b)
		}
	})
}

// FuzzDecodeNeverPanics feeds arbitrary bytes to Decode against a
// fixed schema. Malformed input must surface as an error (typically
// ErrTruncatedInput or ErrInvalidKey), never a panic.
func FuzzDecodeNeverPanics(f *testing.F) {
	schema := NewSchema()
	schema.AddField("a", Int)
	schema.AddField("b", String)

	inner := NewSchema()
	inner.AddField("c", Byte)
	nested := NewSchema()
	nested.AddStruct("inner", inner)

	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x01, 0xFF, 0xFF})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		proc := NewProcessor()
		rec := NewStruct(schema)
		_ = proc.Decode(data, rec)

		nestedRec := NewStruct(nested)
		_ = proc.Decode(data, nestedRec)
	})
}

// TestProcessorDecodeReusedAcrossDistinctPayloads guards against a
// readBuffer that forgets to reset its storage: decoding a second,
// different payload through a Processor obtained via plain
// NewProcessor() must see only the new bytes, not a stale window left
// over from the first Decode (spec §5 "one processor per worker or per
// logical stream" implies repeated reuse across distinct messages).
func TestProcessorDecodeReusedAcrossDistinctPayloads(t *testing.T) {
	schema := NewSchema()
	schema.AddField("v", Int)

	proc := NewProcessor()

	first := NewStruct(schema)
	first.AppendInt("v", 1)
	firstEncoded, err := proc.Encode(first)
	if err != nil {
		t.Fatalf("Encode(first): %v", err)
	}

	second := NewStruct(schema)
	second.AppendInt("v", 2)
	secondEncoded, err := proc.Encode(second)
	if err != nil {
		t.Fatalf("Encode(second): %v", err)
	}

	firstDecoded := NewStruct(schema)
	if err := proc.Decode(firstEncoded, firstDecoded); err != nil {
		t.Fatalf("Decode(first): %v", err)
	}
	if v, _ := mustFirst(t, firstDecoded, "v").AsInt(); v != 1 {
		t.Fatalf("first decode v = %d, want 1", v)
	}

	secondDecoded := NewStruct(schema)
	if err := proc.Decode(secondEncoded, secondDecoded); err != nil {
		t.Fatalf("Decode(second): %v", err)
	}
	if v, _ := mustFirst(t, secondDecoded, "v").AsInt(); v != 2 {
		t.Fatalf("second decode v = %d, want 2 (stale readBuffer storage reused first payload)", v)
	}
}
