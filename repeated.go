package recordcodec

// RepeatedBuilder appends a Go slice of values as a run of fields
// under one schema-key, in order — the spec's way of modeling a
// "repeated" field (spec §3 Struct, §8 Testable Property 2, scenario
// S5: duplicate tags preserve insertion order). This adapts the
// teacher's SliceBuilder (slicebuilder.go), which accumulates a
// Go slice into one length-prefixed wire collection, into the closed
// nine-variant FieldType model: there is no SLICE wire type here, so
// each element is appended through the ordinary Append*ByKey path
// and the "collection" is simply N fields sharing a key.
type RepeatedBuilder struct {
	s   *Struct
	key int
}

// Repeated returns a builder that appends repeated values under key
// in s. Pass schema.Lookup's key, or AddField's returned key, directly.
func Repeated(s *Struct, key int) RepeatedBuilder {
	return RepeatedBuilder{s: s, key: key}
}

// Bools appends each value under the builder's key, in order.
func (r RepeatedBuilder) Bools(values []bool) error {
	for _, v := range values {
		if err := r.s.AppendBoolByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Bytes appends each value under the builder's key, in order.
func (r RepeatedBuilder) Bytes(values []byte) error {
	for _, v := range values {
		if err := r.s.AppendByteByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Shorts appends each value under the builder's key, in order.
func (r RepeatedBuilder) Shorts(values []int16) error {
	for _, v := range values {
		if err := r.s.AppendShortByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Ints appends each value under the builder's key, in order.
func (r RepeatedBuilder) Ints(values []int32) error {
	for _, v := range values {
		if err := r.s.AppendIntByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Longs appends each value under the builder's key, in order.
func (r RepeatedBuilder) Longs(values []int64) error {
	for _, v := range values {
		if err := r.s.AppendLongByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Floats appends each value under the builder's key, in order.
func (r RepeatedBuilder) Floats(values []float32) error {
	for _, v := range values {
		if err := r.s.AppendFloatByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Doubles appends each value under the builder's key, in order.
func (r RepeatedBuilder) Doubles(values []float64) error {
	for _, v := range values {
		if err := r.s.AppendDoubleByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Strings appends each value under the builder's key, in order.
func (r RepeatedBuilder) Strings(values []string) error {
	for _, v := range values {
		if err := r.s.AppendStringByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// RawRuns appends each byte run under the builder's key, in order,
// via the RAW escape hatch (no per-element type check).
func (r RepeatedBuilder) RawRuns(values [][]byte) error {
	for _, v := range values {
		if err := r.s.AppendBytesByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}

// Structs appends each nested Struct under the builder's key, in order.
func (r RepeatedBuilder) Structs(values []*Struct) error {
	for _, v := range values {
		if err := r.s.AppendStructByKey(r.key, v); err != nil {
			return err
		}
	}
	return nil
}
