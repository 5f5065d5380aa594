// Command recorddump decodes a wire-format record against a schema
// built in Go and prints it as an indented tree. It exists as a demo
// of the codec, in the spirit of the teacher's printer.go dump
// tooling — the spec treats a human-readable dump helper as an
// external collaborator (spec §1), so this lives outside the core
// package and is not part of the guaranteed API surface (spec §6).
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	rc "github.com/kavalab/recordcodec"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: recorddump <hex-bytes>")
		fmt.Fprintln(os.Stderr, "decodes the bytes against the built-in demo schema (see demoSchema)")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	data, err := hex.DecodeString(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid hex:", err)
		os.Exit(1)
	}

	schema := demoSchema()
	rec := rc.NewStruct(schema)

	proc := rc.NewProcessor()
	if err := proc.Decode(data, rec); err != nil {
		fmt.Fprintln(os.Stderr, "decode failed:", err)
		os.Exit(1)
	}

	dump(os.Stdout, schema, rec, 0)
}

// demoSchema mirrors the README subnet example from the spec (S6):
// {IPV6: Bool, IPAddress: Raw, CIDR: Byte, Name: String}.
func demoSchema() *rc.Schema {
	s := rc.NewSchema()
	s.AddField("IPV6", rc.Bool)
	s.AddField("IPAddress", rc.Raw)
	s.AddField("CIDR", rc.Byte)
	s.AddField("Name", rc.String)
	return s
}

func dump(w *os.File, schema *rc.Schema, s *rc.Struct, depth int) {
	indent := func() string {
		out := ""
		for i := 0; i < depth; i++ {
			out += "  "
		}
		return out
	}
	for key := 0; key < schema.Len(); key++ {
		tag, err := schema.TagAt(key)
		if err != nil {
			continue
		}
		for _, f := range s.AllForKey(key) {
			switch f.Type() {
			case rc.Struct:
				nested, _ := f.AsStruct()
				nestedSchema, _ := schema.NestedSchemaAt(key)
				fmt.Fprintf(w, "%s%s:\n", indent(), tag)
				dump(w, nestedSchema, nested, depth+1)
			case rc.String:
				v, _ := f.AsString()
				fmt.Fprintf(w, "%s%s: %q\n", indent(), tag, v)
			case rc.Raw:
				fmt.Fprintf(w, "%s%s: % x\n", indent(), tag, f.AsBytes())
			case rc.Bool:
				v, _ := f.AsBool()
				fmt.Fprintf(w, "%s%s: %v\n", indent(), tag, v)
			default:
				fmt.Fprintf(w, "%s%s: % x\n", indent(), tag, f.AsBytes())
			}
		}
	}
}
