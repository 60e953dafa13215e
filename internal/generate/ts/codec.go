package tsgen

import "github.com/jptrs93/packetgen/internal/ir"

// Sentinel is the method name emitted for fields whose codec has to be written
// by hand. It does not exist on BufferWriter/BufferReader, so the gap fails to
// compile until someone fills it.
const Sentinel = "$"

func WriterMethod(t ir.SourceType) string {
	if !t.IsPrimitive() {
		return Sentinel
	}
	return "write" + ir.Capitalize(t.Primitive.String())
}

func ReaderMethod(t ir.SourceType) string {
	if !t.IsPrimitive() {
		return Sentinel
	}
	return "read" + ir.Capitalize(t.Primitive.String())
}
