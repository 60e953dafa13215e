package tsgen

import (
	"strconv"
	"strings"

	"github.com/jptrs93/packetgen/internal/ir"
)

// EmitClass renders one packet as a standalone TypeScript module with a
// default-exported class.
func EmitClass(msg ir.MessageType, m *Mapper, opts EmitOptions) string {
	var b strings.Builder
	writeImports(&b, classImports(opts, msg))
	writeClass(&b, msg, m, true)
	return b.String()
}

// writeClass emits the class declaration. Fields are declared, assigned,
// serialized and deserialized in msg.Fields order; the wire format has no tags
// so both codec routines must agree on it.
func writeClass(b *strings.Builder, msg ir.MessageType, m *Mapper, defaultExport bool) {
	empty := len(msg.Fields) == 0

	if defaultExport {
		b.WriteString("export default class ")
	} else {
		b.WriteString("export class ")
	}
	b.WriteString(msg.Name)
	b.WriteString(" implements Packet {\n")
	b.WriteString("\tpublic static ID = ")
	b.WriteString(strconv.Itoa(msg.ID))
	b.WriteString(";\n\n")

	params := make([]string, 0, len(msg.Fields))
	var assignments strings.Builder
	var serializer strings.Builder
	var deserializer strings.Builder

	for i, field := range msg.Fields {
		tsType, _ := m.MapType(field.Type)
		params = append(params, field.Name+": "+tsType)

		serializer.WriteString("\t\tbuf.")
		serializer.WriteString(WriterMethod(field.Type))
		serializer.WriteString("(this.")
		serializer.WriteString(field.Name)
		serializer.WriteString(");\n")

		deserializer.WriteString("\t\tthis.")
		deserializer.WriteString(field.Name)
		deserializer.WriteString(" = buf.")
		deserializer.WriteString(ReaderMethod(field.Type))
		deserializer.WriteString("();\n")

		assignments.WriteString("\t\tthis.")
		assignments.WriteString(field.Name)
		assignments.WriteString(" = args[")
		assignments.WriteString(strconv.Itoa(i))
		assignments.WriteString("];\n")

		b.WriteString("\tpublic ")
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(tsType)
		b.WriteString(";\n")
	}

	if !empty {
		b.WriteString("\n")
		b.WriteString("\tconstructor();\n\n")
		b.WriteString("\tconstructor(")
		b.WriteString(strings.Join(params, ", "))
		b.WriteString(");\n\n")
		b.WriteString("\tconstructor(...args: any[]) {\n")
		b.WriteString("\t\tif (args.length == 0) return;\n")
		b.WriteString(assignments.String())
		b.WriteString("\t}\n\n")
	}

	b.WriteString("\tgetId() {\n")
	b.WriteString("\t\treturn ")
	b.WriteString(msg.Name)
	b.WriteString(".ID;\n")
	b.WriteString("\t}\n\n")

	if empty {
		b.WriteString("\tserialize(buf: BufferWriter) {}\n\n")
		b.WriteString("\tdeserialize(buf: BufferReader) {}\n")
	} else {
		b.WriteString("\tserialize(buf: BufferWriter) {\n")
		b.WriteString(serializer.String())
		b.WriteString("\t}\n\n")
		b.WriteString("\tdeserialize(buf: BufferReader) {\n")
		b.WriteString(deserializer.String())
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")
}
