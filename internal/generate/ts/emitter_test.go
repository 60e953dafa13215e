package tsgen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jptrs93/packetgen/internal/diag"
	"github.com/jptrs93/packetgen/internal/ir"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

func TestEmitClassEmptyPacket(t *testing.T) {
	m := NewMapper(diag.NewTracker())
	got := EmitClass(ir.MessageType{Name: "Ping", ID: 0}, m, EmitOptions{})

	want := lines(
		"import {BufferWriter, BufferReader} from '../io';",
		"import {Packet} from './packet';",
		"",
		"export default class Ping implements Packet {",
		"\tpublic static ID = 0;",
		"",
		"\tgetId() {",
		"\t\treturn Ping.ID;",
		"\t}",
		"",
		"\tserialize(buf: BufferWriter) {}",
		"",
		"\tdeserialize(buf: BufferReader) {}",
		"}",
	)
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "constructor")
}

func TestEmitClassPrimitiveFields(t *testing.T) {
	m := NewMapper(diag.NewTracker())
	msg := ir.MessageType{
		Name: "Move",
		ID:   3,
		Fields: []ir.Field{
			{Name: "x", Type: ir.Prim(ir.PrimInt32)},
			{Name: "y", Type: ir.Prim(ir.PrimInt32)},
		},
	}
	got := EmitClass(msg, m, EmitOptions{})

	want := lines(
		"import {BufferWriter, BufferReader} from '../io';",
		"import {Packet} from './packet';",
		"",
		"export default class Move implements Packet {",
		"\tpublic static ID = 3;",
		"",
		"\tpublic x: number;",
		"\tpublic y: number;",
		"",
		"\tconstructor();",
		"",
		"\tconstructor(x: number, y: number);",
		"",
		"\tconstructor(...args: any[]) {",
		"\t\tif (args.length == 0) return;",
		"\t\tthis.x = args[0];",
		"\t\tthis.y = args[1];",
		"\t}",
		"",
		"\tgetId() {",
		"\t\treturn Move.ID;",
		"\t}",
		"",
		"\tserialize(buf: BufferWriter) {",
		"\t\tbuf.writeInt32(this.x);",
		"\t\tbuf.writeInt32(this.y);",
		"\t}",
		"",
		"\tdeserialize(buf: BufferReader) {",
		"\t\tthis.x = buf.readInt32();",
		"\t\tthis.y = buf.readInt32();",
		"\t}",
		"}",
	)
	assert.Equal(t, want, got)
}

func TestEmitClassTextFieldLeavesGap(t *testing.T) {
	tracker := diag.NewTracker()
	m := NewMapper(tracker)
	msg := ir.MessageType{
		Name:   "Chat",
		ID:     7,
		Fields: []ir.Field{{Name: "message", Type: ir.Text()}},
	}
	got := EmitClass(msg, m, EmitOptions{})

	assert.Contains(t, got, "import {Nullable} from '../util/types/nullable';\n")
	assert.Contains(t, got, "\tpublic message: Nullable<string>;\n")
	assert.Contains(t, got, "\tconstructor(message: Nullable<string>);\n")
	assert.Contains(t, got, "\t\tbuf.$(this.message);\n")
	assert.Contains(t, got, "\t\tthis.message = buf.$();\n")
	assert.Contains(t, got, "\t\treturn Chat.ID;\n")
	assert.Contains(t, got, "\tpublic static ID = 7;\n")
}

func TestEmitClassIntArrayUsesSentinel(t *testing.T) {
	m := NewMapper(diag.NewTracker())
	msg := ir.MessageType{
		Name:   "Batch",
		ID:     9,
		Fields: []ir.Field{{Name: "ids", Type: ir.IntArray()}},
	}
	got := EmitClass(msg, m, EmitOptions{})

	assert.Contains(t, got, "\tpublic ids: number[];\n")
	assert.Contains(t, got, "\t\tbuf.$(this.ids);\n")
	assert.Contains(t, got, "\t\tthis.ids = buf.$();\n")
	assert.NotContains(t, got, "Nullable")
}

func TestEmitClassUnknownFieldRecordedAndHoled(t *testing.T) {
	tracker := diag.NewTracker()
	m := NewMapper(tracker)
	msg := ir.MessageType{
		Name: "UnitSpawn",
		ID:   11,
		Fields: []ir.Field{
			{Name: "unit", Type: ir.Unknown("mindustry.gen.Unit")},
			{Name: "units", Type: ir.ArrayOf(ir.Unknown("mindustry.gen.Unit"))},
		},
	}
	got := EmitClass(msg, m, EmitOptions{})

	assert.Contains(t, got, "\tpublic unit: $;\n")
	assert.Contains(t, got, "\tpublic units: $[];\n")
	assert.Contains(t, got, "\tconstructor(unit: $, units: $[]);\n")
	assert.Equal(t, []string{"mindustry.gen.Unit"}, tracker.Report())
}

func TestEmitClassCustomImports(t *testing.T) {
	m := NewMapper(diag.NewTracker())
	msg := ir.MessageType{Name: "Chat", Fields: []ir.Field{{Name: "message", Type: ir.Text()}}}
	got := EmitClass(msg, m, EmitOptions{
		IOImport:       "@game/io",
		PacketImport:   "@game/packet",
		NullableImport: "@game/nullable",
	})

	assert.True(t, strings.HasPrefix(got, lines(
		"import {BufferWriter, BufferReader} from '@game/io';",
		"import {Nullable} from '@game/nullable';",
		"import {Packet} from '@game/packet';",
		"",
	)), got)
}

var (
	writeCall = regexp.MustCompile(`^\t\tbuf\.(\w+|\$)\(this\.(\w+)\);$`)
	readCall  = regexp.MustCompile(`^\t\tthis\.(\w+) = buf\.(\w+|\$)\(\);$`)
)

func TestEmitClassCodecCallsPairInFieldOrder(t *testing.T) {
	prims := []ir.Primitive{ir.PrimBool, ir.PrimInt64, ir.PrimInt8, ir.PrimFloat32, ir.PrimInt16, ir.PrimInt32}
	msg := ir.MessageType{Name: "StateSnapshot", ID: 21}
	for i, p := range prims {
		msg.Fields = append(msg.Fields, ir.Field{Name: "f" + string(rune('a'+i)), Type: ir.Prim(p)})
	}
	got := EmitClass(msg, NewMapper(diag.NewTracker()), EmitOptions{})

	var writes, reads [][]string
	for _, line := range strings.Split(got, "\n") {
		if m := writeCall.FindStringSubmatch(line); m != nil {
			writes = append(writes, m[1:])
		}
		if m := readCall.FindStringSubmatch(line); m != nil {
			reads = append(reads, m[1:])
		}
	}

	require.Len(t, writes, len(prims))
	require.Len(t, reads, len(prims))
	for i, field := range msg.Fields {
		assert.Equal(t, field.Name, writes[i][1])
		assert.Equal(t, field.Name, reads[i][0])
		writeKind := strings.TrimPrefix(writes[i][0], "write")
		readKind := strings.TrimPrefix(reads[i][1], "read")
		assert.Equal(t, writeKind, readKind)
		assert.Equal(t, ir.Capitalize(prims[i].String()), writeKind)
	}
}
