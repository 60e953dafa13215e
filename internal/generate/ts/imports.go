package tsgen

import (
	"sort"
	"strings"

	"github.com/jptrs93/packetgen/internal/ir"
)

const (
	DefaultIOImport       = "../io"
	DefaultPacketImport   = "./packet"
	DefaultNullableImport = "../util/types/nullable"
	DefaultNetImport      = "../net"
)

// EmitOptions carries the module specifiers used in generated import lines.
type EmitOptions struct {
	IOImport       string
	PacketImport   string
	NullableImport string
	NetImport      string
}

func (o EmitOptions) withDefaults() EmitOptions {
	if o.IOImport == "" {
		o.IOImport = DefaultIOImport
	}
	if o.PacketImport == "" {
		o.PacketImport = DefaultPacketImport
	}
	if o.NullableImport == "" {
		o.NullableImport = DefaultNullableImport
	}
	if o.NetImport == "" {
		o.NetImport = DefaultNetImport
	}
	return o
}

type importSet map[string]struct{}

func (s importSet) add(line string) {
	s[line] = struct{}{}
}

func (s importSet) sorted() []string {
	out := make([]string, 0, len(s))
	for line := range s {
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

// classImports returns the sorted import lines needed by the given messages.
func classImports(opts EmitOptions, messages ...ir.MessageType) []string {
	opts = opts.withDefaults()
	set := importSet{}
	set.add("import {BufferWriter, BufferReader} from '" + opts.IOImport + "';")
	set.add("import {Packet} from '" + opts.PacketImport + "';")
	for _, msg := range messages {
		for _, field := range msg.Fields {
			if usesNullable(field.Type) {
				set.add("import {Nullable} from '" + opts.NullableImport + "';")
			}
		}
	}
	return set.sorted()
}

func usesNullable(t ir.SourceType) bool {
	switch t.Kind {
	case ir.TypeText:
		return true
	case ir.TypeArray, ir.TypeContainer:
		return t.Elem != nil && usesNullable(*t.Elem)
	default:
		return false
	}
}

func writeImports(b *strings.Builder, lines []string) {
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
}
