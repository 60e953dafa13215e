package parser

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/runtime/protoimpl"
	"google.golang.org/protobuf/types/descriptorpb"
)

const optionsProtoPath = "packetgen/options.proto"

const optionsProtoSource = `
syntax = "proto3";

package packetgen;

import "google/protobuf/descriptor.proto";

extend google.protobuf.FileOptions {
  string ts_out = 50021;
}

extend google.protobuf.MessageOptions {
  int32 packet_id = 50020;
}
`

var E_TsOut = &protoimpl.ExtensionInfo{
	ExtendedType:  (*descriptorpb.FileOptions)(nil),
	ExtensionType: (*string)(nil),
	Field:         50021,
	Name:          "packetgen.ts_out",
	Tag:           "bytes,50021,opt,name=ts_out",
	Filename:      optionsProtoPath,
}

var E_PacketId = &protoimpl.ExtensionInfo{
	ExtendedType:  (*descriptorpb.MessageOptions)(nil),
	ExtensionType: (*int32)(nil),
	Field:         50020,
	Name:          "packetgen.packet_id",
	Tag:           "varint,50020,opt,name=packet_id",
	Filename:      optionsProtoPath,
}

func tsOutFromOptions(file protoreflect.FileDescriptor) string {
	opts, ok := file.Options().(*descriptorpb.FileOptions)
	if !ok || opts == nil {
		return ""
	}
	if proto.HasExtension(opts, E_TsOut) {
		str, _ := proto.GetExtension(opts, E_TsOut).(string)
		return str
	}
	typ, val, ok := findUnknown(opts.ProtoReflect().GetUnknown(), 50021)
	if !ok || typ != protowire.BytesType {
		return ""
	}
	str, n := protowire.ConsumeString(val)
	if n < 0 {
		return ""
	}
	return str
}

// packetIDFromOptions reports the packetgen.packet_id option of msg, if set.
func packetIDFromOptions(msg protoreflect.MessageDescriptor) (int, bool) {
	opts, ok := msg.Options().(*descriptorpb.MessageOptions)
	if !ok || opts == nil {
		return 0, false
	}
	if proto.HasExtension(opts, E_PacketId) {
		id, ok := proto.GetExtension(opts, E_PacketId).(int32)
		return int(id), ok
	}
	typ, val, ok := findUnknown(opts.ProtoReflect().GetUnknown(), 50020)
	if !ok || typ != protowire.VarintType {
		return 0, false
	}
	v, n := protowire.ConsumeVarint(val)
	if n < 0 {
		return 0, false
	}
	return int(int32(v)), true
}

// findUnknown locates an option left in the unknown fields because its
// extension was not resolvable when the options message was built.
func findUnknown(raw []byte, num protowire.Number) (protowire.Type, []byte, bool) {
	for len(raw) > 0 {
		n, typ, tagLen := protowire.ConsumeTag(raw)
		if tagLen < 0 {
			return 0, nil, false
		}
		raw = raw[tagLen:]
		valLen := protowire.ConsumeFieldValue(n, typ, raw)
		if valLen < 0 {
			return 0, nil, false
		}
		if n == num {
			return typ, raw[:valLen], true
		}
		raw = raw[valLen:]
	}
	return 0, nil, false
}
