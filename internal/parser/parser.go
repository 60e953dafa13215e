package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jptrs93/packetgen/internal/ir"

	"github.com/bufbuild/protocompile"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"
)

const anyFullName = "google.protobuf.Any"

// Parser loads packet definitions from .proto files. Messages keep their
// declaration order; the packetgen.packet_id message option sets the
// identifier.
type Parser struct {
	ImportPaths []string
	Logger      *zap.Logger

	tsOut string
}

// TsOut returns the packetgen.ts_out option of the first parsed file that sets
// it.
func (p *Parser) TsOut() string {
	return p.tsOut
}

func (p *Parser) Load(ctx context.Context, filePaths []string) ([]ir.MessageType, error) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	importPaths := p.ImportPaths
	if len(importPaths) == 0 {
		importPaths = []string{"."}
	}
	resolver := &protocompile.SourceResolver{
		ImportPaths: importPaths,
		Accessor: func(path string) (io.ReadCloser, error) {
			if path == optionsProtoPath || strings.HasSuffix(path, string(os.PathSeparator)+optionsProtoPath) {
				return io.NopCloser(strings.NewReader(optionsProtoSource)), nil
			}
			return os.Open(path)
		},
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(resolver),
	}
	files, err := compiler.Compile(ctx, filePaths...)
	if err != nil {
		return nil, fmt.Errorf("compile proto files: %w", err)
	}

	var pending []pendingMessage
	for _, file := range files {
		if p.tsOut == "" {
			p.tsOut = tsOutFromOptions(file)
		}
		msgs, err := collectMessages(file.Messages(), nil, file.Path())
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed proto file", zap.String("path", file.Path()), zap.Int("messages", len(msgs)))
		pending = append(pending, msgs...)
	}
	return assignIDs(pending), nil
}

func collectMessages(messages protoreflect.MessageDescriptors, prefix []string, source string) ([]pendingMessage, error) {
	var result []pendingMessage
	for i := 0; i < messages.Len(); i++ {
		msg := messages.Get(i)
		if msg.IsMapEntry() {
			continue
		}
		nameParts := append(append([]string(nil), prefix...), string(msg.Name()))
		fields, err := collectFields(msg.Fields())
		if err != nil {
			return nil, err
		}
		id, hasID := packetIDFromOptions(msg)
		result = append(result, pendingMessage{
			msg: ir.MessageType{
				Name:   ir.GoName(joinName(nameParts)),
				ID:     id,
				Fields: fields,
				Source: source,
			},
			hasID: hasID,
		})

		nested, err := collectMessages(msg.Messages(), nameParts, source)
		if err != nil {
			return nil, err
		}
		result = append(result, nested...)
	}
	return result, nil
}

func collectFields(fields protoreflect.FieldDescriptors) ([]ir.Field, error) {
	var result []ir.Field
	for i := 0; i < fields.Len(); i++ {
		field := fields.Get(i)
		if oneof := field.ContainingOneof(); oneof != nil && !oneof.IsSynthetic() {
			return nil, fmt.Errorf("oneof is not supported: %s", field.FullName())
		}
		result = append(result, ir.Field{
			Name: ir.JsName(string(field.Name())),
			Type: sourceTypeFromField(field),
		})
	}
	return result, nil
}

func sourceTypeFromField(field protoreflect.FieldDescriptor) ir.SourceType {
	if field.IsMap() {
		return ir.Unknown(fmt.Sprintf("map<%s, %s>", kindName(field.MapKey()), kindName(field.MapValue())))
	}
	elem := sourceTypeFromKind(field)
	if field.IsList() {
		return ir.ArrayOf(elem)
	}
	return elem
}

func sourceTypeFromKind(field protoreflect.FieldDescriptor) ir.SourceType {
	switch field.Kind() {
	case protoreflect.BoolKind:
		return ir.Prim(ir.PrimBool)
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return ir.Prim(ir.PrimInt32)
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return ir.Prim(ir.PrimInt64)
	case protoreflect.FloatKind:
		return ir.Prim(ir.PrimFloat32)
	case protoreflect.StringKind:
		return ir.Text()
	case protoreflect.BytesKind:
		return ir.ArrayOf(ir.Prim(ir.PrimInt8))
	case protoreflect.MessageKind, protoreflect.GroupKind:
		if field.Message().FullName() == anyFullName {
			return ir.Opaque()
		}
		return ir.Unknown(string(field.Message().FullName()))
	default:
		return ir.Unknown(kindName(field))
	}
}

func kindName(field protoreflect.FieldDescriptor) string {
	switch field.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return string(field.Message().FullName())
	case protoreflect.EnumKind:
		return string(field.Enum().FullName())
	default:
		return field.Kind().String()
	}
}

func joinName(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "_")
}
