package parser

import (
	"context"
	"fmt"
	"go/token"
	"go/types"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/jptrs93/packetgen/internal/ir"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

const goLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GoSource loads packet definitions from the exported struct types of Go
// packages.
//
// Field tags use the "packet" key: `packet:"-"` skips a field and a blank
// field tagged `packet:"id=N"` sets the identifier of its struct.
type GoSource struct {
	// Suffix limits the scan to type names ending in it. Empty scans all.
	Suffix string
	// IntSeqNames are named types treated as packed int sequences.
	IntSeqNames []string
	Logger      *zap.Logger
}

func (s *GoSource) Load(ctx context.Context, patterns []string) ([]ir.MessageType, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    goLoadMode,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e.Error())
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %s", strings.Join(errs, "; "))
	}

	var pending []pendingMessage
	for _, pkg := range pkgs {
		msgs := s.collectPackage(pkg)
		logger.Debug("scanned go package", zap.String("package", pkg.PkgPath), zap.Int("messages", len(msgs)))
		pending = append(pending, msgs...)
	}
	return assignIDs(pending), nil
}

func (s *GoSource) collectPackage(pkg *packages.Package) []pendingMessage {
	scope := pkg.Types.Scope()
	var names []*types.TypeName
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		if !strings.HasSuffix(tn.Name(), s.Suffix) {
			continue
		}
		if _, ok := tn.Type().Underlying().(*types.Struct); !ok {
			continue
		}
		if named, ok := tn.Type().(*types.Named); ok && named.TypeParams().Len() > 0 {
			continue
		}
		names = append(names, tn)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return positionLess(pkg.Fset, names[i].Pos(), names[j].Pos())
	})

	var result []pendingMessage
	for _, tn := range names {
		st := tn.Type().Underlying().(*types.Struct)
		fields, id, hasID := s.collectStruct(st)
		result = append(result, pendingMessage{
			msg: ir.MessageType{
				Name:   tn.Name(),
				ID:     id,
				Fields: fields,
				Source: pkg.PkgPath,
			},
			hasID: hasID,
		})
	}
	return result
}

func (s *GoSource) collectStruct(st *types.Struct) ([]ir.Field, int, bool) {
	var fields []ir.Field
	id, hasID := 0, false
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		tag := reflect.StructTag(st.Tag(i)).Get("packet")
		if v.Name() == "_" {
			if n, ok := parseIDTag(tag); ok {
				id, hasID = n, true
			}
			continue
		}
		if !v.Exported() || tag == "-" || v.Name() == "DATA" {
			continue
		}
		fields = append(fields, ir.Field{
			Name: ir.LowerCamel(v.Name()),
			Type: s.classify(v.Type()),
		})
	}
	return fields, id, hasID
}

// classify maps a go/types type onto the source type union.
func (s *GoSource) classify(t types.Type) ir.SourceType {
	t = types.Unalias(t)
	if named, ok := t.(*types.Named); ok {
		if s.isIntSeq(named) {
			return ir.IntArray()
		}
		if args := named.TypeArgs(); args != nil && args.Len() == 1 {
			return ir.ContainerOf(named.Obj().Name(), s.classify(args.At(0)))
		}
		return ir.Unknown(types.TypeString(t, nil))
	}
	switch tt := t.(type) {
	case *types.Basic:
		switch tt.Kind() {
		case types.Int8:
			return ir.Prim(ir.PrimInt8)
		case types.Int16:
			return ir.Prim(ir.PrimInt16)
		case types.Int32:
			return ir.Prim(ir.PrimInt32)
		case types.Float32:
			return ir.Prim(ir.PrimFloat32)
		case types.Int64:
			return ir.Prim(ir.PrimInt64)
		case types.Bool:
			return ir.Prim(ir.PrimBool)
		case types.String:
			return ir.Text()
		}
	case *types.Interface:
		if tt.Empty() {
			return ir.Opaque()
		}
	case *types.Slice:
		return ir.ArrayOf(s.classify(tt.Elem()))
	case *types.Array:
		return ir.ArrayOf(s.classify(tt.Elem()))
	}
	return ir.Unknown(types.TypeString(t, nil))
}

func (s *GoSource) isIntSeq(named *types.Named) bool {
	names := s.IntSeqNames
	if len(names) == 0 {
		names = []string{"IntSeq"}
	}
	for _, name := range names {
		if named.Obj().Name() == name {
			return true
		}
	}
	return false
}

func parseIDTag(tag string) (int, bool) {
	for _, part := range strings.Split(tag, ",") {
		value, ok := strings.CutPrefix(strings.TrimSpace(part), "id=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func positionLess(fset *token.FileSet, a, b token.Pos) bool {
	pa, pb := fset.Position(a), fset.Position(b)
	if pa.Filename != pb.Filename {
		return pa.Filename < pb.Filename
	}
	return pa.Offset < pb.Offset
}
