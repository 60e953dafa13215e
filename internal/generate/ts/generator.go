package tsgen

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jptrs93/packetgen/internal/diag"
	"github.com/jptrs93/packetgen/internal/generate"
	"github.com/jptrs93/packetgen/internal/ir"
)

type Layout string

const (
	// LayoutSplit writes one file per packet plus call.ts.
	LayoutSplit Layout = "split"
	// LayoutSingle writes every packet into packets.ts plus call.ts.
	LayoutSingle Layout = "single"
)

const (
	singleFileStem = "packets"
	registryFile   = "call.ts"
)

func ParseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(s)) {
	case "", LayoutSplit:
		return LayoutSplit, nil
	case LayoutSingle:
		return LayoutSingle, nil
	default:
		return "", fmt.Errorf("unknown layout %q (expected split or single)", s)
	}
}

// Generator emits TypeScript packet classes. Unmapped source types are
// recorded on Tracker; a nil Tracker discards them.
type Generator struct {
	Logger  *zap.Logger
	Tracker *diag.Tracker
}

func (g Generator) Name() string {
	return "ts"
}

func (g Generator) Generate(messages []ir.MessageType, options generate.Options) ([]generate.OutputFile, error) {
	logger := g.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	layout, err := ParseLayout(options.Layout)
	if err != nil {
		return nil, err
	}
	mapper := NewMapper(g.Tracker)
	emitOpts := EmitOptions{
		IOImport:       options.IOImport,
		PacketImport:   options.PacketImport,
		NullableImport: options.NullableImport,
		NetImport:      options.NetImport,
	}

	// Bodies are stored by index so the worker count never changes the output.
	bodies := make([]string, len(messages))
	var group errgroup.Group
	group.SetLimit(max(options.Workers, 1))
	for i, msg := range messages {
		group.Go(func() error {
			if layout == LayoutSplit {
				bodies[i] = EmitClass(msg, mapper, emitOpts)
			} else {
				var b strings.Builder
				writeClass(&b, msg, mapper, false)
				bodies[i] = b.String()
			}
			logger.Debug("emitted packet",
				zap.String("name", msg.Name),
				zap.Int("id", msg.ID),
				zap.Int("fields", len(msg.Fields)))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var outputs []generate.OutputFile
	switch layout {
	case LayoutSplit:
		for i, msg := range messages {
			outputs = append(outputs, generate.OutputFile{
				Path:    filepath.Join(options.OutDir, ir.KebabName(msg.Name)+".ts"),
				Content: []byte(bodies[i]),
			})
		}
	case LayoutSingle:
		var b strings.Builder
		writeImports(&b, classImports(emitOpts, messages...))
		b.WriteString(strings.Join(bodies, "\n"))
		outputs = append(outputs, generate.OutputFile{
			Path:    filepath.Join(options.OutDir, singleFileStem+".ts"),
			Content: []byte(b.String()),
		})
	}

	registry, err := EmitRegistry(messages, layout, emitOpts)
	if err != nil {
		return nil, err
	}
	outputs = append(outputs, generate.OutputFile{
		Path:    filepath.Join(options.OutDir, registryFile),
		Content: []byte(registry),
	})
	logger.Info("generated typescript packets",
		zap.Int("packets", len(messages)),
		zap.String("layout", string(layout)),
		zap.Int("files", len(outputs)))
	return outputs, nil
}
