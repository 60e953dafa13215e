package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/jptrs93/packetgen/internal/diag"
	"github.com/jptrs93/packetgen/internal/generate"
	tsgen "github.com/jptrs93/packetgen/internal/generate/ts"
	"github.com/jptrs93/packetgen/internal/ir"
	"github.com/jptrs93/packetgen/internal/parser"
)

const defaultOutDir = "result"

// Generate loads packet definitions from a registry source and writes the
// TypeScript classes plus call.ts.
type Generate struct {
	Source    string   `help:"Where packet definitions come from: proto, go or schema" enum:"proto,go,schema" default:"schema" env:"PACKETGEN_SOURCE"`
	Inputs    []string `arg:"" name:"input" help:"Proto files, Go package patterns or schema files"`
	ProtoPath []string `name:"proto-path" help:"Proto import path (repeatable)" env:"PACKETGEN_PROTO_PATH"`
	Out       string   `help:"Output directory (defaults to the packetgen.ts_out proto option, then ./result)" env:"PACKETGEN_OUT"`
	Layout    string   `help:"File layout: split (one file per packet) or single" enum:"split,single" default:"split" env:"PACKETGEN_LAYOUT"`
	Workers   int      `help:"Packets emitted in parallel" default:"1" env:"PACKETGEN_WORKERS"`

	GoSuffix string   `name:"go-suffix" help:"Only scan Go types whose name ends with this suffix"`
	IntSeq   []string `name:"int-seq" help:"Go type names treated as packed int sequences" default:"IntSeq"`

	IOImport       string `name:"io-import" help:"Module providing BufferWriter and BufferReader" default:"../io"`
	PacketImport   string `name:"packet-import" help:"Module providing the Packet interface" default:"./packet"`
	NullableImport string `name:"nullable-import" help:"Module providing Nullable" default:"../util/types/nullable"`
	NetImport      string `name:"net-import" help:"Module providing Net" default:"../net"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *zap.Logger, stdout io.Writer) error {
	ctx := context.Background()
	logger.Info("Starting packet generation", zap.String("source", g.Source), zap.Strings("inputs", g.Inputs))

	messages, tsOut, err := g.load(ctx, logger)
	if err != nil {
		return err
	}
	logger.Info("Loaded packet definitions", zap.Int("count", len(messages)))

	outDir := g.Out
	if outDir == "" {
		outDir = tsOut
	}
	if outDir == "" {
		outDir = defaultOutDir
	}

	tracker := diag.NewTracker()
	gen := tsgen.Generator{Logger: logger, Tracker: tracker}
	outputs, err := gen.Generate(messages, generate.Options{
		OutDir:         filepath.Clean(outDir),
		Layout:         g.Layout,
		Workers:        g.Workers,
		IOImport:       g.IOImport,
		PacketImport:   g.PacketImport,
		NullableImport: g.NullableImport,
		NetImport:      g.NetImport,
	})
	if err != nil {
		return fmt.Errorf("generate %s: %w", gen.Name(), err)
	}
	if err := generate.WriteFiles(outputs); err != nil {
		return err
	}
	logger.Info("Packet generation complete", zap.String("output", outDir), zap.Int("files", len(outputs)))

	report := tracker.Report()
	if len(report) > 0 {
		logger.Warn("Some field types could not be mapped", zap.Strings("types", report))
	}
	_, err = fmt.Fprintf(stdout, "unhandled types = %v\n", report)
	return err
}

func (g *Generate) load(ctx context.Context, logger *zap.Logger) ([]ir.MessageType, string, error) {
	switch g.Source {
	case "proto":
		p := &parser.Parser{ImportPaths: g.ProtoPath, Logger: logger}
		messages, err := p.Load(ctx, g.Inputs)
		if err != nil {
			return nil, "", err
		}
		return messages, p.TsOut(), nil
	case "go":
		src := &parser.GoSource{Suffix: g.GoSuffix, IntSeqNames: g.IntSeq, Logger: logger}
		messages, err := src.Load(ctx, g.Inputs)
		return messages, "", err
	case "schema", "":
		src := &parser.SchemaSource{Logger: logger}
		messages, err := src.Load(ctx, g.Inputs)
		return messages, "", err
	default:
		return nil, "", fmt.Errorf("unknown source %q", g.Source)
	}
}
