package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jptrs93/packetgen/internal/ir"

	toml "github.com/pelletier/go-toml"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"
)

// SchemaFile is the hand-written registry format. The same structure is read
// from YAML, TOML or JSON.
type SchemaFile struct {
	Messages []SchemaMessage `yaml:"messages" toml:"messages" json:"messages"`
}

type SchemaMessage struct {
	Name   string        `yaml:"name" toml:"name" json:"name"`
	ID     *int          `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Fields []SchemaField `yaml:"fields" toml:"fields" json:"fields"`
}

type SchemaField struct {
	Name string `yaml:"name" toml:"name" json:"name"`
	Type string `yaml:"type" toml:"type" json:"type"`
}

// SchemaSource loads packet definitions from schema files. Files are read in
// the order given and their messages concatenated.
type SchemaSource struct {
	Logger *zap.Logger
}

func (s *SchemaSource) Load(ctx context.Context, paths []string) ([]ir.MessageType, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var pending []pendingMessage
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema file %s: %w", path, err)
		}
		sf, err := ParseSchema(data, formatFromPath(path))
		if err != nil {
			return nil, fmt.Errorf("parse schema file %s: %w", path, err)
		}
		logger.Debug("parsed schema file", zap.String("path", path), zap.Int("messages", len(sf.Messages)))
		pending = append(pending, sf.pending(path)...)
	}
	return assignIDs(pending), nil
}

// ParseSchema decodes a schema document. format is "yaml", "toml" or "json".
func ParseSchema(data []byte, format string) (*SchemaFile, error) {
	var sf SchemaFile
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(data, &sf)
	case "toml":
		err = toml.Unmarshal(data, &sf)
	case "json":
		err = json.Unmarshal(data, &sf)
	default:
		return nil, fmt.Errorf("unsupported schema format %q", format)
	}
	if err != nil {
		return nil, err
	}
	for i, msg := range sf.Messages {
		if msg.Name == "" {
			return nil, fmt.Errorf("message %d has no name", i)
		}
	}
	return &sf, nil
}

func (sf *SchemaFile) pending(source string) []pendingMessage {
	out := make([]pendingMessage, 0, len(sf.Messages))
	for _, sm := range sf.Messages {
		msg := ir.MessageType{Name: sm.Name, Source: source}
		for _, f := range sm.Fields {
			msg.Fields = append(msg.Fields, ir.Field{Name: f.Name, Type: ir.ParseType(f.Type)})
		}
		p := pendingMessage{msg: msg}
		if sm.ID != nil {
			p.msg.ID = *sm.ID
			p.hasID = true
		}
		out = append(out, p)
	}
	return out
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
